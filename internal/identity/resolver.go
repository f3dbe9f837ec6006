// Package identity abstracts the auth collaborator. The core only ever
// needs one answer from it: which customer, if any, is this request for.
package identity

import (
	"net/http"
)

// Resolver maps an incoming request to the current customer id, or reports
// that the request is anonymous.
type Resolver interface {
	CurrentCustomerID(r *http.Request) (string, bool)
}

// HeaderResolver trusts a customer id placed in a request header by the
// fronting auth layer. It stands in for whatever session backend that layer
// uses; the core never sees tokens or sessions.
type HeaderResolver struct {
	Header string
}

const DefaultCustomerHeader = "X-Customer-ID"

func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = DefaultCustomerHeader
	}
	return &HeaderResolver{Header: header}
}

func (h *HeaderResolver) CurrentCustomerID(r *http.Request) (string, bool) {
	id := r.Header.Get(h.Header)
	return id, id != ""
}

// Anonymous resolves every request to no identity, for deployments without
// an auth layer in front.
type Anonymous struct{}

func (Anonymous) CurrentCustomerID(r *http.Request) (string, bool) {
	return "", false
}
