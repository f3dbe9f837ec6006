package models

import (
	"fmt"
	"strings"
)

// FieldError reports a single invalid or missing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failing field so clients see the full set in
// one response instead of fixing fields one at a time.
type FieldErrors []FieldError

func (e FieldErrors) With(field, message string) FieldErrors {
	return append(e, FieldError{Field: field, Message: message})
}

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
