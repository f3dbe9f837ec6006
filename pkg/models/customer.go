package models

import (
	"net/mail"
	"time"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	CreatedAt time.Time `json:"createdAt"`
}

type InsertCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

func (c *InsertCustomer) Validate() error {
	var errs FieldErrors
	if c.Name == "" {
		errs = errs.With("name", "is required")
	}
	if c.Email == "" {
		errs = errs.With("email", "is required")
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = errs.With("email", "must be a valid email address")
	}
	if c.Phone == "" {
		errs = errs.With("phone", "is required")
	}
	if c.Address == "" {
		errs = errs.With("address", "is required")
	}
	if c.City == "" {
		errs = errs.With("city", "is required")
	}
	if c.Pincode == "" {
		errs = errs.With("pincode", "is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
