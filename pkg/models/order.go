package models

import (
	"time"
)

// OrderStatus tracks the delivery lifecycle of an order. Orders start as
// confirmed; delivered and cancelled are terminal.
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                  string      `json:"id"`
	CustomerID          string      `json:"customerId"`
	MealPlanID          string      `json:"mealPlanId"`
	DeliveryDate        time.Time   `json:"deliveryDate"`
	TotalAmount         float64     `json:"totalAmount"`
	Status              OrderStatus `json:"status"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	OrderDate           time.Time   `json:"orderDate"`
}

type InsertOrder struct {
	CustomerID          string      `json:"customerId"`
	MealPlanID          string      `json:"mealPlanId"`
	DeliveryDate        time.Time   `json:"deliveryDate"`
	TotalAmount         float64     `json:"totalAmount"`
	Status              OrderStatus `json:"status,omitempty"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
}

func (o *InsertOrder) Validate() error {
	var errs FieldErrors
	if o.CustomerID == "" {
		errs = errs.With("customerId", "is required")
	}
	if o.MealPlanID == "" {
		errs = errs.With("mealPlanId", "is required")
	}
	if o.DeliveryDate.IsZero() {
		errs = errs.With("deliveryDate", "is required")
	}
	if o.Status != "" && !o.Status.Valid() {
		errs = errs.With("status", "must be one of confirmed, preparing, out_for_delivery, delivered, cancelled")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
