package models

import (
	"time"
)

type PlanType string

const (
	PlanTypeDaily   PlanType = "daily"
	PlanTypeWeekly  PlanType = "weekly"
	PlanTypeMonthly PlanType = "monthly"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanTypeDaily, PlanTypeWeekly, PlanTypeMonthly:
		return true
	}
	return false
}

type MealPlan struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	PlanType       PlanType  `json:"planType"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Items          []string  `json:"items"`
	IsVegetarian   bool      `json:"isVegetarian"`
	Servings       int       `json:"servings"`
	AvailableFrom  time.Time `json:"availableFrom"`
	AvailableUntil time.Time `json:"availableUntil"`
}

// InsertMealPlan is the client-supplied shape for creating a meal plan.
// IsVegetarian is a pointer so an omitted field defaults to true rather
// than false.
type InsertMealPlan struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	PlanType       PlanType  `json:"planType"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Items          []string  `json:"items"`
	IsVegetarian   *bool     `json:"isVegetarian,omitempty"`
	Servings       int       `json:"servings"`
	AvailableFrom  time.Time `json:"availableFrom"`
	AvailableUntil time.Time `json:"availableUntil"`
}

func (m *InsertMealPlan) Validate() error {
	var errs FieldErrors
	if m.Name == "" {
		errs = errs.With("name", "is required")
	}
	if m.Price <= 0 {
		errs = errs.With("price", "must be a positive number")
	}
	if !m.PlanType.Valid() {
		errs = errs.With("planType", "must be one of daily, weekly, monthly")
	}
	if m.Servings <= 0 {
		errs = errs.With("servings", "must be a positive integer")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Vegetarian resolves the optional flag, defaulting to true.
func (m *InsertMealPlan) Vegetarian() bool {
	if m.IsVegetarian == nil {
		return true
	}
	return *m.IsVegetarian
}
