package models

import (
	"strings"
	"testing"
	"time"
)

func TestInsertCustomerValidate(t *testing.T) {
	valid := InsertCustomer{
		Name:    "Priya Raman",
		Email:   "priya@example.com",
		Phone:   "9876543210",
		Address: "12 Temple Street",
		City:    "Chennai",
		Pincode: "600004",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid customer, got %v", err)
	}

	missing := InsertCustomer{}
	err := missing.Validate()
	if err == nil {
		t.Fatal("Expected validation error for empty customer")
	}
	fieldErrs, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("Expected FieldErrors, got %T", err)
	}
	if len(fieldErrs) != 6 {
		t.Errorf("Expected 6 field errors, got %d: %v", len(fieldErrs), fieldErrs)
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	err = badEmail.Validate()
	if err == nil {
		t.Fatal("Expected validation error for malformed email")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("Expected email failure, got %v", err)
	}
}

func TestInsertMealPlanValidate(t *testing.T) {
	now := time.Now()
	valid := InsertMealPlan{
		Name:           "Test Thali",
		Description:    "test",
		Price:          150,
		PlanType:       PlanTypeDaily,
		Items:          []string{"Rice"},
		Servings:       1,
		AvailableFrom:  now,
		AvailableUntil: now.Add(24 * time.Hour),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid meal plan, got %v", err)
	}

	badType := valid
	badType.PlanType = "hourly"
	if err := badType.Validate(); err == nil {
		t.Error("Expected validation error for unknown plan type")
	}

	badPrice := valid
	badPrice.Price = 0
	if err := badPrice.Validate(); err == nil {
		t.Error("Expected validation error for non-positive price")
	}

	badServings := valid
	badServings.Servings = -1
	if err := badServings.Validate(); err == nil {
		t.Error("Expected validation error for non-positive servings")
	}
}

func TestInsertMealPlanVegetarianDefault(t *testing.T) {
	plan := InsertMealPlan{}
	if !plan.Vegetarian() {
		t.Error("Expected isVegetarian to default to true when omitted")
	}

	f := false
	plan.IsVegetarian = &f
	if plan.Vegetarian() {
		t.Error("Expected explicit false to be respected")
	}
}

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("Expected status %q to be valid", s)
		}
	}

	for _, s := range []OrderStatus{"", "bogus", "CONFIRMED", "out for delivery"} {
		if s.Valid() {
			t.Errorf("Expected status %q to be invalid", s)
		}
	}
}

func TestInsertOrderValidate(t *testing.T) {
	valid := InsertOrder{
		CustomerID:   "c1",
		MealPlanID:   "1",
		DeliveryDate: time.Now().Add(24 * time.Hour),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid order, got %v", err)
	}

	badStatus := valid
	badStatus.Status = "shipped"
	if err := badStatus.Validate(); err == nil {
		t.Error("Expected validation error for unknown status")
	}

	missing := InsertOrder{}
	err := missing.Validate()
	if err == nil {
		t.Fatal("Expected validation error for empty order")
	}
	fieldErrs := err.(FieldErrors)
	if len(fieldErrs) != 3 {
		t.Errorf("Expected 3 field errors, got %d: %v", len(fieldErrs), fieldErrs)
	}
}
