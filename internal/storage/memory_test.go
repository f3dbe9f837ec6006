package storage

import (
	"context"
	"testing"
	"time"

	"github.com/sattvicfoods/meal-service/pkg/models"
)

func testCustomer(email string) models.InsertCustomer {
	return models.InsertCustomer{
		Name:    "Priya Raman",
		Email:   email,
		Phone:   "9876543210",
		Address: "12 Temple Street",
		City:    "Chennai",
		Pincode: "600004",
	}
}

func TestSeedCatalog(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	plans, err := store.MealPlans(ctx)
	if err != nil {
		t.Fatalf("MealPlans failed: %v", err)
	}
	if len(plans) != 4 {
		t.Fatalf("Expected 4 seed meal plans, got %d", len(plans))
	}

	thali, err := store.MealPlanByID(ctx, "1")
	if err != nil {
		t.Fatalf("MealPlanByID failed: %v", err)
	}
	if thali == nil {
		t.Fatal("Expected seed meal plan with id 1")
	}
	if thali.Name != "Traditional South Indian Thali" {
		t.Errorf("Expected Traditional South Indian Thali, got %q", thali.Name)
	}
	if thali.Price != 180 {
		t.Errorf("Expected price 180, got %v", thali.Price)
	}
	if thali.PlanType != models.PlanTypeDaily {
		t.Errorf("Expected daily plan, got %q", thali.PlanType)
	}
}

func TestMealPlanRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.CreateMealPlan(ctx, models.InsertMealPlan{
		Name:           "Evening Tiffin",
		Description:    "Light evening meal",
		Price:          95,
		PlanType:       models.PlanTypeDaily,
		Items:          []string{"Upma", "Chutney"},
		Servings:       1,
		AvailableFrom:  time.Now(),
		AvailableUntil: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateMealPlan failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected generated id")
	}
	if !created.IsVegetarian {
		t.Error("Expected isVegetarian to default to true")
	}

	got, err := store.MealPlanByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("MealPlanByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected created meal plan to be retrievable")
	}
	if got.Name != created.Name || got.Price != created.Price {
		t.Errorf("Round trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestCustomerByEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.CreateCustomer(ctx, testCustomer("priya@example.com"))
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("Expected createdAt to be stamped")
	}

	got, err := store.CustomerByEmail(ctx, "priya@example.com")
	if err != nil {
		t.Fatalf("CustomerByEmail failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("Expected customer %s by email, got %+v", created.ID, got)
	}

	absent, err := store.CustomerByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("CustomerByEmail failed: %v", err)
	}
	if absent != nil {
		t.Errorf("Expected no customer for unknown email, got %+v", absent)
	}
}

func TestUnknownLookupsReturnAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	plan, err := store.MealPlanByID(ctx, "does-not-exist")
	if err != nil || plan != nil {
		t.Errorf("Expected (nil, nil) for unknown meal plan, got (%v, %v)", plan, err)
	}
	customer, err := store.CustomerByID(ctx, "does-not-exist")
	if err != nil || customer != nil {
		t.Errorf("Expected (nil, nil) for unknown customer, got (%v, %v)", customer, err)
	}
	order, err := store.OrderByID(ctx, "does-not-exist")
	if err != nil || order != nil {
		t.Errorf("Expected (nil, nil) for unknown order, got (%v, %v)", order, err)
	}
}

func TestOrdersByCustomerID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice, _ := store.CreateCustomer(ctx, testCustomer("alice@example.com"))
	bob, _ := store.CreateCustomer(ctx, testCustomer("bob@example.com"))

	delivery := time.Now().Add(24 * time.Hour)
	for i := 0; i < 2; i++ {
		if _, err := store.CreateOrder(ctx, models.InsertOrder{
			CustomerID: alice.ID, MealPlanID: "1", DeliveryDate: delivery, TotalAmount: 180,
		}); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
	}
	if _, err := store.CreateOrder(ctx, models.InsertOrder{
		CustomerID: bob.ID, MealPlanID: "2", DeliveryDate: delivery, TotalAmount: 850,
	}); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	aliceOrders, err := store.OrdersByCustomerID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("OrdersByCustomerID failed: %v", err)
	}
	if len(aliceOrders) != 2 {
		t.Fatalf("Expected 2 orders for alice, got %d", len(aliceOrders))
	}
	for _, order := range aliceOrders {
		if order.CustomerID != alice.ID {
			t.Errorf("Filter leaked order for customer %s", order.CustomerID)
		}
	}

	all, err := store.Orders(ctx)
	if err != nil {
		t.Fatalf("Orders failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 orders total, got %d", len(all))
	}
}

func TestCreateOrderDefaultsStatus(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	order, err := store.CreateOrder(ctx, models.InsertOrder{
		CustomerID:   "c1",
		MealPlanID:   "1",
		DeliveryDate: time.Now().Add(24 * time.Hour),
		TotalAmount:  180,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.Status != models.StatusConfirmed {
		t.Errorf("Expected default status confirmed, got %q", order.Status)
	}
	if order.OrderDate.IsZero() {
		t.Error("Expected orderDate to be stamped")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	order, _ := store.CreateOrder(ctx, models.InsertOrder{
		CustomerID: "c1", MealPlanID: "1", DeliveryDate: time.Now(), TotalAmount: 180,
	})

	updated, err := store.UpdateOrderStatus(ctx, order.ID, models.StatusPreparing)
	if err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if updated == nil || updated.Status != models.StatusPreparing {
		t.Fatalf("Expected status preparing, got %+v", updated)
	}

	got, _ := store.OrderByID(ctx, order.ID)
	if got.Status != models.StatusPreparing {
		t.Errorf("Expected stored status preparing, got %q", got.Status)
	}

	missing, err := store.UpdateOrderStatus(ctx, "does-not-exist", models.StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown order, got %+v", missing)
	}
}

func TestPlaceOrderTxUpsertsCustomer(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	customer := testCustomer("repeat@example.com")
	order := models.InsertOrder{MealPlanID: "1", DeliveryDate: time.Now().Add(24 * time.Hour), TotalAmount: 180}

	first, firstCustomer, created, err := store.PlaceOrderTx(ctx, customer, order)
	if err != nil {
		t.Fatalf("PlaceOrderTx failed: %v", err)
	}
	if !created {
		t.Error("Expected first placement to create the customer")
	}
	if first.CustomerID != firstCustomer.ID {
		t.Errorf("Expected order bound to customer %s, got %s", firstCustomer.ID, first.CustomerID)
	}

	second, secondCustomer, created, err := store.PlaceOrderTx(ctx, customer, order)
	if err != nil {
		t.Fatalf("PlaceOrderTx failed: %v", err)
	}
	if created {
		t.Error("Expected second placement to reuse the customer")
	}
	if secondCustomer.ID != firstCustomer.ID {
		t.Errorf("Expected same customer id on re-order, got %s and %s", firstCustomer.ID, secondCustomer.ID)
	}
	if second.ID == first.ID {
		t.Error("Expected distinct order ids")
	}

	customers, _ := store.Customers(ctx)
	if len(customers) != 1 {
		t.Errorf("Expected exactly one customer row, got %d", len(customers))
	}
	orders, _ := store.Orders(ctx)
	if len(orders) != 2 {
		t.Errorf("Expected two order rows, got %d", len(orders))
	}
}
