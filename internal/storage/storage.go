package storage

import (
	"context"

	"github.com/sattvicfoods/meal-service/pkg/models"
)

// Storage owns every entity instance. Lookups return (nil, nil) when the id
// does not resolve; they never treat a missing row as an error.
type Storage interface {
	MealPlans(ctx context.Context) ([]models.MealPlan, error)
	MealPlanByID(ctx context.Context, id string) (*models.MealPlan, error)
	CreateMealPlan(ctx context.Context, data models.InsertMealPlan) (*models.MealPlan, error)

	Customers(ctx context.Context) ([]models.Customer, error)
	CustomerByID(ctx context.Context, id string) (*models.Customer, error)
	CustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, data models.InsertCustomer) (*models.Customer, error)

	Orders(ctx context.Context) ([]models.Order, error)
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	OrdersByCustomerID(ctx context.Context, customerID string) ([]models.Order, error)
	CreateOrder(ctx context.Context, data models.InsertOrder) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)

	// PlaceOrderTx reuses the customer with the given email or creates one,
	// then creates the order for that customer, atomically. The order's
	// CustomerID field is filled in from the resolved customer. The boolean
	// reports whether the customer was newly created.
	PlaceOrderTx(ctx context.Context, customer models.InsertCustomer, order models.InsertOrder) (*models.Order, *models.Customer, bool, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
