package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sattvicfoods/meal-service/pkg/models"
)

// MemoryStore keeps all entities in process memory. Every operation holds
// the one mutex, so multi-step operations like PlaceOrderTx are atomic with
// respect to each other.
type MemoryStore struct {
	mu        sync.RWMutex
	mealPlans map[string]models.MealPlan
	customers map[string]models.Customer
	orders    map[string]models.Order

	// insertion order, so listings are stable
	mealPlanIDs []string
	customerIDs []string
	orderIDs    []string
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		mealPlans: make(map[string]models.MealPlan),
		customers: make(map[string]models.Customer),
		orders:    make(map[string]models.Order),
	}
	for _, plan := range SeedMealPlans(time.Now()) {
		s.mealPlans[plan.ID] = plan
		s.mealPlanIDs = append(s.mealPlanIDs, plan.ID)
	}
	return s
}

func (s *MemoryStore) MealPlans(ctx context.Context) ([]models.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plans := make([]models.MealPlan, 0, len(s.mealPlanIDs))
	for _, id := range s.mealPlanIDs {
		plans = append(plans, s.mealPlans[id])
	}
	return plans, nil
}

func (s *MemoryStore) MealPlanByID(ctx context.Context, id string) (*models.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.mealPlans[id]
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

func (s *MemoryStore) CreateMealPlan(ctx context.Context, data models.InsertMealPlan) (*models.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := models.MealPlan{
		ID:             uuid.New().String(),
		Name:           data.Name,
		Description:    data.Description,
		Price:          data.Price,
		PlanType:       data.PlanType,
		ImageURL:       data.ImageURL,
		Items:          data.Items,
		IsVegetarian:   data.Vegetarian(),
		Servings:       data.Servings,
		AvailableFrom:  data.AvailableFrom,
		AvailableUntil: data.AvailableUntil,
	}
	s.mealPlans[plan.ID] = plan
	s.mealPlanIDs = append(s.mealPlanIDs, plan.ID)
	return &plan, nil
}

func (s *MemoryStore) Customers(ctx context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]models.Customer, 0, len(s.customerIDs))
	for _, id := range s.customerIDs {
		customers = append(customers, s.customers[id])
	}
	return customers, nil
}

func (s *MemoryStore) CustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (s *MemoryStore) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customerByEmailLocked(email), nil
}

func (s *MemoryStore) customerByEmailLocked(email string) *models.Customer {
	for _, customer := range s.customers {
		if customer.Email == email {
			c := customer
			return &c
		}
	}
	return nil
}

func (s *MemoryStore) CreateCustomer(ctx context.Context, data models.InsertCustomer) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer := s.createCustomerLocked(data)
	return customer, nil
}

func (s *MemoryStore) createCustomerLocked(data models.InsertCustomer) *models.Customer {
	customer := models.Customer{
		ID:        uuid.New().String(),
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		City:      data.City,
		Pincode:   data.Pincode,
		CreatedAt: time.Now(),
	}
	s.customers[customer.ID] = customer
	s.customerIDs = append(s.customerIDs, customer.ID)
	return &customer
}

func (s *MemoryStore) Orders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		orders = append(orders, s.orders[id])
	}
	return orders, nil
}

func (s *MemoryStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *MemoryStore) OrdersByCustomerID(ctx context.Context, customerID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []models.Order
	for _, id := range s.orderIDs {
		if order := s.orders[id]; order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, data models.InsertOrder) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.createOrderLocked(data)
	return order, nil
}

func (s *MemoryStore) createOrderLocked(data models.InsertOrder) *models.Order {
	status := data.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	order := models.Order{
		ID:                  uuid.New().String(),
		CustomerID:          data.CustomerID,
		MealPlanID:          data.MealPlanID,
		DeliveryDate:        data.DeliveryDate,
		TotalAmount:         data.TotalAmount,
		Status:              status,
		SpecialInstructions: data.SpecialInstructions,
		OrderDate:           time.Now(),
	}
	s.orders[order.ID] = order
	s.orderIDs = append(s.orderIDs, order.ID)
	return &order
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	order.Status = status
	s.orders[id] = order
	return &order, nil
}

func (s *MemoryStore) PlaceOrderTx(ctx context.Context, customer models.InsertCustomer, order models.InsertOrder) (*models.Order, *models.Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.customerByEmailLocked(customer.Email)
	created := false
	if existing == nil {
		existing = s.createCustomerLocked(customer)
		created = true
	}

	order.CustomerID = existing.ID
	placed := s.createOrderLocked(order)
	return placed, existing, created, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
