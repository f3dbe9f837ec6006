package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/sattvicfoods/meal-service/internal/events"
	"github.com/sattvicfoods/meal-service/internal/storage"
	"github.com/sattvicfoods/meal-service/pkg/models"
	"github.com/sirupsen/logrus"
)

// Broadcaster pushes order lifecycle messages to connected clients.
type Broadcaster interface {
	Broadcast(messageType string, data interface{})
}

// Service enforces cross-entity referential validity before delegating to
// storage. Publisher and hub are optional; when nil the service runs without
// events or live updates.
type Service struct {
	store    storage.Storage
	logger   *logrus.Logger
	producer events.Publisher
	hub      Broadcaster
}

func NewService(store storage.Storage, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) SetPublisher(p events.Publisher) {
	s.producer = p
}

func (s *Service) SetBroadcaster(b Broadcaster) {
	s.hub = b
}

// PlaceOrderRequest is the checkout payload: the customer's details plus the
// order itself. The customer is resolved by email, so a returning customer
// re-ordering with the same address does not need an account lookup first.
type PlaceOrderRequest struct {
	Customer            models.InsertCustomer `json:"customer"`
	MealPlanID          string                `json:"mealPlanId"`
	DeliveryDate        time.Time             `json:"deliveryDate"`
	SpecialInstructions string                `json:"specialInstructions,omitempty"`
}

// PlacementResult carries everything the checkout flow needs to render a
// confirmation.
type PlacementResult struct {
	Order           *models.Order    `json:"order"`
	Customer        *models.Customer `json:"customer"`
	CustomerCreated bool             `json:"customerCreated"`
}

// PlaceOrder validates the embedded customer, reuses or creates the customer
// by email, resolves the meal plan, prices the order from the plan, and
// creates the order. The customer lookup and both writes run atomically in
// the store.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlacementResult, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer: %s", err)}
	}
	if req.MealPlanID == "" {
		return nil, &ValidationError{Message: "invalid order: mealPlanId is required"}
	}
	if req.DeliveryDate.IsZero() {
		return nil, &ValidationError{Message: "invalid order: deliveryDate is required"}
	}

	plan, err := s.store.MealPlanByID(ctx, req.MealPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meal plan: %w", err)
	}
	if plan == nil {
		return nil, &ReferentialError{Message: "Meal plan not found"}
	}

	// The price always comes from the catalog, never the client.
	insert := models.InsertOrder{
		MealPlanID:          req.MealPlanID,
		DeliveryDate:        req.DeliveryDate,
		TotalAmount:         plan.Price,
		Status:              models.StatusConfirmed,
		SpecialInstructions: req.SpecialInstructions,
	}

	order, customer, created, err := s.store.PlaceOrderTx(ctx, req.Customer, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":         order.ID,
		"customer_id":      customer.ID,
		"customer_created": created,
		"meal_plan_id":     order.MealPlanID,
		"total_amount":     order.TotalAmount,
	}).Info("Order placed")

	s.fanOutCreated(order)

	return &PlacementResult{Order: order, Customer: customer, CustomerCreated: created}, nil
}

// CreateOrder creates an order for an already-known customer id.
func (s *Service) CreateOrder(ctx context.Context, data models.InsertOrder) (*models.Order, error) {
	if err := data.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid order: %s", err)}
	}

	customer, err := s.store.CustomerByID(ctx, data.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		return nil, &ReferentialError{Message: "Customer not found"}
	}

	plan, err := s.store.MealPlanByID(ctx, data.MealPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up meal plan: %w", err)
	}
	if plan == nil {
		return nil, &ReferentialError{Message: "Meal plan not found"}
	}

	data.TotalAmount = plan.Price

	order, err := s.store.CreateOrder(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"meal_plan_id": order.MealPlanID,
		"total_amount": order.TotalAmount,
	}).Info("Order created")

	s.fanOutCreated(order)

	return order, nil
}

// CreateCustomer creates a customer, rejecting duplicate emails.
func (s *Service) CreateCustomer(ctx context.Context, data models.InsertCustomer) (*models.Customer, error) {
	if err := data.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid customer: %s", err)}
	}

	existing, err := s.store.CustomerByEmail(ctx, data.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer by email: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: "Customer with this email already exists"}
	}

	customer, err := s.store.CreateCustomer(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("Customer created")

	return customer, nil
}

// CreateMealPlan validates and stores a new catalog entry.
func (s *Service) CreateMealPlan(ctx context.Context, data models.InsertMealPlan) (*models.MealPlan, error) {
	if err := data.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid meal plan: %s", err)}
	}

	plan, err := s.store.CreateMealPlan(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"meal_plan_id": plan.ID,
		"plan_type":    plan.PlanType,
		"price":        plan.Price,
	}).Info("Meal plan created")

	return plan, nil
}

// UpdateStatus writes a new delivery status onto an order. Any of the five
// valid statuses may replace any current status; illegal strings are
// rejected before storage is touched.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Message: "Invalid status"}
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, &NotFoundError{Message: "Order not found"}
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("Order status updated")

	if s.producer != nil {
		event := events.OrderStatusChangedEvent{
			OrderID: order.ID,
			Status:  order.Status,
		}
		if err := s.producer.PublishOrderStatusChanged(event); err != nil {
			// Event delivery is best effort; the status change already
			// committed.
			s.logger.WithError(err).Error("Failed to publish order status changed event")
		}
	}
	if s.hub != nil {
		s.hub.Broadcast("order_status_changed", order)
	}

	return order, nil
}

func (s *Service) fanOutCreated(order *models.Order) {
	if s.producer != nil {
		event := events.OrderCreatedEvent{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			MealPlanID:  order.MealPlanID,
			TotalAmount: order.TotalAmount,
			OrderDate:   order.OrderDate,
		}
		if err := s.producer.PublishOrderCreated(event); err != nil {
			s.logger.WithError(err).Error("Failed to publish order created event")
		}
	}
	if s.hub != nil {
		s.hub.Broadcast("order_created", order)
	}
}
