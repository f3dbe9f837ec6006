package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sattvicfoods/meal-service/internal/identity"
	"github.com/sattvicfoods/meal-service/internal/storage"
	"github.com/sattvicfoods/meal-service/internal/workflow"
	"github.com/sattvicfoods/meal-service/pkg/models"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	store    storage.Storage
	service  *workflow.Service
	resolver identity.Resolver
	logger   *logrus.Logger
}

func NewHandler(store storage.Storage, service *workflow.Service, resolver identity.Resolver, logger *logrus.Logger) *Handler {
	if resolver == nil {
		resolver = identity.Anonymous{}
	}
	return &Handler{
		store:    store,
		service:  service,
		resolver: resolver,
		logger:   logger,
	}
}

// Meal plans

func (h *Handler) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.MealPlans(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch meal plans")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch meal plans")
		return
	}
	h.respondWithJSON(w, http.StatusOK, plans)
}

func (h *Handler) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	plan, err := h.store.MealPlanByID(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("meal_plan_id", id).Error("Failed to fetch meal plan")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch meal plan")
		return
	}
	if plan == nil {
		h.respondWithError(w, http.StatusNotFound, "Meal plan not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, plan)
}

func (h *Handler) CreateMealPlan(w http.ResponseWriter, r *http.Request) {
	var data models.InsertMealPlan
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.logger.WithError(err).Error("Failed to decode meal plan request")
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := h.service.CreateMealPlan(r.Context(), data)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to create meal plan")
		return
	}
	h.respondWithJSON(w, http.StatusCreated, plan)
}

// Customers

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.Customers(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch customers")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	h.respondWithJSON(w, http.StatusOK, customers)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	customer, err := h.store.CustomerByID(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("customer_id", id).Error("Failed to fetch customer")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch customer")
		return
	}
	if customer == nil {
		h.respondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var data models.InsertCustomer
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.logger.WithError(err).Error("Failed to decode customer request")
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), data)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to create customer")
		return
	}
	h.respondWithJSON(w, http.StatusCreated, customer)
}

// GetProfile returns the customer the identity layer says this request
// belongs to.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.resolver.CurrentCustomerID(r)
	if !ok {
		h.respondWithError(w, http.StatusNotFound, "No current customer")
		return
	}

	customer, err := h.store.CustomerByID(r.Context(), customerID)
	if err != nil {
		h.logger.WithError(err).WithField("customer_id", customerID).Error("Failed to fetch profile")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if customer == nil {
		h.respondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, customer)
}

// Orders

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		// Fall back to the signed-in customer when no explicit filter is
		// given; anonymous requests see everything.
		if id, ok := h.resolver.CurrentCustomerID(r); ok {
			customerID = id
		}
	}

	var (
		orders []models.Order
		err    error
	)
	if customerID != "" {
		orders, err = h.store.OrdersByCustomerID(r.Context(), customerID)
	} else {
		orders, err = h.store.Orders(r.Context())
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch orders")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	h.respondWithJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.store.OrderByID(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", id).Error("Failed to fetch order")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if order == nil {
		h.respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	h.respondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var data models.InsertOrder
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.logger.WithError(err).Error("Failed to decode order request")
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), data)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to create order")
		return
	}
	h.respondWithJSON(w, http.StatusCreated, order)
}

// PlaceOrder is the checkout flow: customer details and order in one
// request, customer resolved or created by email.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req workflow.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode place order request")
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to place order")
		return
	}
	h.respondWithJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WithError(err).Error("Failed to decode status update request")
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to update order status")
		return
	}
	h.respondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unhealthy",
			"service": "meal-service",
			"error":   "storage unreachable",
		})
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "meal-service",
	})
}

// respondWorkflowError maps the workflow error taxonomy onto status codes:
// validation, referential, and conflict failures are the client's fault
// (400); unknown ids are 404; anything else is a 500 with a generic message.
func (h *Handler) respondWorkflowError(w http.ResponseWriter, err error, fallback string) {
	var (
		validationErr  *workflow.ValidationError
		referentialErr *workflow.ReferentialError
		notFoundErr    *workflow.NotFoundError
		conflictErr    *workflow.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		h.respondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &referentialErr):
		h.respondWithError(w, http.StatusBadRequest, referentialErr.Message)
	case errors.As(err, &notFoundErr):
		h.respondWithError(w, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &conflictErr):
		h.respondWithError(w, http.StatusBadRequest, conflictErr.Message)
	default:
		h.logger.WithError(err).Error(fallback)
		h.respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, models.ErrorResponse{Success: false, Message: message})
}
