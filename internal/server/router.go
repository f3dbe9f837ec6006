package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler is the hub's HTTP entry point; nil disables the feed.
type WebSocketHandler interface {
	HandleWebSocket(w http.ResponseWriter, r *http.Request)
}

// NewRouter wires every endpoint under the /api prefix plus /health and /ws.
func NewRouter(h *Handler, ws WebSocketHandler, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthCheck).Methods("GET", "OPTIONS")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/meal-plans", h.ListMealPlans).Methods("GET", "OPTIONS")
	api.HandleFunc("/meal-plans", h.CreateMealPlan).Methods("POST", "OPTIONS")
	api.HandleFunc("/meal-plans/{id}", h.GetMealPlan).Methods("GET", "OPTIONS")

	api.HandleFunc("/customers", h.ListCustomers).Methods("GET", "OPTIONS")
	api.HandleFunc("/customers", h.CreateCustomer).Methods("POST", "OPTIONS")
	api.HandleFunc("/customers/{id}", h.GetCustomer).Methods("GET", "OPTIONS")
	api.HandleFunc("/profile", h.GetProfile).Methods("GET", "OPTIONS")

	api.HandleFunc("/orders", h.ListOrders).Methods("GET", "OPTIONS")
	api.HandleFunc("/orders", h.CreateOrder).Methods("POST", "OPTIONS")
	api.HandleFunc("/orders/place", h.PlaceOrder).Methods("POST", "OPTIONS")
	api.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET", "OPTIONS")
	api.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods("PATCH", "OPTIONS")

	if ws != nil {
		router.HandleFunc("/ws", ws.HandleWebSocket)
	}

	router.Use(corsMiddleware())
	router.Use(loggingMiddleware(logger))

	return router
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}).Info("Request received")

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}

func corsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Customer-ID")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
