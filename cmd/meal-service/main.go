package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sattvicfoods/meal-service/internal/events"
	"github.com/sattvicfoods/meal-service/internal/identity"
	"github.com/sattvicfoods/meal-service/internal/server"
	"github.com/sattvicfoods/meal-service/internal/storage"
	"github.com/sattvicfoods/meal-service/internal/websocket"
	"github.com/sattvicfoods/meal-service/internal/workflow"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	port := getEnv("PORT", "8080")
	backend := getEnv("STORAGE_BACKEND", "memory")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	customerHeader := getEnv("CUSTOMER_ID_HEADER", identity.DefaultCustomerHeader)

	var store storage.Storage
	switch backend {
	case "postgres":
		store = mustOpenPostgres(logger)
	case "memory":
		store = storage.NewMemoryStore()
		logger.Info("Using in-memory storage")
	default:
		logger.WithField("backend", backend).Fatal("Unknown storage backend")
	}

	service := workflow.NewService(store, logger)

	if kafkaBrokers != "" {
		producer, err := events.NewKafkaProducer(kafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Kafka producer")
		}
		defer producer.Close()
		service.SetPublisher(producer)
		logger.WithField("brokers", kafkaBrokers).Info("Kafka producer configured")
	} else {
		logger.Info("KAFKA_BROKERS not set - running without order events")
	}

	wsHub := websocket.NewHub(logger)
	go wsHub.Run()
	service.SetBroadcaster(wsHub)

	resolver := identity.NewHeaderResolver(customerHeader)
	handler := server.NewHandler(store, service, resolver, logger)
	router := server.NewRouter(handler, wsHub, logger)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", port).Info("Starting meal service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}

func mustOpenPostgres(logger *logrus.Logger) storage.Storage {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "mealservice")
	dbPassword := getEnv("DB_PASSWORD", "mealservice")
	dbName := getEnv("DB_NAME", "meals")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			logger.Info("Database connection established")
			break
		}
		logger.Info("Waiting for database...")
		time.Sleep(2 * time.Second)
	}

	store, err := storage.NewPostgresStore(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize Postgres storage")
	}
	logger.Info("Using Postgres storage")
	return store
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
