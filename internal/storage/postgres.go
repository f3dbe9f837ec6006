package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sattvicfoods/meal-service/pkg/models"
	"github.com/sirupsen/logrus"
)

// PostgresStore implements Storage over a Postgres database. The schema is
// created at construction so the service can boot against an empty database.
type PostgresStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewPostgresStore(db *sql.DB, logger *logrus.Logger) (*PostgresStore, error) {
	s := &PostgresStore{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		return nil, err
	}
	if err := s.seedMealPlans(); err != nil {
		return nil, err
	}
	logger.Info("Postgres schema ready, seed catalog in place")
	return s, nil
}

func (s *PostgresStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS meal_plans (
			id VARCHAR(255) PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			plan_type VARCHAR(20) NOT NULL,
			image_url TEXT,
			items TEXT[] NOT NULL,
			is_vegetarian BOOLEAN NOT NULL DEFAULT TRUE,
			servings INTEGER NOT NULL,
			available_from TIMESTAMP NOT NULL,
			available_until TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id VARCHAR(255) PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			pincode TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(255) PRIMARY KEY,
			customer_id VARCHAR(255) NOT NULL REFERENCES customers(id),
			meal_plan_id VARCHAR(255) NOT NULL REFERENCES meal_plans(id),
			delivery_date TIMESTAMP NOT NULL,
			total_amount DECIMAL(10,2) NOT NULL,
			status VARCHAR(50) NOT NULL,
			special_instructions TEXT,
			order_date TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) seedMealPlans() error {
	for _, plan := range SeedMealPlans(time.Now()) {
		query := `
			INSERT INTO meal_plans (id, name, description, price, plan_type, image_url, items, is_vegetarian, servings, available_from, available_until)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING
		`
		_, err := s.db.Exec(query, plan.ID, plan.Name, plan.Description, plan.Price,
			plan.PlanType, plan.ImageURL, pq.Array(plan.Items), plan.IsVegetarian,
			plan.Servings, plan.AvailableFrom, plan.AvailableUntil)
		if err != nil {
			return err
		}
	}
	return nil
}

const mealPlanColumns = `id, name, description, price, plan_type, image_url, items, is_vegetarian, servings, available_from, available_until`

func scanMealPlan(row interface{ Scan(...interface{}) error }) (*models.MealPlan, error) {
	var plan models.MealPlan
	var imageURL sql.NullString
	err := row.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price,
		&plan.PlanType, &imageURL, pq.Array(&plan.Items), &plan.IsVegetarian,
		&plan.Servings, &plan.AvailableFrom, &plan.AvailableUntil)
	if err != nil {
		return nil, err
	}
	plan.ImageURL = imageURL.String
	return &plan, nil
}

func (s *PostgresStore) MealPlans(ctx context.Context) ([]models.MealPlan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+mealPlanColumns+` FROM meal_plans ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.MealPlan
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

func (s *PostgresStore) MealPlanByID(ctx context.Context, id string) (*models.MealPlan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mealPlanColumns+` FROM meal_plans WHERE id = $1`, id)
	plan, err := scanMealPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return plan, err
}

func (s *PostgresStore) CreateMealPlan(ctx context.Context, data models.InsertMealPlan) (*models.MealPlan, error) {
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
	query := `
		INSERT INTO meal_plans (id, name, description, price, plan_type, image_url, items, is_vegetarian, servings, available_from, available_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query, plan.ID, plan.Name, plan.Description,
		plan.Price, plan.PlanType, plan.ImageURL, pq.Array(plan.Items),
		plan.IsVegetarian, plan.Servings, plan.AvailableFrom, plan.AvailableUntil)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

const customerColumns = `id, name, email, phone, address, city, pincode, created_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*models.Customer, error) {
	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.Address, &customer.City, &customer.Pincode, &customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *PostgresStore) Customers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

func (s *PostgresStore) CustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	customer, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return customer, err
}

func (s *PostgresStore) CustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
	customer, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return customer, err
}

func (s *PostgresStore) CreateCustomer(ctx context.Context, data models.InsertCustomer) (*models.Customer, error) {
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
	query := `
		INSERT INTO customers (id, name, email, phone, address, city, pincode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query, customer.ID, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.City, customer.Pincode, customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

const orderColumns = `id, customer_id, meal_plan_id, delivery_date, total_amount, status, special_instructions, order_date`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var order models.Order
	var instructions sql.NullString
	err := row.Scan(&order.ID, &order.CustomerID, &order.MealPlanID, &order.DeliveryDate,
		&order.TotalAmount, &order.Status, &instructions, &order.OrderDate)
	if err != nil {
		return nil, err
	}
	order.SpecialInstructions = instructions.String
	return &order, nil
}

func (s *PostgresStore) Orders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *PostgresStore) OrdersByCustomerID(ctx context.Context, customerID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY order_date`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *PostgresStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

func (s *PostgresStore) CreateOrder(ctx context.Context, data models.InsertOrder) (*models.Order, error) {
	order := newOrderRow(data)
	if err := insertOrderRow(ctx, s.db, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 RETURNING `+orderColumns, status, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

// PlaceOrderTx runs the email lookup, the conditional customer insert, and
// the order insert in one transaction so concurrent identical requests
// cannot create duplicate customers (the unique email index backstops the
// race).
func (s *PostgresStore) PlaceOrderTx(ctx context.Context, customer models.InsertCustomer, order models.InsertOrder) (*models.Order, *models.Customer, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, false, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, customer.Email)
	existing, err := scanCustomer(row)
	created := false
	if err == sql.ErrNoRows {
		existing = &models.Customer{
			ID:        uuid.New().String(),
			Name:      customer.Name,
			Email:     customer.Email,
			Phone:     customer.Phone,
			Address:   customer.Address,
			City:      customer.City,
			Pincode:   customer.Pincode,
			CreatedAt: time.Now(),
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, phone, address, city, pincode, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, existing.ID, existing.Name, existing.Email, existing.Phone,
			existing.Address, existing.City, existing.Pincode, existing.CreatedAt)
		if err != nil {
			return nil, nil, false, err
		}
		created = true
	} else if err != nil {
		return nil, nil, false, err
	}

	order.CustomerID = existing.ID
	placed := newOrderRow(order)
	if err := insertOrderRow(ctx, tx, placed); err != nil {
		return nil, nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, false, err
	}
	return placed, existing, created, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func newOrderRow(data models.InsertOrder) *models.Order {
	status := data.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	return &models.Order{
		ID:                  uuid.New().String(),
		CustomerID:          data.CustomerID,
		MealPlanID:          data.MealPlanID,
		DeliveryDate:        data.DeliveryDate,
		TotalAmount:         data.TotalAmount,
		Status:              status,
		SpecialInstructions: data.SpecialInstructions,
		OrderDate:           time.Now(),
	}
}

func insertOrderRow(ctx context.Context, db execer, order *models.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, meal_plan_id, delivery_date, total_amount, status, special_instructions, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.ExecContext(ctx, query, order.ID, order.CustomerID, order.MealPlanID,
		order.DeliveryDate, order.TotalAmount, order.Status, order.SpecialInstructions, order.OrderDate)
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
