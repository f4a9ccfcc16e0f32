package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"habesha-bites/models"
	"habesha-bites/pkg/database"
	"habesha-bites/pkg/logger"
)

// ErrOrderNotFound is returned when an order id has no row in orders.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepositoryInterface interface {
	CreateWithLines(order *models.Order, lines []models.OrderLine) (int, error)
	GetStatus(orderID int) (string, error)
	Count() (int, error)
}

type OrderRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewOrderRepository(log *logger.Logger, db *database.DB) *OrderRepository {
	return &OrderRepository{
		logger: log.WithComponent("order_repository"),
		db:     db,
	}
}

// CreateWithLines allocates the next order id and inserts the order row plus
// all its line rows in a single transaction. The id is max(order_id)+1 with a
// floor of 1000 on an empty table; allocation and insert happen in one
// statement, and the primary key on order_id turns a concurrent allocation of
// the same id into a rollback instead of a silent duplicate.
func (r *OrderRepository) CreateWithLines(order *models.Order, lines []models.OrderLine) (int, error) {
	r.logger.Debug("Creating order with line items", "line_count", len(lines))

	var orderID int
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		insertOrder := `
			INSERT INTO orders (order_id, status, total_price)
			SELECT COALESCE(MAX(order_id) + 1, 1000), $1, $2 FROM orders
			RETURNING order_id
		`
		if err := tx.QueryRow(insertOrder, order.Status, order.TotalPrice).Scan(&orderID); err != nil {
			return fmt.Errorf("failed to insert order: %v", err)
		}

		insertLine := `
			INSERT INTO order_details (order_id, item_id, quantity, total_price)
			VALUES ($1, $2, $3, $4)
		`
		for _, line := range lines {
			if _, err := tx.Exec(insertLine, orderID, line.ItemID, line.Quantity, line.LineTotal); err != nil {
				return fmt.Errorf("failed to insert order item %d: %v", line.ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to create order", "error", err)
		return 0, err
	}

	order.OrderID = orderID
	r.logger.Info("Created order",
		"order_id", orderID,
		"status", order.Status,
		"total_price", order.TotalPrice.StringFixed(2),
		"line_count", len(lines))
	return orderID, nil
}

// GetStatus fetches the stored status of an order.
func (r *OrderRepository) GetStatus(orderID int) (string, error) {
	r.logger.Debug("Retrieving order status", "order_id", orderID)

	query := `SELECT status FROM orders WHERE order_id = $1`

	var status string
	err := r.db.QueryRow(query, orderID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Order not found", "order_id", orderID)
			return "", ErrOrderNotFound
		}
		r.logger.Error("Failed to retrieve order status", "error", err, "order_id", orderID)
		return "", fmt.Errorf("failed to retrieve order status: %v", err)
	}

	return status, nil
}

// Count returns the total number of persisted orders.
func (r *OrderRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.logger.Error("Failed to count orders", "error", err)
		return 0, fmt.Errorf("failed to count orders: %v", err)
	}
	return count, nil
}
