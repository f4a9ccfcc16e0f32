package models

import "github.com/shopspring/decimal"

// Order is a persisted order row. TotalPrice is the sum of line totals over
// every catalog-resolvable item that was in the cart at completion time.
type Order struct {
	OrderID    int             `json:"order_id" db:"order_id"`
	Status     string          `json:"status" db:"status"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
}

// OrderLine is one row in order_details: a single food item of a completed
// order, priced at completion time.
type OrderLine struct {
	OrderID   int             `json:"order_id" db:"order_id"`
	ItemID    int             `json:"item_id" db:"item_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	LineTotal decimal.Decimal `json:"total_price" db:"total_price"`
}

// Order statuses as stored in the orders table. The user-facing phrasing for
// these lives with the fulfillment service.
const (
	StatusInProgress     = "in progress"
	StatusReady          = "ready"
	StatusOutForDelivery = "out for delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)
