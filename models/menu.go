package models

import "github.com/shopspring/decimal"

// FoodItem is a read-only catalog entry from the food_items table. Carts key
// items by name; completion resolves the name back to ItemID and Price.
type FoodItem struct {
	ItemID int             `json:"item_id" db:"item_id"`
	Name   string          `json:"name" db:"name"`
	Price  decimal.Decimal `json:"price" db:"price"`
}
