package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"habesha-bites/models"
	"habesha-bites/pkg/database"
	"habesha-bites/pkg/logger"
)

// ErrFoodItemNotFound is returned when a food name has no catalog row.
var ErrFoodItemNotFound = errors.New("food item not found")

type MenuRepositoryInterface interface {
	GetByName(name string) (*models.FoodItem, error)
	Count() (int, error)
}

// MenuRepository reads the food_items catalog. The catalog is reference data;
// this repository never writes it.
type MenuRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewMenuRepository(log *logger.Logger, db *database.DB) *MenuRepository {
	return &MenuRepository{
		logger: log.WithComponent("menu_repository"),
		db:     db,
	}
}

// GetByName resolves a food name to its catalog id and unit price. Names are
// matched exactly as stored, the same way carts key them.
func (r *MenuRepository) GetByName(name string) (*models.FoodItem, error) {
	r.logger.Debug("Looking up food item", "name", name)

	query := `SELECT item_id, name, price FROM food_items WHERE name = $1`

	item := &models.FoodItem{}
	err := r.db.QueryRow(query, name).Scan(&item.ItemID, &item.Name, &item.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Food item not found in catalog", "name", name)
			return nil, ErrFoodItemNotFound
		}
		r.logger.Error("Failed to look up food item", "error", err, "name", name)
		return nil, fmt.Errorf("failed to look up food item: %v", err)
	}

	return item, nil
}

// Count returns the number of catalog items.
func (r *MenuRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM food_items`).Scan(&count); err != nil {
		r.logger.Error("Failed to count food items", "error", err)
		return 0, fmt.Errorf("failed to count food items: %v", err)
	}
	return count, nil
}
