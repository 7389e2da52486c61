package repositories

import (
	"gerai/internal/models"
)

// OrderRepository defines the interface for order data access. There is no
// unscoped GetAll: the orders listing is always per user, and single-order
// access goes through the access service.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	Create(order *models.Order) error
}
