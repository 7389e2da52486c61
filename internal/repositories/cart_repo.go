package repositories

import (
	"gerai/internal/models"
)

// CartRepository defines the interface for cart line data access.
//
// Upsert is the atomic increment-or-insert primitive: if a line for
// (userID, itemID) exists its quantity grows by exactly one, otherwise a new
// line with quantity 1 is created. Implementations must serialize concurrent
// Upserts for the same pair so no increment is lost and the cart never holds
// two lines for one item.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	Upsert(userID string, itemID string) (*models.CartItem, error)
	Delete(id string) error
}
