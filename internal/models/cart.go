package models

import "time"

// CartItem is one line of a user's cart: pending purchase intent for a
// single item. The cart never holds two lines for the same (user, item)
// pair; the reconciliation engine merges duplicates by incrementing
// Quantity, and the composite unique index backstops that invariant at the
// storage layer. Removed lines are hard-deleted: a soft delete would keep
// occupying the unique index and block re-adding the item.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)" validate:"required"`
	ItemID    string    `json:"item_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
