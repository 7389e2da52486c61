package models

import "gorm.io/gorm"

// OrderItem is a snapshot of an item at the time the order was placed, so
// later edits to the listing do not rewrite order history. Price is in
// cents.
type OrderItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string `json:"order_id" gorm:"index;type:varchar(36)"`
	ItemID     string `json:"item_id" gorm:"type:varchar(36)"`
	Title      string `json:"title" gorm:"type:varchar(100)"`
	Price      int    `json:"price"`
	Quantity   int    `json:"quantity"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Order represents a placed customer order. UserID is the owner; a single
// order is visible only to an owner who also holds ADMIN (see the access
// service), while the orders listing is always scoped to the caller.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Total      int         `json:"total"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
