package models

import "gorm.io/gorm"

// Item represents a product listed in the store. UserID is the creator and
// grounds the ownership checks for update and delete. Price is in cents.
type Item struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Image       string `json:"image" gorm:"type:varchar(255)" validate:"omitempty,url"`
	LargeImage  string `json:"large_image" gorm:"type:varchar(255)" validate:"omitempty,url"`
	Price       int    `json:"price" validate:"required,gt=0"`
	UserID      string `json:"user_id" gorm:"index;type:varchar(36)"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
