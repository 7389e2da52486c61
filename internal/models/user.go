package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the store.
//
// Email is unique and always stored lowercase; case normalization happens in
// the account service before any lookup or insert. Password holds the bcrypt
// hash and never the plaintext. ResetToken and ResetTokenExpiry form the
// single active password-reset credential: requesting a new token overwrites
// the previous pair, and a successful reset clears both.
type User struct {
	ID               string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name             string         `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email            string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password         string         `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"`
	Permissions      PermissionList `json:"permissions" gorm:"type:varchar(255)"`
	ResetToken       string         `json:"-" gorm:"index;type:varchar(80)"`
	ResetTokenExpiry *time.Time     `json:"-"`
	gorm.Model                      // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
