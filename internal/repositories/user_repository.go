package repositories

import (
	"time"

	"gerai/internal/models"
)

// UserRepository defines the interface for user data access.
//
// GetByResetToken takes the caller's notion of "now" so the one-hour
// validity window is decided by the query, not by the clock of whichever
// store backs the interface. ClearResetAndSetPassword updates the password
// and clears the reset token pair in a single write.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByResetToken(token string, now time.Time) (*models.User, error)
	SetResetToken(id string, token string, expiry time.Time) error
	ClearResetAndSetPassword(id string, hashedPassword string) error
	UpdatePermissions(id string, permissions models.PermissionList) error
	GetAll() ([]models.User, error)
}
