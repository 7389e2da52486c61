package repositories

import (
	"errors"
	"fmt"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database. Callers are
// expected to pass an already lowercased email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByResetToken retrieves the user holding the given reset token, but only
// while the token's expiry has not passed. A token at exactly its expiry
// instant is still accepted.
func (r *GORMUserRepository) GetByResetToken(token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "reset_token = ? AND reset_token_expiry >= ?", token, now).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with a valid reset token: %w", apperrors.ErrInvalidResetToken)
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return &user, nil
}

// SetResetToken stores a new reset token and expiry on the user, replacing
// any previous pair.
func (r *GORMUserRepository) SetResetToken(id string, token string, expiry time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set reset token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for reset token update: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// ClearResetAndSetPassword stores the new password hash and clears the reset
// token pair in one UPDATE, so a crash cannot leave a reusable token behind
// a changed password.
func (r *GORMUserRepository) ClearResetAndSetPassword(id string, hashedPassword string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":           hashedPassword,
		"reset_token":        "",
		"reset_token_expiry": nil,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for password update: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// UpdatePermissions replaces the user's permission set.
func (r *GORMUserRepository) UpdatePermissions(id string, permissions models.PermissionList) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("permissions", permissions)
	if res.Error != nil {
		return fmt.Errorf("failed to update permissions: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found for permission update: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}
