package repositories

import (
	"fmt"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &user, nil
}

// GetByEmail returns a user by their (lowercased) email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
}

// GetByResetToken returns the user holding the token while it is still
// valid. A token at exactly its expiry instant is still accepted.
func (r *MockUserRepository) GetByResetToken(token string, now time.Time) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ResetToken == token && user.ResetToken != "" &&
			user.ResetTokenExpiry != nil && !user.ResetTokenExpiry.Before(now) {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("no user with a valid reset token: %w", apperrors.ErrInvalidResetToken)
}

// SetResetToken stores a new reset token and expiry, replacing any prior
// pair.
func (r *MockUserRepository) SetResetToken(id string, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for reset token update: %w", id, apperrors.ErrNotFound)
	}
	user.ResetToken = token
	user.ResetTokenExpiry = &expiry
	r.users[id] = user
	return nil
}

// ClearResetAndSetPassword stores the new password hash and clears the reset
// token pair in one step.
func (r *MockUserRepository) ClearResetAndSetPassword(id string, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for password update: %w", id, apperrors.ErrNotFound)
	}
	user.Password = hashedPassword
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	r.users[id] = user
	return nil
}

// UpdatePermissions replaces the user's permission set.
func (r *MockUserRepository) UpdatePermissions(id string, permissions models.PermissionList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for permission update: %w", id, apperrors.ErrNotFound)
	}
	user.Permissions = permissions
	r.users[id] = user
	return nil
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		userList = append(userList, user)
	}
	return userList, nil
}
