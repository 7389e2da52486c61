package repositories

import (
	"fmt"
	"sync"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository. The
// single mutex is its serialization point: concurrent Upserts for the same
// (user, item) pair apply one at a time, so no increment is lost.
type MockCartRepository struct {
	lines map[string]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string]models.CartItem),
	}
}

// GetByUser returns all cart lines belonging to a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lineList := make([]models.CartItem, 0)
	for _, line := range r.lines {
		if line.UserID == userID {
			lineList = append(lineList, line)
		}
	}
	return lineList, nil
}

// GetByID returns a cart line by its ID.
func (r *MockCartRepository) GetByID(id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	line, ok := r.lines[id]
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &line, nil
}

// Upsert increments the (userID, itemID) line by one, creating it with
// quantity 1 if absent.
func (r *MockCartRepository) Upsert(userID string, itemID string) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, line := range r.lines {
		if line.UserID == userID && line.ItemID == itemID {
			line.Quantity++
			r.lines[id] = line
			return &line, nil
		}
	}

	line := models.CartItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	r.lines[line.ID] = line
	return &line, nil
}

// Delete removes a cart line by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.lines[id]
	if !ok {
		return fmt.Errorf("cart item with ID %s not found for deletion: %w", id, apperrors.ErrNotFound)
	}
	delete(r.lines, id)
	return nil
}
