package repositories

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves all cart lines belonging to a user.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := r.db.Find(&lines, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return lines, nil
}

// GetByID retrieves a single cart line by its ID.
func (r *GORMCartRepository) GetByID(id string) (*models.CartItem, error) {
	var line models.CartItem
	if err := r.db.First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item by ID %s: %w", id, err)
	}
	return &line, nil
}

// Upsert increments the (userID, itemID) line by one, creating it with
// quantity 1 if absent. The read and write run in one transaction with a
// row-level lock, so two concurrent calls for the same pair cannot both read
// quantity N and both write N+1. The unique index on (user_id, item_id)
// backstops the create path: if two transactions race to insert the first
// line, the loser fails the constraint and retries as an increment.
func (r *GORMCartRepository) Upsert(userID string, itemID string) (*models.CartItem, error) {
	var result models.CartItem

	upsert := func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var line models.CartItem
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&line, "user_id = ? AND item_id = ?", userID, itemID).Error

			switch {
			case err == nil:
				line.Quantity++
				if err := tx.Model(&line).Update("quantity", line.Quantity).Error; err != nil {
					return fmt.Errorf("failed to increment cart quantity: %w", err)
				}
				result = line
				return nil
			case errors.Is(err, gorm.ErrRecordNotFound):
				line = models.CartItem{
					ID:       uuid.New().String(),
					UserID:   userID,
					ItemID:   itemID,
					Quantity: 1,
				}
				if err := tx.Create(&line).Error; err != nil {
					return fmt.Errorf("failed to create cart item: %w", err)
				}
				result = line
				return nil
			default:
				return fmt.Errorf("failed to look up cart item: %w", err)
			}
		})
	}

	if err := upsert(); err != nil {
		// Retry once: a concurrent insert for the same pair may have won
		// the unique-index race, in which case the line now exists and the
		// increment path applies.
		if retryErr := upsert(); retryErr != nil {
			return nil, err
		}
	}
	return &result, nil
}

// Delete removes a cart line by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s not found for deletion: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
