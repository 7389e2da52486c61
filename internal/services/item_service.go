package services

import (
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// ItemService handles business logic related to store items. Reads are
// public; creation requires a signed-in user, and update/delete go through
// the ownership checks in access.go.
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{
		repo: repo,
	}
}

// GetAllItems retrieves all items.
func (s *ItemService) GetAllItems() ([]models.Item, error) {
	return s.repo.GetAll()
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	return s.repo.GetByID(id)
}

// CreateItem creates a new item owned by the actor.
func (s *ItemService) CreateItem(actor *models.User, item *models.Item) error {
	if actor == nil {
		return fmt.Errorf("%w to create an item", apperrors.ErrUnauthenticated)
	}
	item.UserID = actor.ID
	return s.repo.Create(item)
}

// UpdateItem updates an existing item on behalf of the actor. Allowed for
// the owner or a holder of ADMIN/ITEMUPDATE.
func (s *ItemService) UpdateItem(actor *models.User, item *models.Item) error {
	if actor == nil {
		return fmt.Errorf("%w to update an item", apperrors.ErrUnauthenticated)
	}
	existing, err := s.repo.GetByID(item.ID)
	if err != nil {
		return err
	}
	if !CanUpdateItem(actor, existing) {
		return fmt.Errorf("%w: you cannot update this item", apperrors.ErrForbidden)
	}
	item.UserID = existing.UserID // ownership never changes on update
	return s.repo.Update(item)
}

// DeleteItem deletes an item on behalf of the actor. Allowed for the owner
// or a holder of ADMIN/ITEMDELETE.
func (s *ItemService) DeleteItem(actor *models.User, id string) error {
	if actor == nil {
		return fmt.Errorf("%w to delete an item", apperrors.ErrUnauthenticated)
	}
	item, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !CanDeleteItem(actor, item) {
		return fmt.Errorf("%w: you don't have permission to delete this item", apperrors.ErrForbidden)
	}
	return s.repo.Delete(id)
}
