package services

import (
	"encoding/json"
	"fmt"
	"log"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/rabbitmq"
)

// CartService reconciles a user's cart. Adding an item merges into the
// existing line for that item when present, so the cart never holds two
// lines for the same (user, item) pair; the atomicity of the merge is the
// cart repository's Upsert contract.
type CartService struct {
	cartRepo repositories.CartRepository
	itemRepo repositories.ItemRepository
	mqClient *rabbitmq.Client
}

// NewCartService creates a new CartService. mqClient may be nil; cart
// events are then skipped.
func NewCartService(cartRepo repositories.CartRepository, itemRepo repositories.ItemRepository, mqClient *rabbitmq.Client) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		mqClient: mqClient,
	}
}

// AddToCart puts one unit of the item into the user's cart: an existing
// line grows by exactly 1, otherwise a new line with quantity 1 is created.
// Requires an authenticated user and an existing item.
func (s *CartService) AddToCart(userID string, itemID string) (*models.CartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w to add items to a cart", apperrors.ErrUnauthenticated)
	}

	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}

	line, err := s.cartRepo.Upsert(userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to add item %s to cart: %w", itemID, err)
	}

	// Publish a cart event. Failures are warnings: the cart line is already
	// persisted and the event stream is best-effort.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"event":    "cart.item_added",
			"userID":   userID,
			"itemID":   itemID,
			"quantity": line.Quantity,
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal cart event to JSON: %v", err)
		} else if err := s.mqClient.Publish(rabbitmq.CartQueue, body); err != nil {
			log.Printf("Warning: failed to publish cart event for user %s: %v", userID, err)
		}
	}

	return line, nil
}

// GetCart returns all of the user's cart lines.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w to view a cart", apperrors.ErrUnauthenticated)
	}
	return s.cartRepo.GetByUser(userID)
}

// RemoveFromCart deletes a cart line by its ID. Only the line's owner may
// remove it; the inverse of AddToCart's merge.
func (s *CartService) RemoveFromCart(userID string, cartItemID string) error {
	if userID == "" {
		return fmt.Errorf("%w to remove items from a cart", apperrors.ErrUnauthenticated)
	}

	line, err := s.cartRepo.GetByID(cartItemID)
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return fmt.Errorf("%w: this cart item is not yours", apperrors.ErrForbidden)
	}
	return s.cartRepo.Delete(cartItemID)
}
