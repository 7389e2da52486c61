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

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.ItemRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.ItemRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		mqClient:  mqClient,
	}
}

// GetOrder retrieves a single order on behalf of the actor, applying the
// strict order-visibility rule (owner AND ADMIN).
func (s *OrderService) GetOrder(actor *models.User, id string) (*models.Order, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w to view an order", apperrors.ErrUnauthenticated)
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOrderView(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrdersForUser retrieves the actor's own orders.
func (s *OrderService) GetOrdersForUser(actor *models.User) ([]models.Order, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w to view orders", apperrors.ErrUnauthenticated)
	}
	return s.orderRepo.GetByUser(actor.ID)
}

// OrderLine is a requested (item, quantity) pair for order creation.
type OrderLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// CreateOrder places an order for the actor, snapshotting each item's title
// and price at order time.
func (s *OrderService) CreateOrder(actor *models.User, lines []OrderLine) (*models.Order, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w to place an order", apperrors.ErrUnauthenticated)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("an order needs at least one item")
	}

	var total int
	var orderItems []models.OrderItem
	for _, line := range lines {
		item, err := s.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, models.OrderItem{
			ItemID:   item.ID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: line.Quantity,
		})
		total += item.Price * line.Quantity
	}

	order := &models.Order{
		UserID: actor.ID,
		Items:  orderItems,
		Total:  total,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Publish an order.created event. Failures are warnings: the order is
	// already persisted.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"event":   "order.created",
			"orderID": order.ID,
			"userID":  order.UserID,
			"total":   order.Total,
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal order event to JSON: %v", err)
		} else if err := s.mqClient.Publish(rabbitmq.CartQueue, body); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}
