package handlers

import (
	"log"

	"gerai/internal/middleware"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes; all of them require a session.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.RequireAuth())
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleGetOrders retrieves the caller's own orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersForUser(middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return fail(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order under the strict visibility
// rule (owner AND ADMIN).
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(middleware.CurrentUser(c), orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	Items []services.OrderLine `json:"items" validate:"required,min=1,dive"`
}

// HandleCreateOrder places an order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	order, err := h.service.CreateOrder(middleware.CurrentUser(c), req.Items)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return fail(c, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
