package handlers

import (
	"log"

	"gerai/internal/middleware"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the signed-in user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes; all of them require a session.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.RequireAuth())
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:id", h.HandleRemoveFromCart)
}

// HandleGetCart returns the caller's cart lines. The cart service works on
// the bare subject ID, so the handlers here use CurrentUserID rather than
// the full user record.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	lines, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return fail(c, "Could not retrieve cart", err)
	}
	return c.JSON(lines)
}

// AddToCartRequest represents the request body for adding an item.
type AddToCartRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// HandleAddToCart adds one unit of an item to the caller's cart, merging
// into an existing line when present.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	userID := middleware.CurrentUserID(c)
	line, err := h.service.AddToCart(userID, req.ItemID)
	if err != nil {
		log.Printf("Error adding item %s to cart for user %s: %v", req.ItemID, userID, err)
		return fail(c, "Could not add item to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// HandleRemoveFromCart deletes one of the caller's cart lines by its ID.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cartItemID := c.Params("id")
	userID := middleware.CurrentUserID(c)
	if err := h.service.RemoveFromCart(userID, cartItemID); err != nil {
		log.Printf("Error removing cart item %s for user %s: %v", cartItemID, userID, err)
		return fail(c, "Could not remove item from cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}
