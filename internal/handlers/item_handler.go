package handlers

import (
	"log"

	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for store items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the item routes. Reads are public; writes
// require a session.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Post("/", middleware.RequireAuth(), h.HandleCreateItem)
	itemRoutes.Put("/:id", middleware.RequireAuth(), h.HandleUpdateItem)
	itemRoutes.Delete("/:id", middleware.RequireAuth(), h.HandleDeleteItem)
}

// HandleGetItems retrieves all items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error getting all items: %v", err)
		return fail(c, "Could not retrieve items", err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.service.GetItemByID(itemID)
	if err != nil {
		log.Printf("Error getting item by ID %s: %v", itemID, err)
		return fail(c, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new item owned by the signed-in user.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(item); err != nil {
		return validationFail(c, err)
	}

	if err := h.service.CreateItem(middleware.CurrentUser(c), &item); err != nil {
		log.Printf("Error creating item: %v", err)
		return fail(c, "Could not create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing item, subject to the ownership
// rules.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")
	if err := h.validate.Struct(item); err != nil {
		return validationFail(c, err)
	}

	if err := h.service.UpdateItem(middleware.CurrentUser(c), &item); err != nil {
		log.Printf("Error updating item %s: %v", item.ID, err)
		return fail(c, "Could not update item", err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item, subject to the ownership rules.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.service.DeleteItem(middleware.CurrentUser(c), itemID); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return fail(c, "Could not delete item", err)
	}
	return c.JSON(fiber.Map{
		"message": "Item deleted successfully",
	})
}
