package handlers

import (
	"log"

	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the administrative user endpoints.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes; all of them require a session,
// and the service additionally requires ADMIN or PERMISSIONUPDATE.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users", middleware.RequireAuth())
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Patch("/:id/permissions", h.HandleUpdatePermissions)
}

// HandleGetUsers lists all accounts.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return fail(c, "Could not list users", err)
	}
	return c.JSON(users)
}

// UpdatePermissionsRequest represents the request body for a permission
// update.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// HandleUpdatePermissions replaces a user's permission set.
func (h *UserHandler) HandleUpdatePermissions(c *fiber.Ctx) error {
	var req UpdatePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing permissions request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	for _, label := range req.Permissions {
		if _, err := models.ParsePermission(label); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
	}

	targetID := c.Params("id")
	user, err := h.service.UpdatePermissions(middleware.CurrentUser(c), targetID, req.Permissions)
	if err != nil {
		log.Printf("Error updating permissions for user %s: %v", targetID, err)
		return fail(c, "Could not update permissions", err)
	}
	return c.JSON(user)
}
