package services

import (
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
)

// CanDeleteItem reports whether the actor may delete the item: true for the
// item's owner regardless of permissions, and for anyone holding ADMIN or
// ITEMDELETE.
func CanDeleteItem(actor *models.User, item *models.Item) bool {
	if actor == nil || item == nil {
		return false
	}
	if item.UserID == actor.ID {
		return true
	}
	return HasPermission(actor, []models.Permission{models.PermissionAdmin, models.PermissionItemDelete}) == nil
}

// CanUpdateItem reports whether the actor may edit the item: the owner, or
// anyone holding ADMIN or ITEMUPDATE.
func CanUpdateItem(actor *models.User, item *models.Item) bool {
	if actor == nil || item == nil {
		return false
	}
	if item.UserID == actor.ID {
		return true
	}
	return HasPermission(actor, []models.Permission{models.PermissionAdmin, models.PermissionItemUpdate}) == nil
}

// AuthorizeOrderView decides whether the actor may see a single order. The
// rule is conjunctive: the actor must own the order AND hold ADMIN. This is
// deliberately stricter than item deletion (ownership OR permission); do not
// loosen it to OR without confirming intent. Regular customers read their
// orders through the per-user listing instead.
func AuthorizeOrderView(actor *models.User, order *models.Order) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	ownsOrder := order != nil && order.UserID == actor.ID
	isAdmin := actor.Permissions.Has(models.PermissionAdmin)
	if !ownsOrder || !isAdmin {
		return fmt.Errorf("%w: you cannot see this order", apperrors.ErrForbidden)
	}
	return nil
}
