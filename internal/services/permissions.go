package services

import (
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
)

// HasPermission decides whether a user may perform an action that requires
// any one of the given permissions: allow when the intersection of the
// user's permissions and the required set is non-empty, deny otherwise.
//
// The function is pure and total: a nil user or an empty permission list is
// an empty set and denies by default, never panics. Denials return
// ErrForbidden carrying the required set for context.
func HasPermission(user *models.User, required []models.Permission) error {
	if user != nil {
		for _, need := range required {
			if user.Permissions.Has(need) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: you need one of %v", apperrors.ErrForbidden, required)
}
