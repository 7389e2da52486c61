package services

import (
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// UserService handles the administrative user operations: listing accounts
// and changing permission grants. Both require ADMIN or PERMISSIONUPDATE.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns all accounts to an actor holding ADMIN or
// PERMISSIONUPDATE.
func (s *UserService) ListUsers(actor *models.User) ([]models.User, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w to list users", apperrors.ErrUnauthenticated)
	}
	if err := HasPermission(actor, []models.Permission{models.PermissionAdmin, models.PermissionPermissionUpdate}); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll()
}

// UpdatePermissions replaces the target user's permission set. The actor
// needs ADMIN or PERMISSIONUPDATE, and every label must come from the
// closed enumeration.
func (s *UserService) UpdatePermissions(actor *models.User, targetID string, labels []string) (*models.User, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w to update permissions", apperrors.ErrUnauthenticated)
	}
	if err := HasPermission(actor, []models.Permission{models.PermissionAdmin, models.PermissionPermissionUpdate}); err != nil {
		return nil, err
	}

	perms := make(models.PermissionList, 0, len(labels))
	for _, label := range labels {
		p, err := models.ParsePermission(label)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}

	if err := s.userRepo.UpdatePermissions(targetID, perms); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(targetID)
}
