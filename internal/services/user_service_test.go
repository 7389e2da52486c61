package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

func newUserFixture(t *testing.T) (*services.UserService, *repositories.MockUserRepository) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	err := userRepo.Create(&models.User{
		ID:          "user-1",
		Name:        "Alice",
		Email:       "alice@example.com",
		Permissions: models.PermissionList{models.PermissionUser},
	})
	assert.NoError(t, err)
	err = userRepo.Create(&models.User{
		ID:          "admin-1",
		Name:        "Root",
		Email:       "root@example.com",
		Permissions: models.PermissionList{models.PermissionUser, models.PermissionAdmin},
	})
	assert.NoError(t, err)
	return services.NewUserService(userRepo), userRepo
}

func TestUserService_ListUsers(t *testing.T) {
	userService, userRepo := newUserFixture(t)

	admin, err := userRepo.GetByID("admin-1")
	assert.NoError(t, err)
	users, err := userService.ListUsers(admin)
	assert.NoError(t, err)
	assert.Len(t, users, 2)

	// PERMISSIONUPDATE alone is enough; ADMIN is not required.
	granter := &models.User{ID: "granter-1", Permissions: models.PermissionList{models.PermissionUser, models.PermissionPermissionUpdate}}
	_, err = userService.ListUsers(granter)
	assert.NoError(t, err)

	// A plain USER is denied, and so is an anonymous caller.
	plain, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	_, err = userService.ListUsers(plain)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = userService.ListUsers(nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUserService_UpdatePermissions(t *testing.T) {
	userService, userRepo := newUserFixture(t)
	admin, err := userRepo.GetByID("admin-1")
	assert.NoError(t, err)

	updated, err := userService.UpdatePermissions(admin, "user-1", []string{"USER", "ITEMDELETE"})
	assert.NoError(t, err)
	assert.Equal(t, models.PermissionList{models.PermissionUser, models.PermissionItemDelete}, updated.Permissions)

	stored, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, updated.Permissions, stored.Permissions)
}

func TestUserService_UpdatePermissions_RejectsUnknownLabel(t *testing.T) {
	userService, userRepo := newUserFixture(t)
	admin, err := userRepo.GetByID("admin-1")
	assert.NoError(t, err)

	_, err = userService.UpdatePermissions(admin, "user-1", []string{"USER", "SUPERUSER"})
	assert.Error(t, err)

	// The target's grants are untouched after a rejected update.
	stored, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Equal(t, models.PermissionList{models.PermissionUser}, stored.Permissions)
}

func TestUserService_UpdatePermissions_RequiresGrant(t *testing.T) {
	userService, userRepo := newUserFixture(t)

	plain, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	_, err = userService.UpdatePermissions(plain, "admin-1", []string{"USER"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = userService.UpdatePermissions(nil, "user-1", []string{"USER"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUserService_UpdatePermissions_UnknownTarget(t *testing.T) {
	userService, userRepo := newUserFixture(t)
	admin, err := userRepo.GetByID("admin-1")
	assert.NoError(t, err)

	_, err = userService.UpdatePermissions(admin, "no-such-user", []string{"USER"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
