package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		required []models.Permission
		allowed  bool
	}{
		{
			name:     "plain user denied admin action",
			user:     &models.User{Permissions: models.PermissionList{models.PermissionUser}},
			required: []models.Permission{models.PermissionAdmin},
			allowed:  false,
		},
		{
			name:     "admin allowed",
			user:     &models.User{Permissions: models.PermissionList{models.PermissionAdmin}},
			required: []models.Permission{models.PermissionAdmin},
			allowed:  true,
		},
		{
			name:     "any overlap allows",
			user:     &models.User{Permissions: models.PermissionList{models.PermissionUser, models.PermissionItemDelete}},
			required: []models.Permission{models.PermissionAdmin, models.PermissionItemDelete},
			allowed:  true,
		},
		{
			name:     "nil user denied",
			user:     nil,
			required: []models.Permission{models.PermissionAdmin},
			allowed:  false,
		},
		{
			name:     "empty permission set denied",
			user:     &models.User{},
			required: []models.Permission{models.PermissionUser},
			allowed:  false,
		},
		{
			name:     "empty required set denies",
			user:     &models.User{Permissions: models.PermissionList{models.PermissionAdmin}},
			required: nil,
			allowed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := services.HasPermission(tt.user, tt.required)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}
