package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a fresh in-memory SQLite database named after the test,
// so tests never share state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{})
	assert.NoError(t, err)
	return db
}

func TestGORMUserRepository_CreateAndLookup(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{
		Name:        "Alice",
		Email:       "alice@example.com",
		Password:    "hashed",
		Permissions: models.PermissionList{models.PermissionUser},
	}
	assert.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
	// The permission list survives the round trip through its column form.
	assert.Equal(t, models.PermissionList{models.PermissionUser}, byID.Permissions)

	byEmail, err := repo.GetByEmail("alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID("no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetByEmail("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// The reset token is valid for exactly one hour from issuance: still
// accepted one second before the hour elapses (and at the boundary itself),
// rejected one second after.
func TestGORMUserRepository_ResetTokenWindow(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	assert.NoError(t, repo.Create(user))

	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(time.Hour)
	assert.NoError(t, repo.SetResetToken(user.ID, "sometoken", expiry))

	// 59:59 elapsed: accepted.
	got, err := repo.GetByResetToken("sometoken", issued.Add(time.Hour-time.Second))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Exactly one hour elapsed: still accepted.
	got, err = repo.GetByResetToken("sometoken", issued.Add(time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// 60:01 elapsed: rejected.
	_, err = repo.GetByResetToken("sometoken", issued.Add(time.Hour+time.Second))
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	// A wrong token never matches, expired or not.
	_, err = repo.GetByResetToken("othertoken", issued)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestGORMUserRepository_RequestOverwritesPriorToken(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	assert.NoError(t, repo.Create(user))

	now := time.Now()
	assert.NoError(t, repo.SetResetToken(user.ID, "first", now.Add(time.Hour)))
	assert.NoError(t, repo.SetResetToken(user.ID, "second", now.Add(time.Hour)))

	// Only the newest token is live.
	_, err := repo.GetByResetToken("first", now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	got, err := repo.GetByResetToken("second", now)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestGORMUserRepository_ClearResetAndSetPassword(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "oldhash"}
	assert.NoError(t, repo.Create(user))
	assert.NoError(t, repo.SetResetToken(user.ID, "sometoken", time.Now().Add(time.Hour)))

	assert.NoError(t, repo.ClearResetAndSetPassword(user.ID, "newhash"))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "newhash", got.Password)
	assert.Empty(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiry)

	// The password update and token clear happen together: the old token
	// cannot be replayed.
	_, err = repo.GetByResetToken("sometoken", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestGORMUserRepository_UpdatePermissions(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hashed",
		Permissions: models.PermissionList{models.PermissionUser}}
	assert.NoError(t, repo.Create(user))

	newPerms := models.PermissionList{models.PermissionUser, models.PermissionAdmin}
	assert.NoError(t, repo.UpdatePermissions(user.ID, newPerms))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, newPerms, got.Permissions)

	err = repo.UpdatePermissions("no-such-id", newPerms)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
