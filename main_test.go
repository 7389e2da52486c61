package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gerai/internal/config"
	"gerai/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSetupAppSmoke(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:setup_app_smoke?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{})
	assert.NoError(t, err)

	cfg := config.Config{
		AppSecret:    "smoke_test_secret",
		FrontendURL:  "http://localhost:7777",
		BcryptCost:   bcrypt.MinCost,
		CookieMaxAge: time.Hour,
	}
	app := setupApp(cfg, db, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Protected routes reject anonymous requests; public reads work.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/items", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestOpenDatabaseSQLiteFallback(t *testing.T) {
	db, err := openDatabase("file:open_db_fallback?mode=memory&cache=shared")
	assert.NoError(t, err)
	assert.NotNil(t, db)
}
