package middleware

import (
	"log"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

const (
	localsUserID = "user_id"
	localsUser   = "user"
)

// Session resolves the request identity once, before any handler. No cookie
// means an anonymous request and the chain continues. A present but invalid
// token fails the whole request: a forged or corrupt token is an error, not
// a no-op. On success the user ID and, when the account still exists, the
// full user record are attached to the request context; a stale token for a
// deleted account downgrades to anonymous instead of crashing.
func Session(tokens *services.TokenService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(CookieName)
		if raw == "" {
			return c.Next()
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			log.Printf("Session token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid session token",
			})
		}
		c.Locals(localsUserID, userID)

		user, err := userRepo.GetByID(userID)
		if err != nil {
			// Valid signature but no matching account, e.g. a deleted user
			// with a stale token. Treated as unauthenticated.
			log.Printf("Session user %s not resolvable: %v", userID, err)
			return c.Next()
		}
		c.Locals(localsUser, user)
		return c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to an existing user.
// It must run after Session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "you must be logged in",
			})
		}
		return c.Next()
	}
}

// CurrentUserID returns the verified subject ID of the request, or "" for
// anonymous requests.
func CurrentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localsUserID).(string); ok {
		return id
	}
	return ""
}

// CurrentUser returns the resolved user record of the request, or nil when
// the request is anonymous or the account no longer exists.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(localsUser).(*models.User); ok {
		return user
	}
	return nil
}
