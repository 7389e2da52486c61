package handlers

import (
	"log"
	"time"

	"gerai/internal/middleware"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles HTTP requests for signup, signin, signout and the
// password-reset flow.
type AccountHandler struct {
	accountService *services.AccountService
	validate       *validator.Validate
	cookieMaxAge   time.Duration
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService *services.AccountService, cookieMaxAge time.Duration) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		validate:       validator.New(),
		cookieMaxAge:   cookieMaxAge,
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignUp)
	router.Post("/signin", h.HandleSignIn)
	router.Post("/signout", h.HandleSignOut)
	router.Post("/request-reset", h.HandleRequestReset)
	router.Post("/reset-password", h.HandleResetPassword)
	router.Get("/me", h.HandleMe)
}

// SignUpRequest represents the request body for signup.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleSignUp handles new account registration and signs the user in.
func (h *AccountHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user, token, err := h.accountService.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Error signing up %s: %v", req.Email, err)
		return fail(c, "Could not sign up", err)
	}

	setSessionCookie(c, token, h.cookieMaxAge)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user,
	})
}

// SignInRequest represents the request body for signin.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn handles signin and sets the session cookie. Unknown email
// and wrong password get the same generic message.
func (h *AccountHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signin request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user, token, err := h.accountService.SignIn(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during signin for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   "invalid credentials",
		})
	}

	setSessionCookie(c, token, h.cookieMaxAge)
	return c.JSON(fiber.Map{
		"message": "Signed in successfully",
		"user":    user,
	})
}

// HandleSignOut clears the session cookie. Tokens are stateless, so there
// is no server-side session to tear down.
func (h *AccountHandler) HandleSignOut(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"message": "Goodbye!",
	})
}

// RequestResetRequest represents the request body for requesting a
// password reset.
type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestReset issues a password-reset token and dispatches the reset
// mail. Dispatch failure is reported through mail_queued without failing
// the request; the token is already persisted and valid.
func (h *AccountHandler) HandleRequestReset(c *fiber.Ctx) error {
	var req RequestResetRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reset request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	mailQueued, err := h.accountService.RequestPasswordReset(req.Email)
	if err != nil {
		log.Printf("Error requesting password reset for %s: %v", req.Email, err)
		return fail(c, "Could not request a password reset", err)
	}

	return c.JSON(fiber.Map{
		"message":     "Check your email for a reset link",
		"mail_queued": mailQueued,
	})
}

// ResetPasswordRequest represents the request body for completing a
// password reset.
type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// HandleResetPassword completes a reset and signs the user in with a fresh
// session cookie.
func (h *AccountHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing reset password request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user, token, err := h.accountService.ResetPassword(req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		log.Printf("Error resetting password: %v", err)
		return fail(c, "Could not reset password", err)
	}

	setSessionCookie(c, token, h.cookieMaxAge)
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
		"user":    user,
	})
}

// HandleMe returns the signed-in user, or 401 for anonymous requests.
func (h *AccountHandler) HandleMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "you must be logged in",
		})
	}
	return c.JSON(user)
}
