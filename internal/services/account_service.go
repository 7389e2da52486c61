package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/mailer"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is the validity window of a password-reset token, measured
// from issuance.
const resetTokenTTL = time.Hour

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 20

// AccountService handles signup, signin, and the password-reset lifecycle.
// It owns every mutation of a user's credential fields; permissions are
// managed separately by the user service.
type AccountService struct {
	userRepo    repositories.UserRepository
	tokens      *TokenService
	mail        mailer.Mailer
	frontendURL string
	bcryptCost  int
}

// NewAccountService creates a new AccountService. mail may be nil, in which
// case reset mails are skipped with a warning. A non-positive bcryptCost
// falls back to bcrypt.DefaultCost.
func NewAccountService(userRepo repositories.UserRepository, tokens *TokenService, mail mailer.Mailer, frontendURL string, bcryptCost int) *AccountService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		userRepo:    userRepo,
		tokens:      tokens,
		mail:        mail,
		frontendURL: frontendURL,
		bcryptCost:  bcryptCost,
	}
}

// SignUp creates a new account and signs it in. The email is normalized to
// lowercase, the password stored only as a bcrypt hash, and the account
// starts with the default USER permission. Returns the user and a fresh
// session token.
func (s *AccountService) SignUp(name, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrEmailTaken, email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword),
		Permissions: models.PermissionList{models.PermissionUser},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn verifies credentials and returns the user and a fresh session
// token. An unknown email yields ErrNotFound and a wrong password
// ErrInvalidCredentials; handlers present both with the same generic
// message, the distinction exists for logs and tests only. The password
// check is bcrypt's constant-time comparison.
func (s *AccountService) SignIn(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("no account for %s: %w", email, apperrors.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestPasswordReset generates a random reset token valid for one hour,
// persists it on the account (overwriting any prior token), and dispatches
// a reset mail. The token state is committed before dispatch, so a mail
// failure never invalidates the token: it is logged and reported through
// the mailQueued return instead of failing the operation.
func (s *AccountService) RequestPasswordReset(email string) (mailQueued bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return false, fmt.Errorf("no account for %s: %w", email, apperrors.ErrNotFound)
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return false, fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)
	expiry := time.Now().Add(resetTokenTTL)

	if err := s.userRepo.SetResetToken(user.ID, resetToken, expiry); err != nil {
		return false, fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.mail == nil {
		log.Printf("Warning: no mailer configured, reset mail for %s not sent", email)
		return false, nil
	}

	body := fmt.Sprintf(
		`Your password reset token is here!<br/><a href="%s/reset?resetToken=%s">Click here to reset your password</a>`,
		s.frontendURL, resetToken,
	)
	if err := s.mail.SendMail(user.Email, "Your password reset token", body); err != nil {
		log.Printf("Warning: failed to dispatch reset mail for %s: %v", email, err)
		return false, nil
	}
	return true, nil
}

// ResetPassword completes a password reset: it checks the confirmation,
// looks up the account holding a still-valid token (issued less than one
// hour ago), stores the new hash while clearing the token pair in the same
// write, and signs the user in with a fresh session token.
func (s *AccountService) ResetPassword(resetToken, newPassword, confirmPassword string) (*models.User, string, error) {
	if newPassword != confirmPassword {
		return nil, "", apperrors.ErrPasswordMismatch
	}

	user, err := s.userRepo.GetByResetToken(resetToken, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidResetToken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrInvalidResetToken, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.ClearResetAndSetPassword(user.ID, string(hashedPassword)); err != nil {
		return nil, "", fmt.Errorf("failed to update password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
