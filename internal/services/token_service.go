package services

import (
	"fmt"
	"time"

	"gerai/internal/apperrors"

	"github.com/dgrijalva/jwt-go"
)

// TokenService issues and verifies signed session tokens. It is stateless
// beyond the shared signing secret: validity is decided by the signature
// alone, there is no revocation list, and no expiry is embedded; the
// session lifetime lives in the cookie at the transport boundary. Rotating
// the secret invalidates every outstanding session.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService over the shared application
// secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// Issue produces a signed token binding the given user ID.
func (s *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(), // Issued at time
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token, returning the user ID it binds. A
// malformed token or bad signature yields ErrInvalidToken. Verify does not
// check whether the user still exists; that is the session middleware's
// second pass.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", apperrors.ErrInvalidToken)
	}
	return userID, nil
}
