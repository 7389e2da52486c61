package apperrors

import "errors"

// Sentinel errors shared by services and handlers. Services wrap these with
// %w to add context; handlers match them with errors.Is to pick an HTTP
// status. Nothing outside this package should compare error strings.
var (
	// ErrUnauthenticated means the operation requires a signed-in user and
	// none was attached to the request.
	ErrUnauthenticated = errors.New("you must be logged in")

	// ErrInvalidToken means a session token was present but malformed or
	// carried a bad signature. A forged token fails the request outright;
	// it is never downgraded to anonymous.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrForbidden means the user is authenticated but lacks the required
	// permission or ownership.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrNotFound means no matching account or resource exists.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials means a signin password did not match. Handlers
	// present it with the same generic message as an unknown email so the
	// response does not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch means the reset confirmation password differed
	// from the new password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidResetToken means a password-reset token was unknown or
	// older than one hour.
	ErrInvalidResetToken = errors.New("reset token is invalid or expired")

	// ErrEmailTaken means a signup email already has an account.
	ErrEmailTaken = errors.New("email already registered")
)
