package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/services"
	"gerai/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string, now time.Time) (*models.User, error) {
	args := m.Called(token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(id string, token string, expiry time.Time) error {
	args := m.Called(id, token, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetAndSetPassword(id string, hashedPassword string) error {
	args := m.Called(id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePermissions(id string, permissions models.PermissionList) error {
	args := m.Called(id, permissions)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockMailer records dispatched mails and can simulate dispatch failure.
type MockMailer struct {
	sent     []string
	bodies   []string
	failWith error
}

func (m *MockMailer) SendMail(to, subject, htmlBody string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, to)
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func newAccountService(repo *MockUserRepository, mail *MockMailer) *services.AccountService {
	tokens := services.NewTokenService("test_app_secret")
	var m mailer.Mailer
	if mail != nil {
		m = mail // keep a nil *MockMailer out of the interface value
	}
	return services.NewAccountService(repo, tokens, m, "http://localhost:7777", bcrypt.MinCost)
}

func TestAccountService_SignUp(t *testing.T) {
	mockRepo := new(MockUserRepository)
	accountService := newAccountService(mockRepo, nil)

	var created *models.User
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = "user-123"
	}).Return(nil).Once()

	user, token, err := accountService.SignUp("Alice", "Alice@Example.COM", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Email is normalized to lowercase before storage.
	assert.Equal(t, "alice@example.com", user.Email)
	// The stored password is a hash, never the plaintext, and the plaintext
	// verifies against it.
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	// New accounts start with exactly the USER permission.
	assert.Equal(t, models.PermissionList{models.PermissionUser}, created.Permissions)

	// The issued token binds the new account's ID.
	tokens := services.NewTokenService("test_app_secret")
	subject, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestAccountService_SignUp_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	accountService := newAccountService(mockRepo, nil)

	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: "user-1"}, nil).Once()

	_, _, err := accountService.SignUp("Bob", "taken@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_SignIn(t *testing.T) {
	mockRepo := new(MockUserRepository)
	accountService := newAccountService(mockRepo, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "alice@example.com",
		Password: string(hashedPassword),
	}

	// Correct password succeeds and issues a token for exactly this user.
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	got, token, err := accountService.SignIn("alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", got.ID)
	subject, err := services.NewTokenService("test_app_secret").Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", subject)

	// Signin is case-insensitive on email: the lookup is lowercased.
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	_, _, err = accountService.SignIn("ALICE@Example.com", "password123")
	assert.NoError(t, err)

	// Any other password fails with invalid credentials.
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	_, _, err = accountService.SignIn("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// An unknown email fails distinctly with not found.
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	_, _, err = accountService.SignIn("ghost@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mockRepo.AssertExpectations(t)
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mail := &MockMailer{}
	accountService := newAccountService(mockRepo, mail)

	user := &models.User{ID: "user-123", Email: "alice@example.com"}

	var storedToken string
	var storedExpiry time.Time
	before := time.Now()
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	mockRepo.On("SetResetToken", "user-123", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedToken = args.Get(1).(string)
			storedExpiry = args.Get(2).(time.Time)
		}).Return(nil).Once()

	queued, err := accountService.RequestPasswordReset("Alice@example.com")
	assert.NoError(t, err)
	assert.True(t, queued)
	mockRepo.AssertExpectations(t)

	// 20 bytes of entropy, hex encoded.
	assert.Len(t, storedToken, 40)
	// Expiry is one hour out.
	assert.WithinDuration(t, before.Add(time.Hour), storedExpiry, 5*time.Second)
	// The reset mail went to the account owner and carries the token.
	assert.Equal(t, []string{"alice@example.com"}, mail.sent)
	assert.Contains(t, mail.bodies[0], storedToken)
}

func TestAccountService_RequestPasswordReset_MailFailureIsSoft(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mail := &MockMailer{failWith: fmt.Errorf("smtp down")}
	accountService := newAccountService(mockRepo, mail)

	user := &models.User{ID: "user-123", Email: "alice@example.com"}
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	mockRepo.On("SetResetToken", "user-123", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	// Dispatch failure does not fail the operation: the token is already
	// persisted and stays valid.
	queued, err := accountService.RequestPasswordReset("alice@example.com")
	assert.NoError(t, err)
	assert.False(t, queued)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	accountService := newAccountService(mockRepo, nil)

	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()

	_, err := accountService.RequestPasswordReset("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	accountService := newAccountService(mockRepo, nil)

	user := &models.User{ID: "user-123", Email: "alice@example.com"}

	// Confirmation mismatch is checked before anything else.
	_, _, err := accountService.ResetPassword("sometoken", "newpassword", "different")
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	// An unknown or expired token is rejected.
	mockRepo.On("GetByResetToken", "stale", mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("no match: %w", apperrors.ErrInvalidResetToken)).Once()
	_, _, err = accountService.ResetPassword("stale", "newpassword", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	// A valid token updates the hash, clears the token pair and signs in.
	var newHash string
	mockRepo.On("GetByResetToken", "goodtoken", mock.AnythingOfType("time.Time")).Return(user, nil).Once()
	mockRepo.On("ClearResetAndSetPassword", "user-123", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			newHash = args.Get(1).(string)
		}).Return(nil).Once()

	got, token, err := accountService.ResetPassword("goodtoken", "newpassword", "newpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", got.ID)
	assert.Empty(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiry)
	assert.NotEqual(t, "newpassword", newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword")))
	mockRepo.AssertExpectations(t)
}
