package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/auth"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	args := m.Called(ctx, userID, hashedPassword)
	return args.Error(0)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockResetTokenStore struct {
	mock.Mock
}

func (m *mockResetTokenStore) Create(ctx context.Context, token *models.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockResetTokenStore) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetToken), args.Error(1)
}

func (m *mockResetTokenStore) MarkUsed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockResetTokenStore) InvalidateForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcomeEmail(toEmail, toName string) error {
	args := m.Called(toEmail, toName)
	return args.Error(0)
}

func (m *mockMailer) SendPasswordResetEmail(toEmail, toName, token string) error {
	args := m.Called(toEmail, toName, token)
	return args.Error(0)
}

func (m *mockMailer) SendAnnouncement(toEmail, subject, message string) error {
	args := m.Called(toEmail, subject, message)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestRegisterNormalizesEmailAndSplitsName(t *testing.T) {
	users := new(mockUserStore)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@example.com" &&
			u.FirstName == "Jane" &&
			u.LastName == "van Dyk" &&
			u.Password != "s3cretpass"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 7
	}).Return(nil)

	mailer := new(mockMailer)
	mailer.On("SendWelcomeEmail", "jane@example.com", mock.Anything).Return(nil)

	service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), mailer)

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  Jane@Example.COM ",
		Password: "s3cretpass",
		Name:     "Jane van Dyk",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mockUserStore)
	users.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrEmailAlreadyExists)

	service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), new(mockMailer))

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jane@example.com",
		Password: "s3cretpass",
		Name:     "Jane",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	hashed, err := auth.HashPassword("s3cretpass")
	assert.NoError(t, err)

	user := &models.User{ID: 7, Email: "jane@example.com", Password: hashed, FirstName: "Jane"}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		users.On("UpdateLastLogin", mock.Anything, int64(7)).Return(nil)

		service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), new(mockMailer))
		resp, err := service.Login(context.Background(), &dto.LoginRequest{
			Username: "jane@example.com",
			Password: "s3cretpass",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), new(mockMailer))
		_, err := service.Login(context.Background(), &dto.LoginRequest{
			Username: "jane@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)

		service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), new(mockMailer))
		_, err := service.Login(context.Background(), &dto.LoginRequest{
			Username: "nobody@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("last login failure does not fail login", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		users.On("UpdateLastLogin", mock.Anything, int64(7)).Return(errors.New("connection refused"))

		service := NewAuthService(users, new(mockResetTokenStore), testJWTService(), new(mockMailer))
		_, err := service.Login(context.Background(), &dto.LoginRequest{
			Username: "jane@example.com",
			Password: "s3cretpass",
		})

		assert.NoError(t, err)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	user := &models.User{ID: 7, Email: "jane@example.com", FirstName: "Jane"}

	t.Run("issues token and mails link", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		tokens := new(mockResetTokenStore)
		tokens.On("InvalidateForUser", mock.Anything, int64(7)).Return(nil)
		tokens.On("Create", mock.Anything, mock.MatchedBy(func(tok *models.PasswordResetToken) bool {
			return tok.UserID == 7 && tok.Token != "" && tok.ExpiresAt.After(time.Now())
		})).Return(nil)

		mailer := new(mockMailer)
		mailer.On("SendPasswordResetEmail", "jane@example.com", mock.Anything, mock.Anything).Return(nil)

		service := NewAuthService(users, tokens, testJWTService(), mailer)
		err := service.RequestPasswordReset(context.Background(), "jane@example.com")

		assert.NoError(t, err)
		tokens.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)

		tokens := new(mockResetTokenStore)
		mailer := new(mockMailer)

		service := NewAuthService(users, tokens, testJWTService(), mailer)
		err := service.RequestPasswordReset(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	t.Run("valid token updates password and is consumed", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("UpdatePassword", mock.Anything, int64(7), mock.MatchedBy(func(hash string) bool {
			return hash != "newpass123"
		})).Return(nil)

		tokens := new(mockResetTokenStore)
		tokens.On("GetByToken", mock.Anything, "tok").Return(&models.PasswordResetToken{
			ID:        1,
			UserID:    7,
			Token:     "tok",
			ExpiresAt: time.Now().Add(30 * time.Minute),
		}, nil)
		tokens.On("MarkUsed", mock.Anything, int64(1)).Return(nil)

		service := NewAuthService(users, tokens, testJWTService(), new(mockMailer))
		err := service.ConfirmPasswordReset(context.Background(), "tok", "newpass123")

		assert.NoError(t, err)
		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("used token is rejected", func(t *testing.T) {
		tokens := new(mockResetTokenStore)
		tokens.On("GetByToken", mock.Anything, "tok").Return(&models.PasswordResetToken{
			ID:        1,
			UserID:    7,
			Used:      true,
			ExpiresAt: time.Now().Add(30 * time.Minute),
		}, nil)

		service := NewAuthService(new(mockUserStore), tokens, testJWTService(), new(mockMailer))
		err := service.ConfirmPasswordReset(context.Background(), "tok", "newpass123")

		assert.ErrorIs(t, err, apperrors.ErrTokenUsed)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		tokens := new(mockResetTokenStore)
		tokens.On("GetByToken", mock.Anything, "tok").Return(&models.PasswordResetToken{
			ID:        1,
			UserID:    7,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		service := NewAuthService(new(mockUserStore), tokens, testJWTService(), new(mockMailer))
		err := service.ConfirmPasswordReset(context.Background(), "tok", "newpass123")

		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		tokens := new(mockResetTokenStore)
		tokens.On("GetByToken", mock.Anything, "tok").Return(nil, apperrors.ErrTokenNotFound)

		service := NewAuthService(new(mockUserStore), tokens, testJWTService(), new(mockMailer))
		err := service.ConfirmPasswordReset(context.Background(), "tok", "newpass123")

		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"", "", ""},
		{"Jane", "Jane", ""},
		{"Jane Doe", "Jane", "Doe"},
		{"Jane van Dyk", "Jane", "van Dyk"},
	}

	for _, tt := range tests {
		first, last := splitName(tt.name)
		assert.Equal(t, tt.wantFirst, first)
		assert.Equal(t, tt.wantLast, last)
	}
}
