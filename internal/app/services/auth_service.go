package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/auth"
	"github.com/kodin/caluu-backend/internal/pkg/email"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
)

// resetTokenTTL is how long a password reset link stays redeemable
const resetTokenTTL = time.Hour

// UserStore is the user persistence needed by the auth service
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ResetTokenStore is the reset token persistence needed by the auth service
type ResetTokenStore interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	InvalidateForUser(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and password recovery
type AuthService struct {
	users       UserStore
	resetTokens ResetTokenStore
	jwtService  *auth.JWTService
	mailer      email.Service
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, resetTokens ResetTokenStore, jwtService *auth.JWTService, mailer email.Service) *AuthService {
	return &AuthService{
		users:       users,
		resetTokens: resetTokens,
		jwtService:  jwtService,
		mailer:      mailer,
	}
}

// Register creates a user account and returns a logged-in session
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewCustomError(err, "failed to hash password")
	}

	firstName, lastName := splitName(req.Name)
	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// The welcome email must not delay or fail registration.
	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	}()

	return s.buildLoginResponse(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return s.buildLoginResponse(user)
}

// GetProfile returns the public view of a user
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := userResponse(user)
	return &response, nil
}

// RequestPasswordReset issues a reset token and mails a reset link. A request
// for an unknown email succeeds without effect so the endpoint does not
// reveal which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	// Only the most recent link should work.
	if err := s.resetTokens.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}

	tokenValue, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.NewCustomError(err, "failed to generate reset token")
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenValue,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetTokens.Create(ctx, token); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.FullName(), tokenValue); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		return apperrors.NewCustomError(err, "failed to send password reset email")
	}

	return nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenValue, newPassword string) error {
	token, err := s.resetTokens.GetByToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	if token.Used {
		return apperrors.ErrTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewCustomError(err, "failed to hash password")
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, hashed); err != nil {
		return err
	}

	return s.resetTokens.MarkUsed(ctx, token.ID)
}

func (s *AuthService) buildLoginResponse(user *models.User) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:            accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             userResponse(user),
	}, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.FullName(),
		IsAdmin: user.IsAdmin,
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
