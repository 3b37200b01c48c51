package service

import (
	"context"
	"errors"
	"strings"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
	"charlymatloc-backend/internal/security"
	"charlymatloc-backend/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error) {
	email = normalizeEmail(email)
	logger.EnterMethod("authService.Register", "email", email, "role", role.String())

	if !validator.Email(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		logger.ExitMethodWithError("authService.Register", err, "email", email)
		return nil, err
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return s.issue(user.Profile())
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	logger.EnterMethod("authService.SignIn", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.ExitMethodWithError("authService.SignIn", ErrInvalidCredentials, "email", email)
			return nil, ErrInvalidCredentials
		}
		logger.ExitMethodWithError("authService.SignIn", err, "email", email)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError("authService.SignIn", ErrInvalidCredentials, "email", email)
		return nil, ErrInvalidCredentials
	}

	logger.ExitMethod("authService.SignIn", "userID", user.ID)
	return s.issue(user.Profile())
}

// Refresh exchanges a valid refresh token for a new token pair. The user
// is reloaded so a deleted account cannot keep refreshing.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if err := security.RequireType(claims, security.TokenTypeRefresh); err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issue(user.Profile())
}

func (s *authService) issue(profile domain.Profile) (*AuthResult, error) {
	access, err := s.tokens.GenerateAccessToken(profile)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Profile:      profile,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.AccessTokenTTL(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
