package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/infra/logger"
	"github.com/peoplehub/user-access-service/internal/infra/security"
	"github.com/peoplehub/user-access-service/internal/repository"
)

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	AccessToken string
	User        domain.User
}

// AuthService authenticates users scoped to an enterprise and resolves
// bearer tokens for the HTTP layer. The authorization engine itself never
// authenticates; this is its boundary collaborator.
type AuthService struct {
	users  port.UserRepository
	tokens *security.JWTManager
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users port.UserRepository, tokens *security.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, logger: log}
}

// Login verifies the email/password pair within an enterprise and issues an
// access token carrying the user's id, enterprise, and role code.
func (s *AuthService) Login(ctx context.Context, email, enterpriseID, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmailAndEnterprise(ctx, email, enterpriseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("login failed",
			zap.String("email", logger.MaskEmail(email)),
			zap.String("enterprise_id", enterpriseID),
		)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.EnterpriseID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &LoginResult{AccessToken: token, User: *user}, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func (s *AuthService) ParseAccessToken(_ context.Context, token string) (*security.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return nil, ErrExpiredAccessToken
		default:
			return nil, ErrInvalidAccessToken
		}
	}
	return claims, nil
}

// CurrentUser loads the full user record behind a set of claims. Deactivated
// accounts are rejected here, at the next access check after revocation.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}
