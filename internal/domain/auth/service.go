package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"bagostock/internal/core/apperror"
	"bagostock/pkg/logger"
)

// Service handles authentication.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates an auth service.
func NewService(repo Repository, jwt *JWTService) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Login checks credentials and issues an access token. Unknown users and
// wrong passwords both come back as the same unauthorized error.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, apperror.NewValidation("username and password are required")
	}

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Warn(ctx, "failed login attempt", "username", creds.Username)
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	tokenString, expiresAt, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Username, user.Role)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	return &Token{AccessToken: tokenString, ExpiresAt: expiresAt}, nil
}
