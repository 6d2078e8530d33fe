package service

import (
	"errors"
	"fmt"

	"github.com/spec-kit/blog-gateway/internal/auth"
	"github.com/spec-kit/blog-gateway/internal/config"
)

// ErrInvalidCredentials is returned when the supplied secret key does not match.
var ErrInvalidCredentials = errors.New("invalid secret key")

// AuthService coordinates login and token verification.
type AuthService struct {
	secrets  *auth.SecretVerifier
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service, hashing the admin secret once up front.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	secrets, err := auth.NewSecretVerifier(cfg.AdminSecret, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	return &AuthService{
		secrets:  secrets,
		tokenMgr: auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL, cfg.TokenExpiry),
	}, nil
}

// Login exchanges the admin secret for a signed token and its expiry string.
func (s *AuthService) Login(secretKey string) (string, string, error) {
	if !s.secrets.Matches(secretKey) {
		return "", "", ErrInvalidCredentials
	}
	return s.tokenMgr.Issue()
}

// Verify decodes a token issued by Login.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.tokenMgr.Verify(token)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
