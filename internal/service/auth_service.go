package service

import (
	"context"
	"strings"
	"time"

	"github.com/appogelardexa/ticket-triage/internal/auth"
	"github.com/appogelardexa/ticket-triage/internal/config"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// AuthService issues admin tokens against the single configured admin
// credential. The password is hashed once at startup so the comparison path
// is the same bcrypt check as a stored credential would get.
type AuthService struct {
	tokenMgr     *auth.TokenManager
	adminEmail   string
	passwordHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config) (*AuthService, error) {
	hash, err := auth.HashPassword(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		adminEmail:   strings.ToLower(cfg.Auth.AdminEmail),
		passwordHash: hash,
	}, nil
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates the admin credential and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}
	return s.tokenMgr.GenerateToken(s.adminEmail, auth.RoleAdmin)
}
