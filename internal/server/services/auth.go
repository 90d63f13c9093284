// Package services contains server-side business logic. This file implements
// AuthService: registration, login, access-token refresh, and logout-driven
// revocation of refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/staffdesk-io/staffdesk/internal/common"
	"github.com/staffdesk-io/staffdesk/internal/server/auth"
	"github.com/staffdesk-io/staffdesk/internal/server/config"
	"github.com/staffdesk-io/staffdesk/internal/server/models"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/repomanager"
	"github.com/staffdesk-io/staffdesk/internal/server/sessions"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides the session flows:
// - Register: create credentials (no tokens issued)
// - Login: verify password and mint an access+refresh pair
// - RefreshAccess: mint a new access token against a live refresh token
// - Logout: revoke the user's registry entries
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	registry        sessions.Registry
	accessSecret    []byte
	refreshSecret   []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories, the refresh
// registry, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, registry sessions.Registry, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		registry:        registry,
		accessSecret:    []byte(cfg.AccessSecretKey),
		refreshSecret:   []byte(cfg.RefreshSecretKey),
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
	}
}

// Register hashes the password and inserts the credential. No tokens are
// issued; the user logs in separately. A duplicate username yields
// common.ErrorAlreadyExists, missing fields common.ErrorValidation.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.Credential, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Credentials(s.db)
	cred, err := repo.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating credential: %w", err)
	}
	return cred, nil
}

// Login verifies the password and, on success, returns a fresh token pair and
// registers the refresh token. Unknown users yield common.ErrorNotFound and a
// wrong password common.ErrorInvalidPassword. Earlier sessions of the same
// user stay live; logout revokes them all at once.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Credentials(s.db)
	cred, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, cred.PasswordHash) {
		return nil, common.ErrorInvalidPassword
	}

	return s.generateTokenPair(ctx, auth.Identity{ID: cred.ID, Username: cred.Username})
}

// RefreshAccess exchanges a live refresh token for a new access token. The
// registry is consulted first: a revoked or never-registered token fails with
// common.ErrorNotRegistered regardless of its signature. The refresh token
// itself is reused, not rotated; it stays valid until expiry or logout.
func (s *AuthService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	live, err := s.registry.IsLive(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("error checking refresh registry: %w", err)
	}
	if !live {
		return "", common.ErrorNotRegistered
	}

	identity, err := auth.GetIdentityFromToken(refreshToken, s.refreshSecret)
	if err != nil {
		// common.ErrTokenExpired or common.ErrInvalidToken.
		return "", err
	}

	access, err := auth.GenerateToken(identity, s.accessSecret, s.accessValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return access, nil
}

// Logout revokes every live refresh token of the identity's user. It is
// idempotent: logging out with no live sessions succeeds.
func (s *AuthService) Logout(ctx context.Context, identity auth.Identity) error {
	if err := s.registry.RevokeByUserID(ctx, identity.ID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, identity auth.Identity) (*TokenPair, error) {
	access, err := auth.GenerateToken(identity, s.accessSecret, s.accessValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(identity, s.refreshSecret, s.refreshValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.registry.Register(ctx, refresh, identity.ID); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
