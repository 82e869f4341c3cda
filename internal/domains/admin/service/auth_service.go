package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"gameguide-backend/internal/domains/admin/model"
	"gameguide-backend/pkg/jwt"
)

// =====================================================
// LOGIN / LOGOUT
// =====================================================

func (s *AdminService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	// Step 1: All three fields are required
	if !req.Complete() {
		return nil, model.NewMissingCredentialsError()
	}

	// Step 2: Load config
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin config: %w", err)
	}
	if cfg == nil || cfg.Username == "" || cfg.PasswordHash == "" {
		return nil, model.NewNotConfiguredError()
	}

	// Step 3: Check path, then credentials
	if req.AdminPath != cfg.AdminPath {
		return nil, model.NewInvalidAdminPathError()
	}
	if req.Username != cfg.Username {
		return nil, model.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	// Step 4: Create session + token
	now := s.now().UTC()
	session := &model.Session{
		Username:  cfg.Username,
		AdminPath: cfg.AdminPath,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	sessionID := jwt.NewSessionID()
	if err := s.sessions.Create(ctx, sessionID, session, s.sessionTTL); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateSessionToken(sessionID, session.Username, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	log.Info().Str("username", session.Username).Msg("admin logged in")

	return &model.LoginResult{
		Token:     token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *AdminService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// =====================================================
// AUTHENTICATE
// =====================================================

// Authenticate resolves a bearer token to its live session and returns the session id.
func (s *AdminService) Authenticate(ctx context.Context, token string) (string, *model.Session, error) {
	if token == "" {
		return "", nil, model.NewUnauthorizedError("missing token")
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Token and session share the same expiry, so this is usually
			// where an expired session gets noticed.
			if claims != nil {
				if err := s.sessions.Delete(ctx, claims.SessionID()); err != nil {
					log.Warn().Err(err).Msg("failed to delete expired session")
				}
			}
			return "", nil, model.NewSessionExpiredError()
		}
		return "", nil, model.NewUnauthorizedError("invalid token")
	}

	sessionID := claims.SessionID()
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return "", nil, model.NewUnauthorizedError("session not found")
		}
		return "", nil, err
	}

	if session.IsExpired(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return "", nil, model.NewSessionExpiredError()
	}

	return sessionID, session, nil
}

// HashPassword bcrypt-hashes a plain admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
