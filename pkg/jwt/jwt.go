package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "gameguide-admin"

// ErrTokenExpired is reported (wrapped) by ValidateToken for tokens past their exp.
var ErrTokenExpired = jwt.ErrTokenExpired

// Claims represents the admin session token. The token ID (jti) is the
// server-side session id; the token alone grants nothing.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionID returns the jti claim.
func (c *Claims) SessionID() string {
	return c.ID
}

// Manager handles JWT operations
type Manager struct {
	secret string
	now    func() time.Time
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret, now: time.Now}
}

// WithClock overrides the time source used for iat and expiry checks.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionToken signs a token for sessionID that expires at expiresAt.
func (m *Manager) GenerateSessionToken(sessionID, username string, expiresAt time.Time) (string, error) {
	now := m.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates and parses token.
//
// A correctly signed token that is only past its exp returns its claims
// together with an error wrapping ErrTokenExpired, so callers can clean up
// the session it names.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenInvalidIssuer) && claims.ID != "" {
			return claims, err
		}
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("token has no session id")
	}

	return claims, nil
}
