package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of an issued session token.
const SessionTTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("token: invalid session token")
	ErrExpiredToken = errors.New("token: session token expired")
)

// Manager issues and validates the signed session tokens that identify an
// authenticated user. Tokens are HS256 JWTs carrying the user id as subject.
// There is no server-side blacklist; logout only clears the cookie.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	return &Manager{secret: []byte(secret), ttl: SessionTTL}, nil
}

// Issue creates a signed session token for the given user id.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate verifies signature and expiry and returns the user id the token
// was issued for.
func (m *Manager) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
