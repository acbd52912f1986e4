package token_test

import (
	"testing"
	"time"

	"myresume-backend/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestManagerRoundtrip(t *testing.T) {
	m, err := token.NewManager("test-secret")
	assert.NoError(t, err)

	issued, err := m.Issue("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, issued)

	userID, err := m.Validate(issued)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestManagerRequiresSecret(t *testing.T) {
	_, err := token.NewManager("")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m1, _ := token.NewManager("secret-one")
	m2, _ := token.NewManager("secret-two")

	issued, err := m1.Issue("user-123")
	assert.NoError(t, err)

	_, err = m2.Validate(issued)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestValidateRejectsMalformed(t *testing.T) {
	m, _ := token.NewManager("test-secret")

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(bad)
		assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", bad)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	// Hand-craft an already expired token with the same secret and claims.
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	m, _ := token.NewManager("test-secret")
	_, err = m.Validate(expired)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestValidateRejectsUnsignedAlg(t *testing.T) {
	// alg=none must never pass, regardless of claims.
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	m, _ := token.NewManager("test-secret")
	_, err = m.Validate(unsigned)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestValidateRejectsEmptySubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	m, _ := token.NewManager("test-secret")
	_, err = m.Validate(noSubject)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
