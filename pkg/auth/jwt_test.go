package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "origination", time.Hour)

	token, err := svc.GenerateToken("user-1", "ramesh@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ramesh@example.com", claims.Email)
	assert.Equal(t, "origination", claims.Issuer)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "origination", time.Hour)
	verifier := NewJWTService("secret-b", "origination", time.Hour)

	token, err := issuer.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "origination", -time.Minute)

	token, err := svc.GenerateToken("user-1", "a@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", "origination", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &Claims{UserID: "user-9"}
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-9", got.UserID)
}
