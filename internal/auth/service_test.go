package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_IssueThenValidateRoundTrips(t *testing.T) {
	svc := NewService("test-secret")

	token, err := svc.IssueToken("caller-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "caller-1", claims.Subject)
}

func TestService_ValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a")
	verifier := NewService("secret-b")

	token, err := issuer.IssueToken("caller-1", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_ValidateTokenRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret")

	token, err := svc.IssueToken("caller-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret")

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
