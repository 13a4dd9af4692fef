package auth

import (
	"context"
	"testing"
	"time"

	"parceltrack/config"
	"parceltrack/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test-secret"))
	require.NoError(t, err)

	subjectID := uuid.New()
	tokenString, err := svc.GenerateAccessToken(subjectID, entity.RoleAgent.String())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, subjectID.String(), claims["sub"])
	assert.Equal(t, "AGENT", claims["role"])
	assert.Equal(t, "access", claims["type"])
	assert.NotEmpty(t, claims["jti"])
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("secret-one"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("secret-two"))
	require.NoError(t, err)

	tokenString, err := issuer.GenerateAccessToken(uuid.New(), entity.RoleCustomer.String())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbageToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestMemoryRevocationRegistry(t *testing.T) {
	registry := NewMemoryRevocationRegistry()
	ctx := context.Background()

	assert.False(t, registry.IsRevoked(ctx, "token-1"))

	require.NoError(t, registry.Revoke(ctx, "token-1", time.Now().Add(time.Hour)))
	assert.True(t, registry.IsRevoked(ctx, "token-1"))
	assert.False(t, registry.IsRevoked(ctx, "token-2"))
}

func TestMemoryRevocationRegistry_ExpiredRevocation(t *testing.T) {
	registry := NewMemoryRevocationRegistry()
	ctx := context.Background()

	require.NoError(t, registry.Revoke(ctx, "token-1", time.Now().Add(-time.Minute)))
	assert.False(t, registry.IsRevoked(ctx, "token-1"))
}
