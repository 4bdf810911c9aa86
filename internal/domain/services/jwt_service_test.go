package services

import (
	"testing"

	"smartlight-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndExtract(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "test-secret-key"}, nil)

	token, err := svc.GenerateToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "smartlight-http-service", claims.Issuer)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(&config.Config{JWTSecretKey: "secret-a"}, nil)
	verifier := NewJWTService(&config.Config{JWTSecretKey: "secret-b"}, nil)

	token, err := issuer.GenerateToken(1, "admin")
	require.NoError(t, err)

	_, err = verifier.ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWT_GarbageTokenRejected(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "test-secret-key"}, nil)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
