package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "forgekit/pkg/errors"
)

const secret = "gateway-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(secret, "ci-bot", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", claims.Subject)
	assert.Equal(t, "forgekit", claims.Issuer)
}

func TestValidateErrors(t *testing.T) {
	_, err := GenerateAccessToken("", "x", 0)
	assert.Equal(t, pkgErrors.CodeBadRequest, pkgErrors.Kind(err))

	token, err := GenerateAccessToken(secret, "ci-bot", 0)
	require.NoError(t, err)
	_, err = ValidateToken("other", token)
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthorized)

	fallback, err := GenerateAccessToken(secret, "ci-bot", -time.Minute)
	require.NoError(t, err)
	claims, err := ValidateToken(secret, fallback)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(time.Hour)))

	old := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ci-bot",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := old.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ValidateToken(secret, signed)
	assert.ErrorIs(t, err, pkgErrors.ErrTokenExpired)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Type: "refresh"})
	signed, err = refresh.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ValidateToken(secret, signed)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}
