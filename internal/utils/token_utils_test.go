package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/utils"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("u1", "admin", "secret", time.Hour, "portal-backend")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "portal-backend", claims.Issuer)
	assert.Equal(t, domain.RoleAdmin, domain.ParseRole(claims.Role))
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, err := utils.GenerateJWT("u1", "user", "secret", time.Hour, "portal-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	token, err := utils.GenerateJWT("u1", "user", "secret", -time.Minute, "portal-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}
