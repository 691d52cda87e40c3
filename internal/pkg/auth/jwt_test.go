// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "user@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	refresh, err := manager.GenerateRefreshToken(42, "user@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(1, "user@example.com", true)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-key!!"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Empty(t, ExtractTokenFromHeader("abc123"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc123"))
}
