// internal/pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func passwordConfig() *config.Config {
	cfg := testConfig()
	cfg.Security.BcryptCost = 4 // minimum cost keeps tests fast
	return cfg
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(passwordConfig())

	hash, err := manager.HashPassword("Secret@123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret@123", hash)

	assert.NoError(t, manager.VerifyPassword("Secret@123", hash))
	assert.Error(t, manager.VerifyPassword("Secret@124", hash))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(passwordConfig())

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Secret@123", false},
		{"too short", "Ab1", true},
		{"no uppercase", "secret@123", true},
		{"no lowercase", "SECRET@123", true},
		{"no number", "Secret@abc", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := manager.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
