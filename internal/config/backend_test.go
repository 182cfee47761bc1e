package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv(EnvJWTSecret, "test-secret-key")
	t.Setenv(EnvJWTTTLHours, "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestNewJWTConfig_GeneratesSecret(t *testing.T) {
	t.Setenv(EnvJWTSecret, "")
	t.Setenv(EnvJWTTTLHours, "")

	first, err := NewJWTConfig()
	require.NoError(t, err)
	second, err := NewJWTConfig()
	require.NoError(t, err)

	assert.Len(t, first.Secret, 64)
	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv(EnvJWTSecret, "s")

	t.Setenv(EnvJWTTTLHours, "abc")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv(EnvJWTTTLHours, "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{"default cost", "", 12, false},
		{"minimum cost", "4", 4, false},
		{"maximum cost", "14", 14, false},
		{"too high", "15", 0, true},
		{"too low", "3", 0, true},
		{"not a number", "twelve", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvBcryptCost, tt.cost)
			t.Setenv(EnvPasswordPepper, "")
			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 4}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("battery staple", hash))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 4, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 4}

	hash, err := peppered.HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret", hash))
	assert.False(t, plain.VerifyPassword("secret", hash), "hash must depend on the pepper")
}
