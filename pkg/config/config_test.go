package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllowsDefaultSecretInDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", defaultJWTSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
}

func TestLoadRefusesDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	t.Setenv("JWT_SECRET", defaultJWTSecret)
	_, err := Load()
	assert.ErrorIs(t, err, ErrDefaultJWTSecret)

	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorIs(t, err, ErrDefaultJWTSecret)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
