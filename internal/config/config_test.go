package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Addr:            ":8000",
		DBPath:          "./budget.db",
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  DefaultAccessTokenTTL,
		RefreshTokenTTL: DefaultRefreshTokenTTL,
	}
}

func TestConfig_Load_Defaults(t *testing.T) {
	// No env vars set beyond what the test runner carries.
	t.Setenv("ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("REFRESH_SECRET_KEY", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("SECURE_COOKIE", "")

	cfg := Load()
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "./budget.db", cfg.DBPath)
	assert.Empty(t, cfg.AccessSecret)
	assert.Equal(t, DefaultAccessTokenTTL, cfg.AccessTokenTTL)
	assert.Equal(t, DefaultRefreshTokenTTL, cfg.RefreshTokenTTL)
	assert.False(t, cfg.SecureCookie)
}

func TestConfig_Load_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "/data/app.db")
	t.Setenv("SECRET_KEY", "s1")
	t.Setenv("REFRESH_SECRET_KEY", "s2")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("SECURE_COOKIE", "true")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/data/app.db", cfg.DBPath)
	assert.Equal(t, "s1", cfg.AccessSecret)
	assert.Equal(t, "s2", cfg.RefreshSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.SecureCookie)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_MissingSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.AccessSecret = ""
	cfg.RefreshSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY must be set")
	assert.Contains(t, err.Error(), "REFRESH_SECRET_KEY must be set")
}

func TestConfig_Validate_SharedSecret(t *testing.T) {
	cfg := validConfig()
	cfg.RefreshSecret = cfg.AccessSecret

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestConfig_Validate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen address")
	assert.Contains(t, err.Error(), "database path")
	assert.Contains(t, err.Error(), "invalid access token TTL")
	assert.Contains(t, err.Error(), "invalid refresh token TTL")
}
