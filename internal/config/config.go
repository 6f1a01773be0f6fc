package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. It is constructed once at
// startup and passed by reference into the services that need it, so
// tests can inject short lifetimes and throwaway secrets.
type Config struct {
	// HTTP server
	Addr string

	// Database
	DBPath string

	// Token signing. Access and refresh tokens are signed with
	// independent secrets.
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// SecureCookie marks auth cookies Secure; enable behind HTTPS.
	SecureCookie bool
}

const (
	// DefaultAccessTokenTTL is 1440 minutes (24 hours).
	DefaultAccessTokenTTL = 1440 * time.Minute
	// DefaultRefreshTokenTTL is 365 days.
	DefaultRefreshTokenTTL = 365 * 24 * time.Hour
)

// Load builds a Config from environment variables with defaults.
func Load() *Config {
	return &Config{
		Addr:            getEnv("ADDR", ":8000"),
		DBPath:          getEnv("DB_PATH", "./budget.db"),
		AccessSecret:    getEnv("SECRET_KEY", ""),
		RefreshSecret:   getEnv("REFRESH_SECRET_KEY", ""),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
		SecureCookie:    getEnvBool("SECURE_COOKIE", false),
	}
}

// Validate checks the configuration and returns an error describing
// every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "listen address cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if c.AccessSecret == "" {
		problems = append(problems, "SECRET_KEY must be set")
	}
	if c.RefreshSecret == "" {
		problems = append(problems, "REFRESH_SECRET_KEY must be set")
	}
	if c.AccessSecret != "" && c.AccessSecret == c.RefreshSecret {
		problems = append(problems, "SECRET_KEY and REFRESH_SECRET_KEY must differ")
	}
	if c.AccessTokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid access token TTL %v", c.AccessTokenTTL))
	}
	if c.RefreshTokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid refresh token TTL %v", c.RefreshTokenTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
