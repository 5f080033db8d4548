package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "shopSessionToken", cfg.Auth.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("AUTH_JWT_EXPIRATION", "30m")
	t.Setenv("AUTH_COOKIE_SECURE", "true")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWTExpiration)
	assert.True(t, cfg.Auth.CookieSecure)
}

func TestAuthConfig_Validate(t *testing.T) {
	a := AuthConfig{}
	assert.Error(t, a.Validate())

	a.JWTSecret = "short"
	assert.Error(t, a.Validate())

	a.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, a.Validate())
}

func TestAuthConfig_SanitizeGuardrails(t *testing.T) {
	a := AuthConfig{JWTExpiration: -time.Hour, ThrottleMaxAttempts: -1}
	a.Sanitize()

	assert.Equal(t, 24*time.Hour, a.JWTExpiration)
	assert.Equal(t, "shopSessionToken", a.CookieName)
	assert.Equal(t, 10, a.ThrottleMaxAttempts)
	assert.Equal(t, 15*time.Minute, a.ThrottleWindow)
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
