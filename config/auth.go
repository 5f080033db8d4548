package config

import (
	"errors"
	"time"
)

// AuthConfig contains token, cookie, and sign-in throttle configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens (HMAC). Required; there is no
	// development fallback so a missing secret fails fast at startup.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	// JWTExpiration is the token lifetime.
	JWTExpiration time.Duration `env:"AUTH_JWT_EXPIRATION" envDefault:"24h"`

	// CookieName is the session cookie name.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"shopSessionToken"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"AUTH_COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks the session cookie Secure. Leave false for
	// plain-HTTP local development.
	CookieSecure bool `env:"AUTH_COOKIE_SECURE" envDefault:"false"`

	// BcryptCost is the bcrypt work factor for password hashing.
	// Out-of-range values are clamped by the hasher.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`

	// ThrottleMaxAttempts is the sign-in attempt budget per username per
	// window. Only enforced when Redis is configured.
	ThrottleMaxAttempts int `env:"AUTH_THROTTLE_MAX_ATTEMPTS" envDefault:"10"`

	// ThrottleWindow is the fixed window for the attempt budget.
	ThrottleWindow time.Duration `env:"AUTH_THROTTLE_WINDOW" envDefault:"15m"`
}

// minJWTSecretLen guards against trivially brute-forceable HMAC keys.
const minJWTSecretLen = 32

// Validate checks that required auth configuration is present.
func (a *AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	if len(a.JWTSecret) < minJWTSecretLen {
		return errors.New("AUTH_JWT_SECRET must be at least 32 bytes")
	}
	return nil
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.JWTExpiration <= 0 {
		a.JWTExpiration = 24 * time.Hour
	}
	if a.CookieName == "" {
		a.CookieName = "shopSessionToken"
	}
	if a.ThrottleMaxAttempts <= 0 {
		a.ThrottleMaxAttempts = 10
	}
	if a.ThrottleWindow <= 0 {
		a.ThrottleWindow = 15 * time.Minute
	}
}
