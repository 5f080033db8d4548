package token

// Package token issues and verifies the signed session tokens that back
// the session cookie. Tokens are self-contained and verified statelessly;
// there is no server-side session table and no revocation list, so a
// token stays valid until its natural expiry even after sign-out. The
// TTL bounds that exposure.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure kinds. The identity resolver collapses all of
// them to an anonymous caller but logs which one occurred.
var (
	// ErrMalformed is returned when the token structure cannot be parsed.
	ErrMalformed = errors.New("token malformed")
	// ErrSignatureInvalid is returned when the MAC check fails.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrExpired is returned when the token is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrUnsupported is returned for tokens signed with an unrecognized scheme.
	ErrUnsupported = errors.New("token signing scheme unsupported")
)

// Config groups the inputs needed to construct a Codec.
type Config struct {
	// Secret is the shared HMAC signing key. Required.
	Secret []byte
	// TTL is the token lifetime. Required, must be positive.
	TTL time.Duration
}

// Codec creates and verifies signed, time-bounded session tokens.
// It is immutable after construction and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec validates cfg and returns a Codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &Codec{secret: cfg.Secret, ttl: cfg.TTL}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue builds a token for the given subject with issued-at now and
// expiry now+TTL, signs it with HS256, and returns the compact form.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tok, checks the signature against the shared secret and
// enforces expiry, and returns the embedded subject. Failures map to the
// sentinel errors above; the underlying parser error is wrapped for
// diagnostics but carries no secret material.
func (c *Codec) Verify(tok string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tok, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			// The scheme check lives in the keyfunc rather than
			// WithValidMethods so a foreign algorithm surfaces as
			// ErrUnsupported instead of a signature failure.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: alg %q", ErrUnsupported, t.Method.Alg())
			}
			return c.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", classifyParseError(err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}

// classifyParseError maps jwt/v5 parse errors onto the codec's sentinel
// taxonomy. Expiry is checked before signature problems because jwt/v5
// joins validation errors and an expired-but-valid token must surface as
// Expired, not as a generic failure.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnsupported):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
