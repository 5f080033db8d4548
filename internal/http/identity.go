package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/shop-auth-api/internal/data"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	"github.com/target/shop-auth-api/internal/ports"
	"github.com/target/shop-auth-api/internal/token"
)

// bearerPrefix is the literal Authorization scheme prefix, trailing space included.
const bearerPrefix = "Bearer "

// IdentityResolverOptions groups dependencies for IdentityResolver.
type IdentityResolverOptions struct {
	Codec      *token.Codec
	Users      ports.UserStore
	CookieName string
	Logger     *slog.Logger
}

// IdentityResolver turns an incoming request into a verified identity.
// The session cookie wins over the Authorization header; any verification
// failure yields an anonymous request rather than an error.
type IdentityResolver struct {
	codec      *token.Codec
	users      ports.UserStore
	cookieName string
	logger     *slog.Logger
}

// NewIdentityResolver constructs a new IdentityResolver.
func NewIdentityResolver(opts IdentityResolverOptions) *IdentityResolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityResolver{
		codec:      opts.Codec,
		users:      opts.Users,
		cookieName: opts.CookieName,
		logger:     logger,
	}
}

// Resolve extracts and verifies the request's token and loads the matching
// principal. Returns nil for anonymous requests.
func (res *IdentityResolver) Resolve(r *http.Request) *domainauth.Identity {
	raw := res.extractToken(r)
	if raw == "" {
		return nil
	}

	subject, err := res.codec.Verify(raw)
	if err != nil {
		res.logger.DebugContext(r.Context(), "token rejected",
			"reason", verifyFailureKind(err), "path", r.URL.Path)
		return nil
	}

	principal, err := res.users.FindByUsername(r.Context(), subject)
	if err != nil {
		// Deleted users carry valid tokens until expiry; treat as anonymous.
		if !errors.Is(err, data.ErrUserNotFound) {
			res.logger.WarnContext(r.Context(), "identity lookup failed", "error", err)
		}
		return nil
	}

	return domainauth.IdentityFromPrincipal(principal)
}

// extractToken prefers the session cookie and falls back to a Bearer header.
func (res *IdentityResolver) extractToken(r *http.Request) string {
	if c, err := r.Cookie(res.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimPrefix(h, bearerPrefix)
	}
	return ""
}

func verifyFailureKind(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, token.ErrUnsupported):
		return "unsupported_scheme"
	default:
		return "malformed"
	}
}
