package session

// Package session builds the HTTP cookies that carry session tokens
// between client and server. Cookie attributes are deterministic given
// configuration; the package performs no I/O.

import (
	"net/http"
	"time"
)

const (
	// PathAPI is the path scope used for normal cookie issuance.
	PathAPI = "/api"
	// PathRoot is used only for invalidation, to clear legacy cookies an
	// earlier deployment set at the root path.
	PathRoot = "/"

	// maxAge is the issued cookie lifetime in seconds (24 hours).
	maxAge = 24 * 60 * 60
)

// Config groups the transport attributes applied to every session cookie.
type Config struct {
	// Name is the cookie name. Required.
	Name string
	// Domain is set on the cookie only when non-empty.
	Domain string
	// Secure marks cookies as HTTPS-only. Off by default so local
	// deployments behind plain HTTP keep working.
	Secure bool
}

// Manager constructs issuance and invalidation cookies with consistent
// attributes. Invalidation must mirror issuance attributes or browsers
// will not match the stored cookie.
type Manager struct {
	cfg Config
}

// NewManager returns a Manager for cfg.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Name returns the configured cookie name.
func (m *Manager) Name() string { return m.cfg.Name }

// Issue wraps a session token into the cookie attached to a successful
// login response.
func (m *Manager) Issue(tok string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    tok,
		Path:     PathAPI,
		Domain:   m.cfg.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Invalidate builds a cookie that instructs the client to discard the
// session cookie at the given path immediately. net/http serializes a
// negative MaxAge as the required Max-Age=0 attribute.
func (m *Manager) Invalidate(path string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    "",
		Path:     path,
		Domain:   m.cfg.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// InvalidateAll returns the invalidation pair a sign-out response must
// carry: one cookie for the application path and one for the root path,
// so a client holding either variant is cleaned up in a single response.
func (m *Manager) InvalidateAll() []*http.Cookie {
	return []*http.Cookie{
		m.Invalidate(PathAPI),
		m.Invalidate(PathRoot),
	}
}
