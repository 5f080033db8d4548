package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/data and internal/adapters; orchestration
// in internal/service.

import (
	"context"

	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
)

// UserStore persists and retrieves principals. FindByUsername returns the
// principal with its role set populated; implementations signal a missing
// user with a NotFound application error.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*domainauth.Principal, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists the principal and its role assignments atomically
	// and fills in the generated ID. The store's unique constraints are
	// the final authority on duplicate username/email under races.
	Create(ctx context.Context, p *domainauth.Principal) error
}

// RoleStore looks up immutable role reference data by name.
type RoleStore interface {
	FindByName(ctx context.Context, name domainauth.Role) (*domainauth.RoleRecord, error)
}

// PasswordHasher hashes and verifies passwords. Compare must be
// constant-time; callers must never log the plaintext or the hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// LoginThrottle rate-limits authentication attempts per login name.
// A nil throttle in the service means the concern is disabled.
type LoginThrottle interface {
	// Allow records an attempt and reports whether it may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// Reset clears the counter after a successful authentication.
	Reset(ctx context.Context, username string) error
}
