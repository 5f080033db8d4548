package auth

// Package auth contains domain-level types for principals, roles, and
// resolved request identities. It is pure and free of transport/storage
// concerns.

// Role is the stable authority name attached to a principal. The same
// string is used for persistence lookup and for authorization checks.
type Role string

const (
	RoleUser   Role = "ROLE_USER"
	RoleSeller Role = "ROLE_SELLER"
	RoleAdmin  Role = "ROLE_ADMIN"
)

// RoleFromRequest maps a signup role request value to a Role. Unknown or
// empty values fall back to the base user role.
func RoleFromRequest(name string) Role {
	switch name {
	case "admin":
		return RoleAdmin
	case "seller":
		return RoleSeller
	default:
		return RoleUser
	}
}

// RoleRecord is the persisted reference-data row for a role. Roles are
// immutable and seeded at bootstrap; services only look them up by name.
type RoleRecord struct {
	ID   int64 `json:"id"`
	Name Role  `json:"name"`
}

// Principal is an authenticated account entity. PasswordHash is carried
// between the store and the credential check only; it must never reach a
// response payload or a log line.
type Principal struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
}

// Authorities returns the principal's roles as plain authority strings,
// the shape downstream authorization and response payloads consume.
func (p Principal) Authorities() []string {
	out := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		out[i] = string(r)
	}
	return out
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the resolved caller attached to a request context after
// token verification. A nil *Identity means the caller is anonymous.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// IdentityFromPrincipal builds the request-facing identity view of a
// principal, dropping the credential material.
func IdentityFromPrincipal(p *Principal) *Identity {
	if p == nil {
		return nil
	}
	return &Identity{
		UserID:   p.ID,
		Username: p.Username,
		Email:    p.Email,
		Roles:    p.Roles,
	}
}

// HasRole reports whether the identity carries the given role.
func (id *Identity) HasRole(role Role) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}
