package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/target/shop-auth-api/internal/data"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	"github.com/target/shop-auth-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserStore      = (*MemoryUserStore)(nil)
	_ ports.RoleStore      = (*MemoryRoleStore)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
	_ ports.LoginThrottle  = (*StubThrottle)(nil)
)

// MemoryUserStore is an in-memory user store for unit tests. It mirrors the
// Postgres repo's error mapping, including the duplicate sentinels under
// concurrent creates.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domainauth.Principal

	// FindErr, when set, is returned by FindByUsername to simulate
	// infrastructure failures.
	FindErr error
	// CreateErr, when set, is returned by Create.
	CreateErr error
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*domainauth.Principal)}
}

// Seed adds a principal directly, assigning an ID if missing.
func (s *MemoryUserStore) Seed(p *domainauth.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	}
	s.users[p.Username] = p
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*domainauth.Principal, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[username]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	cp := *p
	cp.Roles = append([]domainauth.Role(nil), p.Roles...)
	return &cp, nil
}

func (s *MemoryUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *MemoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.users {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) Create(_ context.Context, p *domainauth.Principal) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if p == nil {
		return errors.New("principal is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.Username]; ok {
		return data.ErrUsernameExists
	}
	for _, existing := range s.users {
		if existing.Email == p.Email {
			return data.ErrEmailExists
		}
	}
	s.nextID++
	p.ID = s.nextID
	cp := *p
	cp.Roles = append([]domainauth.Role(nil), p.Roles...)
	s.users[p.Username] = &cp
	return nil
}

// MemoryRoleStore serves the seeded role reference data from memory.
type MemoryRoleStore struct{}

// NewMemoryRoleStore creates a role store preloaded with the standard roles.
func NewMemoryRoleStore() *MemoryRoleStore { return &MemoryRoleStore{} }

func (MemoryRoleStore) FindByName(_ context.Context, name domainauth.Role) (*domainauth.RoleRecord, error) {
	switch name {
	case domainauth.RoleUser:
		return &domainauth.RoleRecord{ID: 1, Name: name}, nil
	case domainauth.RoleSeller:
		return &domainauth.RoleRecord{ID: 2, Name: name}, nil
	case domainauth.RoleAdmin:
		return &domainauth.RoleRecord{ID: 3, Name: name}, nil
	default:
		return nil, data.ErrRoleNotFound
	}
}

// PlainHasher is a transparent, reversible hasher for unit tests. Never use
// outside tests.
type PlainHasher struct{}

const plainPrefix = "plain:"

func (PlainHasher) Hash(password string) (string, error) {
	return plainPrefix + password, nil
}

func (PlainHasher) Compare(hash, password string) error {
	if strings.TrimPrefix(hash, plainPrefix) != password {
		return errors.New("password mismatch")
	}
	return nil
}

// HashFor returns the stored form PlainHasher produces for a password,
// for seeding test users.
func HashFor(password string) string { return plainPrefix + password }

// StubThrottle is a configurable LoginThrottle double that records calls.
type StubThrottle struct {
	// Denied lists usernames whose attempts are rejected.
	Denied map[string]bool
	// Err, when set, is returned by Allow.
	Err error

	AllowCalls []string
	ResetCalls []string
}

func (s *StubThrottle) Allow(_ context.Context, username string) (bool, error) {
	s.AllowCalls = append(s.AllowCalls, username)
	if s.Err != nil {
		return false, s.Err
	}
	return !s.Denied[username], nil
}

func (s *StubThrottle) Reset(_ context.Context, username string) error {
	s.ResetCalls = append(s.ResetCalls, username)
	return nil
}
