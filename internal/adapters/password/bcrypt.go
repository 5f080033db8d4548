// Package password provides the bcrypt-backed credential hasher used by
// the auth services. Plaintext passwords must never be logged or stored.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt. It implements
// ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given bcrypt cost, clamped to
// the valid range. A non-positive cost selects bcrypt's default.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost reports the effective bcrypt cost.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash produces a bcrypt hash of the password suitable for storage.
func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies the password against a stored hash in constant time.
// Returns nil on a match and bcrypt.ErrMismatchedHashAndPassword otherwise.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
