package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secretPassword")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secretPassword", hash)

	assert.NoError(t, h.Compare(hash, "secretPassword"))
}

func TestBcryptHasher_CompareWrongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secretPassword")
	require.NoError(t, err)

	assert.ErrorIs(t, h.Compare(hash, "wrongPassword"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptHasher_CompareInvalidHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "anything"))
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "zero selects default", cost: 0, want: bcrypt.DefaultCost},
		{name: "negative selects default", cost: -3, want: bcrypt.DefaultCost},
		{name: "below min clamps up", cost: 2, want: bcrypt.MinCost},
		{name: "above max clamps down", cost: 99, want: bcrypt.MaxCost},
		{name: "in range is kept", cost: 12, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).Cost())
		})
	}
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secretPassword")
	require.NoError(t, err)
	second, err := h.Hash("secretPassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
