package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(Config{Secret: testSecret, TTL: time.Hour})
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	_, err := NewCodec(Config{Secret: nil, TTL: time.Hour})
	require.Error(t, err)

	_, err = NewCodec(Config{Secret: testSecret, TTL: 0})
	require.Error(t, err)

	_, err = NewCodec(Config{Secret: testSecret, TTL: -time.Minute})
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestCodec_Issue_EmptySubject(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.Issue("")
	require.Error(t, err)
}

func TestCodec_Issue_TokensAreUnique(t *testing.T) {
	c := newTestCodec(t)

	first, err := c.Issue("alice")
	require.NoError(t, err)
	second, err := c.Issue("alice")
	require.NoError(t, err)

	// jti differs per issuance even for the same subject.
	assert.NotEqual(t, first, second)
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := newTestCodec(t)

	// Sign an already-expired token with the codec's secret.
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = c.Verify(expired)
	require.ErrorIs(t, err, ErrExpired)
}

func TestCodec_Verify_TamperedSignature(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Flip one character of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = c.Verify(tampered)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	c := newTestCodec(t)

	other, err := NewCodec(Config{Secret: []byte("another-secret-entirely-32-bytes"), TTL: time.Hour})
	require.NoError(t, err)

	tok, err := other.Issue("alice")
	require.NoError(t, err)

	_, err = c.Verify(tok)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := newTestCodec(t)

	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		_, err := c.Verify(tok)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", tok)
	}
}

func TestCodec_Verify_UnsupportedScheme(t *testing.T) {
	c := newTestCodec(t)

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
	require.NoError(t, err)

	_, err = c.Verify(foreign)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestCodec_Verify_MissingExpiry(t *testing.T) {
	c := newTestCodec(t)

	claims := jwt.RegisteredClaims{Subject: "alice"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = c.Verify(tok)
	require.Error(t, err)
}
