package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	apperrors "github.com/target/shop-auth-api/internal/errors"
	mockauth "github.com/target/shop-auth-api/internal/mocks/auth"
	"github.com/target/shop-auth-api/internal/session"
	"github.com/target/shop-auth-api/internal/token"
)

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(token.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	return codec
}

func testSessionManager() *session.Manager {
	return session.NewManager(session.Config{Name: "shopSessionToken"})
}

func seedUser(store *mockauth.MemoryUserStore, username, password string, roles ...domainauth.Role) {
	if len(roles) == 0 {
		roles = []domainauth.Role{domainauth.RoleUser}
	}
	store.Seed(&domainauth.Principal{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: mockauth.HashFor(password),
		Roles:        roles,
	})
}

func newTestAuthService(t *testing.T, store *mockauth.MemoryUserStore, throttle *mockauth.StubThrottle) *AuthService {
	t.Helper()
	opts := AuthServiceOptions{
		Users:    store,
		Hasher:   mockauth.PlainHasher{},
		Codec:    testCodec(t),
		Sessions: testSessionManager(),
		Logger:   slog.Default(),
	}
	if throttle != nil {
		opts.Throttle = throttle
	}
	return NewAuthService(opts)
}

func TestAuthService_Login_Success(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw", domainauth.RoleUser, domainauth.RoleAdmin)
	svc := newTestAuthService(t, store, nil)

	res, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.NotZero(t, res.User.ID)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.ElementsMatch(t, []string{"ROLE_USER", "ROLE_ADMIN"}, res.User.Roles)
	require.NotEmpty(t, res.User.Token)

	// The cookie must carry the same token that was returned in the body.
	require.NotNil(t, res.Cookie)
	assert.Equal(t, "shopSessionToken", res.Cookie.Name)
	assert.Equal(t, res.User.Token, res.Cookie.Value)

	subject, err := testCodec(t).Verify(res.User.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordCollapse(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw")
	svc := newTestAuthService(t, store, nil)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, LoginInput{Username: "nobody", Password: "pw"})
	require.Error(t, unknownErr)
	assert.True(t, apperrors.IsUnauthorized(unknownErr))

	_, wrongErr := svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	require.Error(t, wrongErr)
	assert.True(t, apperrors.IsUnauthorized(wrongErr))

	// Identical messages, so the response does not reveal which half failed.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(t, mockauth.NewMemoryUserStore(), nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Username: "", Password: "pw"})
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: ""})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw")
	throttle := &mockauth.StubThrottle{Denied: map[string]bool{"alice": true}}
	svc := newTestAuthService(t, store, throttle)

	_, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimited(err))
	assert.Empty(t, throttle.ResetCalls)
}

func TestAuthService_Login_ThrottleFailureDoesNotBlock(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw")
	throttle := &mockauth.StubThrottle{Err: errors.New("redis down")}
	svc := newTestAuthService(t, store, throttle)

	res, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
}

func TestAuthService_Login_SuccessResetsThrottle(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw")
	throttle := &mockauth.StubThrottle{}
	svc := newTestAuthService(t, store, throttle)

	_, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, throttle.ResetCalls)
}

func TestAuthService_Logout_ClearsBothPaths(t *testing.T) {
	svc := newTestAuthService(t, mockauth.NewMemoryUserStore(), nil)

	cookies := svc.Logout()
	require.Len(t, cookies, 2)

	paths := []string{cookies[0].Path, cookies[1].Path}
	assert.ElementsMatch(t, []string{"/api", "/"}, paths)
	for _, c := range cookies {
		assert.Equal(t, "shopSessionToken", c.Name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	store := mockauth.NewMemoryUserStore()
	seedUser(store, "alice", "pw", domainauth.RoleSeller)
	svc := newTestAuthService(t, store, nil)
	ctx := context.Background()

	info, err := svc.CurrentUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, []string{"ROLE_SELLER"}, info.Roles)
	assert.Empty(t, info.Token, "no fresh token on profile reads")

	_, err = svc.CurrentUser(ctx, "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}
