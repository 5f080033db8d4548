package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/shop-auth-api/internal/data"
	apperrors "github.com/target/shop-auth-api/internal/errors"
	"github.com/target/shop-auth-api/internal/ports"
	"github.com/target/shop-auth-api/internal/session"
	"github.com/target/shop-auth-api/internal/token"
)

// badCredentialsMessage is shared by the unknown-user and wrong-password
// paths so responses do not reveal which half of the pair failed.
const badCredentialsMessage = "Bad credentials"

// LoginInput carries the credential pair from a sign-in request.
type LoginInput struct {
	Username string
	Password string
}

// UserInfo is the authenticated-user payload returned to clients.
type UserInfo struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Token    string   `json:"jwtToken,omitempty"`
}

// LoginResult bundles the user payload with the session cookie to set.
type LoginResult struct {
	User   UserInfo
	Cookie *http.Cookie
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    ports.UserStore
	Hasher   ports.PasswordHasher
	Codec    *token.Codec
	Sessions *session.Manager
	// Throttle is optional; nil disables attempt limiting.
	Throttle ports.LoginThrottle
	Logger   *slog.Logger
}

// AuthService authenticates credential pairs and manages session lifecycle.
type AuthService struct {
	users    ports.UserStore
	hasher   ports.PasswordHasher
	codec    *token.Codec
	sessions *session.Manager
	throttle ports.LoginThrottle
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		hasher:   opts.Hasher,
		codec:    opts.Codec,
		sessions: opts.Sessions,
		throttle: opts.Throttle,
		logger:   logger,
	}
}

// Login verifies the credential pair and, on success, returns the user
// payload plus a session cookie carrying a freshly issued token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, apperrors.Unauthorized(badCredentialsMessage)
	}

	if err := s.checkThrottle(ctx, in.Username); err != nil {
		return nil, err
	}

	principal, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) || apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(badCredentialsMessage)
		}
		return nil, apperrors.WrapInternal(err, "failed to load user")
	}

	if compareErr := s.hasher.Compare(principal.PasswordHash, in.Password); compareErr != nil {
		return nil, apperrors.Unauthorized(badCredentialsMessage)
	}

	tok, err := s.codec.Issue(principal.Username)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to issue token")
	}

	s.resetThrottle(ctx, in.Username)
	s.logger.InfoContext(ctx, "user signed in", "username", principal.Username)

	return &LoginResult{
		User: UserInfo{
			ID:       principal.ID,
			Username: principal.Username,
			Email:    principal.Email,
			Roles:    principal.Authorities(),
			Token:    tok,
		},
		Cookie: s.sessions.Issue(tok),
	}, nil
}

// Logout returns the invalidation cookies to send. Both the current and the
// legacy root cookie path are cleared.
func (s *AuthService) Logout() []*http.Cookie {
	return s.sessions.InvalidateAll()
}

// CurrentUser returns the user payload for an already-resolved identity,
// without a fresh token.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*UserInfo, error) {
	principal, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) || apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.WrapInternal(err, "failed to load user")
	}
	return &UserInfo{
		ID:       principal.ID,
		Username: principal.Username,
		Email:    principal.Email,
		Roles:    principal.Authorities(),
	}, nil
}

func (s *AuthService) checkThrottle(ctx context.Context, username string) error {
	if s.throttle == nil {
		return nil
	}
	ok, err := s.throttle.Allow(ctx, username)
	if err != nil {
		// A broken throttle must not lock everyone out.
		s.logger.WarnContext(ctx, "login throttle unavailable", "error", err)
		return nil
	}
	if !ok {
		s.logger.WarnContext(ctx, "login attempts throttled", "username", username)
		return apperrors.RateLimited("Too many sign-in attempts; try again later")
	}
	return nil
}

func (s *AuthService) resetThrottle(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, username); err != nil {
		s.logger.WarnContext(ctx, "login throttle reset failed", "error", err)
	}
}
