package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	"github.com/target/shop-auth-api/internal/service"
)

// AuthServiceInterface defines the auth service operations the handlers need.
type AuthServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
	Logout() []*http.Cookie
	CurrentUser(ctx context.Context, username string) (*service.UserInfo, error)
}

// RegistrationServiceInterface defines the sign-up operation the handlers need.
type RegistrationServiceInterface interface {
	Register(ctx context.Context, in service.RegisterInput) (*domainauth.Principal, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Auth   AuthServiceInterface
	Reg    RegistrationServiceInterface
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// SignIn handles credential sign-in.
// POST /api/auth/signin.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Auth.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	http.SetCookie(w, result.Cookie)
	WriteJSON(w, http.StatusOK, result.User)
}

// SignUp handles account registration. No session is issued; the client
// signs in afterwards.
// POST /api/auth/signup.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Reg.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Roles,
	}); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}

// SignOut clears the session cookie on both the current and the legacy path.
// POST /api/auth/signout.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.Auth.Logout() {
		http.SetCookie(w, c)
	}
	h.logger().DebugContext(r.Context(), "user signed out")
	WriteJSON(w, http.StatusOK, map[string]string{"message": "You've been signed out!"})
}

// CurrentUser returns the authenticated principal's details.
// GET /api/auth/user (behind RequireAuth).
func (h *AuthHandlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	info, err := h.Auth.CurrentUser(r.Context(), id.Username)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// Username returns the authenticated username as plain text, or an empty
// body for anonymous callers.
// GET /api/auth/username (behind OptionalAuth).
func (h *AuthHandlers) Username(w http.ResponseWriter, r *http.Request) {
	username := ""
	if id, ok := GetIdentityFromContext(r.Context()); ok {
		username = id.Username
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, username); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
