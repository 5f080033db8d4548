package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Registration RegistrationServiceInterface
	Resolver     *IdentityResolver
	Logger       *slog.Logger // Logger for handler errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Auth:   services.Auth,
		Reg:    services.Registration,
		Logger: services.Logger,
	}

	registerAuthRoutes(mux, authHandlers, services.Resolver)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, res *IdentityResolver) {
	mux.HandleFunc("POST /api/auth/signin", h.SignIn)
	mux.HandleFunc("POST /api/auth/signup", h.SignUp)
	mux.HandleFunc("POST /api/auth/signout", h.SignOut)
	mux.Handle("GET /api/auth/user", RequireAuth(res)(http.HandlerFunc(h.CurrentUser)))
	mux.Handle("GET /api/auth/username", OptionalAuth(res)(http.HandlerFunc(h.Username)))
}
