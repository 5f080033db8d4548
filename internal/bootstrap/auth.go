package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/shop-auth-api/config"
	"github.com/target/shop-auth-api/internal/adapters/password"
	redisadapter "github.com/target/shop-auth-api/internal/adapters/redis"
	"github.com/target/shop-auth-api/internal/data"
	httpx "github.com/target/shop-auth-api/internal/http"
	"github.com/target/shop-auth-api/internal/ports"
	"github.com/target/shop-auth-api/internal/service"
	"github.com/target/shop-auth-api/internal/session"
	"github.com/target/shop-auth-api/internal/token"
)

// AuthComponents bundles everything the HTTP layer needs for auth.
type AuthComponents struct {
	Auth         *service.AuthService
	Registration *service.RegistrationService
	Resolver     *httpx.IdentityResolver
}

// AuthBuildConfig contains dependencies for building the auth components.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// BuildAuthComponents wires stores, the token codec, the cookie manager and
// the orchestrators. The sign-in throttle is only attached when a Redis
// client is available.
func BuildAuthComponents(cfg AuthBuildConfig) (*AuthComponents, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	codec, err := token.NewCodec(token.Config{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.JWTExpiration,
	})
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	sessions := session.NewManager(session.Config{
		Name:   cfg.Auth.CookieName,
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.CookieSecure,
	})

	users := data.NewUserRepo(cfg.DB)
	roles := data.NewRoleRepo(cfg.DB)
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	var throttle ports.LoginThrottle
	if cfg.RedisClient != nil {
		throttle = redisadapter.NewLoginThrottle(
			cfg.RedisClient, cfg.Auth.ThrottleMaxAttempts, cfg.Auth.ThrottleWindow)
		logger.Info("sign-in throttle enabled",
			"max_attempts", cfg.Auth.ThrottleMaxAttempts,
			"window", cfg.Auth.ThrottleWindow,
		)
	}

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Users:    users,
		Hasher:   hasher,
		Codec:    codec,
		Sessions: sessions,
		Throttle: throttle,
		Logger:   logger,
	})
	regSvc := service.NewRegistrationService(service.RegistrationServiceOptions{
		Users:  users,
		Roles:  roles,
		Hasher: hasher,
		Logger: logger,
	})
	resolver := httpx.NewIdentityResolver(httpx.IdentityResolverOptions{
		Codec:      codec,
		Users:      users,
		CookieName: cfg.Auth.CookieName,
		Logger:     logger,
	})

	return &AuthComponents{
		Auth:         authSvc,
		Registration: regSvc,
		Resolver:     resolver,
	}, nil
}
