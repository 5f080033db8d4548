package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/target/shop-auth-api/internal/data"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	apperrors "github.com/target/shop-auth-api/internal/errors"
	"github.com/target/shop-auth-api/internal/ports"
)

// RegisterInput carries a sign-up request. Roles holds request-level role
// names ("admin", "seller"); anything else maps to the default user role.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// RegistrationServiceOptions groups dependencies for RegistrationService.
type RegistrationServiceOptions struct {
	Users  ports.UserStore
	Roles  ports.RoleStore
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

// RegistrationService creates new principals. Sign-up never issues a
// session; the client signs in afterwards.
type RegistrationService struct {
	users  ports.UserStore
	roles  ports.RoleStore
	hasher ports.PasswordHasher
	logger *slog.Logger
}

// NewRegistrationService constructs a new RegistrationService.
func NewRegistrationService(opts RegistrationServiceOptions) *RegistrationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		users:  opts.Users,
		roles:  opts.Roles,
		hasher: opts.Hasher,
		logger: logger,
	}
}

// Register validates the input, hashes the password, resolves the requested
// roles against the role reference data and persists the principal with its
// role assignments in one transaction. Duplicate username/email surface as
// field-scoped Conflict errors; the store's unique constraints are the
// final authority under concurrent sign-ups.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*domainauth.Principal, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "failed to check username")
	}
	if taken {
		return nil, apperrors.ConflictField("username", "Username is already taken!")
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "failed to check email")
	}
	if taken {
		return nil, apperrors.ConflictField("email", "Email is already in use!")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	principal := &domainauth.Principal{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        roles,
	}
	if createErr := s.users.Create(ctx, principal); createErr != nil {
		return nil, mapCreateErr(createErr)
	}

	s.logger.InfoContext(ctx, "user registered",
		"username", principal.Username, "roles", principal.Authorities())
	return principal, nil
}

// resolveRoles maps request role names to domain roles and verifies each one
// exists in the reference data. An empty request yields the default role. A
// missing role row means seeding never ran, which is a server fault.
func (s *RegistrationService) resolveRoles(ctx context.Context, requested []string) ([]domainauth.Role, error) {
	names := make(map[domainauth.Role]struct{})
	if len(requested) == 0 {
		names[domainauth.RoleUser] = struct{}{}
	}
	for _, req := range requested {
		names[domainauth.RoleFromRequest(req)] = struct{}{}
	}

	roles := make([]domainauth.Role, 0, len(names))
	for _, role := range []domainauth.Role{domainauth.RoleUser, domainauth.RoleSeller, domainauth.RoleAdmin} {
		if _, ok := names[role]; !ok {
			continue
		}
		if _, err := s.roles.FindByName(ctx, role); err != nil {
			if errors.Is(err, data.ErrRoleNotFound) {
				return nil, apperrors.Internalf("role %s is not provisioned", role)
			}
			return nil, apperrors.WrapInternal(err, "failed to resolve role")
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func validateRegisterInput(in RegisterInput) error {
	switch {
	case in.Username == "":
		return apperrors.ValidationField("username", "Username is required")
	case in.Email == "":
		return apperrors.ValidationField("email", "Email is required")
	case in.Password == "":
		return apperrors.ValidationField("password", "Password is required")
	}
	return nil
}

func mapCreateErr(err error) error {
	switch {
	case errors.Is(err, data.ErrUsernameExists):
		return apperrors.ConflictField("username", "Username is already taken!")
	case errors.Is(err, data.ErrEmailExists):
		return apperrors.ConflictField("email", "Email is already in use!")
	default:
		return apperrors.WrapInternal(err, "failed to create user")
	}
}
