package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	"github.com/target/shop-auth-api/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, roles ...domainauth.Role) *domainauth.Principal {
	t.Helper()
	if len(roles) == 0 {
		roles = []domainauth.Role{domainauth.RoleUser}
	}
	suffix := time.Now().UnixNano()
	p := &domainauth.Principal{
		Username:     fmt.Sprintf("user-%d", suffix),
		Email:        fmt.Sprintf("user-%d@example.com", suffix),
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashforTests",
		Roles:        roles,
	}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func TestUserRepo_Create_FindByUsername(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		created := createTestUser(t, db, domainauth.RoleUser, domainauth.RoleAdmin)

		got, err := repo.FindByUsername(ctx, created.Username)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Username, got.Username)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, created.PasswordHash, got.PasswordHash)
		assert.ElementsMatch(t,
			[]domainauth.Role{domainauth.RoleUser, domainauth.RoleAdmin},
			got.Roles)
	})
}

func TestUserRepo_FindByUsername_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)

		_, err := repo.FindByUsername(context.Background(), "no-such-user")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_Exists(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		created := createTestUser(t, db)

		byName, err := repo.ExistsByUsername(ctx, created.Username)
		require.NoError(t, err)
		assert.True(t, byName)

		byEmail, err := repo.ExistsByEmail(ctx, created.Email)
		require.NoError(t, err)
		assert.True(t, byEmail)

		missing, err := repo.ExistsByUsername(ctx, "no-such-user")
		require.NoError(t, err)
		assert.False(t, missing)

		missingEmail, err := repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, missingEmail)
	})
}

func TestUserRepo_Create_UniqueViolations(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		created := createTestUser(t, db)

		dupUsername := &domainauth.Principal{
			Username:     created.Username,
			Email:        fmt.Sprintf("other-%d@example.com", time.Now().UnixNano()),
			PasswordHash: created.PasswordHash,
			Roles:        []domainauth.Role{domainauth.RoleUser},
		}
		assert.ErrorIs(t, repo.Create(ctx, dupUsername), ErrUsernameExists)

		dupEmail := &domainauth.Principal{
			Username:     fmt.Sprintf("other-%d", time.Now().UnixNano()),
			Email:        created.Email,
			PasswordHash: created.PasswordHash,
			Roles:        []domainauth.Role{domainauth.RoleUser},
		}
		assert.ErrorIs(t, repo.Create(ctx, dupEmail), ErrEmailExists)

		// A failed insert must not leave partial rows behind.
		exists, err := repo.ExistsByUsername(ctx, dupEmail.Username)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestUserRepo_Create_NilPrincipal(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		assert.Error(t, repo.Create(context.Background(), nil))
	})
}
