package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	"github.com/target/shop-auth-api/internal/testutil"
)

func TestRoleRepo_FindByName_Seeded(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewRoleRepo(db)

		for _, name := range []domainauth.Role{
			domainauth.RoleUser,
			domainauth.RoleSeller,
			domainauth.RoleAdmin,
		} {
			rec, err := repo.FindByName(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, name, rec.Name)
			assert.NotZero(t, rec.ID)
		}
	})
}

func TestRoleRepo_FindByName_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewRoleRepo(db)

		_, err := repo.FindByName(context.Background(), domainauth.Role("ROLE_NOPE"))
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})
}
