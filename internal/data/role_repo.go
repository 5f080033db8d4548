package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/target/shop-auth-api/internal/data/pgxutil"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	apperrors "github.com/target/shop-auth-api/internal/errors"
)

// RoleRepo provides lookups over the immutable role reference data.
// It implements ports.RoleStore.
type RoleRepo struct {
	DB *sql.DB
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{DB: db}
}

type roleRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// FindByName retrieves a role record by its stable name. Returns
// ErrRoleNotFound when the role was never seeded, which registration
// treats as a bootstrap defect rather than a user error.
func (r *RoleRepo) FindByName(ctx context.Context, name domainauth.Role) (*domainauth.RoleRecord, error) {
	var row roleRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, name FROM roles WHERE name = $1`, string(name))
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[roleRow])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, apperrors.MapDBError(fmt.Errorf("failed to get role by name: %w", err))
	}

	return &domainauth.RoleRecord{ID: row.ID, Name: domainauth.Role(row.Name)}, nil
}
