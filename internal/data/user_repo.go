package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/target/shop-auth-api/internal/data/pgxutil"
	domainauth "github.com/target/shop-auth-api/internal/domain/auth"
	apperrors "github.com/target/shop-auth-api/internal/errors"
)

// UserRepo provides database operations for principals and their role
// assignments. It implements ports.UserStore.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// userRow is the scan target for user queries; the role set is loaded
// separately because it is a join table.
type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

const (
	userGetByUsernameQuery = `
		SELECT id, username, email, password_hash
		FROM users
		WHERE username = $1`

	userRolesQuery = `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id`
)

// FindByUsername retrieves a principal by login name with its role set
// populated. Returns ErrUserNotFound when no row matches.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domainauth.Principal, error) {
	var (
		row   userRow
		roles []string
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userGetByUsernameQuery, username)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		if err != nil {
			return err
		}

		roleRows, err := conn.Query(ctx, userRolesQuery, row.ID)
		if err != nil {
			return err
		}
		defer roleRows.Close()
		roles, err = pgx.CollectRows(roleRows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.MapDBError(fmt.Errorf("failed to get user by username: %w", err))
	}

	p := &domainauth.Principal{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Roles:        make([]domainauth.Role, len(roles)),
	}
	for i, name := range roles {
		p.Roles[i] = domainauth.Role(name)
	}
	return p, nil
}

// ExistsByUsername reports whether a principal with the given login name exists.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

// ExistsByEmail reports whether a principal with the given email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var out bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, arg).Scan(&out)
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("failed to check existence: %w", err))
	}
	return out, nil
}

// Create inserts the principal and its role assignments in a single
// transaction and fills in the generated ID. Unique-constraint
// collisions map to ErrUsernameExists / ErrEmailExists so callers get
// the same outcome under races as from the pre-checks.
func (r *UserRepo) Create(ctx context.Context, p *domainauth.Principal) error {
	if p == nil {
		return errors.New("principal is required")
	}

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			if err := tx.QueryRow(ctx, `
				INSERT INTO users (username, email, password_hash)
				VALUES ($1, $2, $3)
				RETURNING id`,
				p.Username, p.Email, p.PasswordHash,
			).Scan(&p.ID); err != nil {
				return err
			}

			for _, role := range p.Roles {
				if _, err := tx.Exec(ctx, `
					INSERT INTO user_roles (user_id, role_id)
					SELECT $1, id FROM roles WHERE name = $2`,
					p.ID, string(role),
				); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		return r.mapWriteErr(err)
	}
	return nil
}

func (r *UserRepo) mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameExists
		case "users_email_key":
			return ErrEmailExists
		}
	}
	return apperrors.MapDBError(fmt.Errorf("failed to create user: %w", err))
}
