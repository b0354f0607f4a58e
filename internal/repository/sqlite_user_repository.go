package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/auth-service/internal/domain"
)

const sqliteEmailConstraint = "UNIQUE constraint failed: users.email"

type sqliteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository returns a SQLite-backed implementation. The schema
// is applied by persistence.SQLite.Migrate.
func NewSQLiteUserRepository(db *sql.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, username, name, email, password_hash, roles, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.Email,
		user.PasswordHash,
		joinRoles(user.Roles),
		formatTime(now),
		formatTime(now),
	); err != nil {
		return mapSQLiteError(err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *sqliteUserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=?, name=?, email=?, password_hash=?, roles=?, updated_at=?
        WHERE id=?`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Name,
		user.Email,
		user.PasswordHash,
		joinRoles(user.Roles),
		formatTime(now),
		user.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	user.UpdatedAt = now
	return nil
}

func (r *sqliteUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, username, name, email, password_hash, roles, created_at, updated_at
        FROM users WHERE id=?`

	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, username, name, email, password_hash, roles, created_at, updated_at
        FROM users WHERE email=?`

	return scanSQLiteUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *sqliteUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	const query = `
        SELECT id, username, name, email, password_hash, roles, created_at, updated_at
        FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteUser(row rowScanner) (*domain.User, error) {
	var (
		user                 domain.User
		roles                string
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&roles,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	user.Roles = splitRoles(roles)
	return &user, nil
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), sqliteEmailConstraint) {
		return ErrDuplicateEmail
	}
	return err
}

func joinRoles(roles []domain.Role) string {
	return strings.Join(domain.RoleLabels(roles), ",")
}

func splitRoles(raw string) []domain.Role {
	if raw == "" {
		return nil
	}
	return domain.ParseRoles(strings.Split(raw, ","))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}
