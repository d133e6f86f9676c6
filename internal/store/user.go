package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// UserRepository handles persistence for users.
//
// The email column is nullable in the database so that the uniqueness
// constraint only applies to accounts that actually set one; an empty
// string in types.User maps to NULL on write and back on read.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT id, username, COALESCE(email, ''), role, experience_level, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT id, username, COALESCE(email, ''), role, experience_level, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	const query = `
		SELECT id, username, COALESCE(email, ''), role, experience_level, password_hash, created_at, updated_at
		FROM users
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0, 8)
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO users (username, email, role, experience_level, password_hash, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Role,
		user.ExperienceLevel,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, translateError(err)
	}
	return user, nil
}

// UpdateRole changes only the role of an existing user.
func (r *UserRepository) UpdateRole(ctx context.Context, id int, role string) error {
	const query = `
		UPDATE users
		SET role = $1,
			updated_at = $2
		WHERE id = $3`
	return r.exec(ctx, query, role, time.Now(), id)
}

// UpdateExperienceLevel changes only the experience level of an existing user.
func (r *UserRepository) UpdateExperienceLevel(ctx context.Context, id int, level string) error {
	const query = `
		UPDATE users
		SET experience_level = $1,
			updated_at = $2
		WHERE id = $3`
	return r.exec(ctx, query, level, time.Now(), id)
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Role,
		&user.ExperienceLevel,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}
