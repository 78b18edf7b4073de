package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taskdeck/apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (types.User, error) {
	const query = `
		SELECT id, public_id, name, password_hash, is_admin, created_at
		FROM users
		WHERE public_id = $1`
	var user types.User
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&user.ID,
		&user.PublicID,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// GetByName resolves a login name to a user. Names are not unique; the
// earliest row wins.
func (r *UserRepository) GetByName(ctx context.Context, name string) (types.User, error) {
	const query = `
		SELECT id, public_id, name, password_hash, is_admin, created_at
		FROM users
		WHERE name = $1
		ORDER BY id
		LIMIT 1`
	var user types.User
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&user.ID,
		&user.PublicID,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	const query = `
		SELECT id, public_id, name, password_hash, is_admin, created_at
		FROM users
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.ID,
			&user.PublicID,
			&user.Name,
			&user.PasswordHash,
			&user.IsAdmin,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = time.Now()

	const query = `
		INSERT INTO users (public_id, name, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.PublicID,
		user.Name,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Promote(ctx context.Context, publicID string) error {
	const query = `UPDATE users SET is_admin = TRUE WHERE public_id = $1`
	result, err := r.db.ExecContext(ctx, query, publicID)
	if err != nil {
		return err
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

func (r *UserRepository) Delete(ctx context.Context, publicID string) error {
	const query = `DELETE FROM users WHERE public_id = $1`
	result, err := r.db.ExecContext(ctx, query, publicID)
	if err != nil {
		return err
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
