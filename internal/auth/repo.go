package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/taskboard/internal/platform/db"
	"github.com/taskboard/taskboard/internal/shared"
)

// Repository defines persistence operations for user credentials.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	Create(ctx context.Context, user User) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectUser = `SELECT id::text, username, email, password_hash, created_at, updated_at FROM users`

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = $1`, email)
}

// FindByEmailOrUsername returns any user holding either identifier.
func (r *PGRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = $1 OR username = $2 LIMIT 1`, email, username)
}

// Create inserts the user with a fresh identifier.
func (r *PGRepository) Create(ctx context.Context, user User) (*User, error) {
	now := db.Now()
	user.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.PasswordHash, now, now,
	)
	if err != nil {
		return nil, insertUserError(err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return &user, nil
}

// insertUserError maps a taken username or email onto shared.ErrConflict.
func insertUserError(err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("insert user: %w", shared.ErrConflict)
	}
	return fmt.Errorf("insert user: %w", err)
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...any) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ Repository = (*PGRepository)(nil)
