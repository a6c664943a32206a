package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements bootstraps the tables on an empty database. Every
// statement is idempotent so it is safe to run on each start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id            UUID PRIMARY KEY,
		user_id       UUID NOT NULL REFERENCES users (id),
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		deadline_date TEXT NOT NULL DEFAULT '',
		deadline_time TEXT NOT NULL DEFAULT '',
		priority      TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
		important     BOOLEAN NOT NULL DEFAULT FALSE,
		status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed')),
		emoji         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_user_id_created_at_idx ON tasks (user_id, created_at DESC)`,
}

// EnsureSchema creates the users and tasks tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: ensure schema: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const uniqueViolation = "23505"

// Now returns the current UTC time truncated to the microsecond precision a
// TIMESTAMPTZ column keeps, so a written value reads back unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// RequireAffected returns notFound when a write matched no rows.
func RequireAffected(tag pgconn.CommandTag, notFound error) error {
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
