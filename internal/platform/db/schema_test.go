package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", unique)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range schemaStatements {
		assert.Contains(t, strings.ToUpper(stmt), "IF NOT EXISTS", stmt)
	}
}

func TestSchemaEnforcesUniqueIdentifiers(t *testing.T) {
	users := schemaStatements[0]
	assert.Contains(t, users, "UNIQUE (username)")
	assert.Contains(t, users, "UNIQUE (email)")
}

func TestNewRejectsMalformedDSN(t *testing.T) {
	_, err := New(context.Background(), "postgres://%zz")
	assert.ErrorContains(t, err, "platform/db: parse config")
}

func TestNowMatchesColumnPrecision(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
	assert.True(t, now.Equal(now.Truncate(time.Microsecond)))
}

func TestRequireAffected(t *testing.T) {
	missing := errors.New("missing")

	assert.NoError(t, RequireAffected(pgconn.NewCommandTag("UPDATE 1"), missing))
	assert.NoError(t, RequireAffected(pgconn.NewCommandTag("DELETE 3"), missing))
	assert.ErrorIs(t, RequireAffected(pgconn.NewCommandTag("UPDATE 0"), missing), missing)
	assert.ErrorIs(t, RequireAffected(pgconn.NewCommandTag("DELETE 0"), missing), missing)
}
