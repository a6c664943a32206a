package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	_, ok = PrincipalFromContext(ContextWithPrincipal(context.Background(), Principal{}))
	assert.False(t, ok)

	want := Principal{ID: "u1", Username: "alice", Email: "alice@example.com"}
	got, ok := PrincipalFromContext(ContextWithPrincipal(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestValidationErrorUsesJSONNames(t *testing.T) {
	type input struct {
		Email    string `json:"email" validate:"required,email"`
		Priority string `json:"priority,omitempty" validate:"oneof=low high"`
		Emoji    string `json:"emoji" validate:"max=2"`
	}

	err := NewValidator().Struct(input{Email: "nope", Priority: "mid", Emoji: "abc"})
	require.Error(t, err)

	wrapped := ValidationError(err)
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.Contains(t, wrapped.Error(), "email must be a valid email address")
	assert.Contains(t, wrapped.Error(), "priority must be one of: low, high")
	assert.Contains(t, wrapped.Error(), "emoji must be at most 2 characters")
}
