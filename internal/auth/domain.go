package auth

import (
	"time"

	"github.com/taskboard/taskboard/internal/shared"
)

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the token identity for the user.
func (u User) Principal() shared.Principal {
	return shared.Principal{ID: u.ID, Username: u.Username, Email: u.Email}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      shared.Principal
}
