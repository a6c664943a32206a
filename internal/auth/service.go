package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/taskboard/taskboard/internal/shared"
)

// Service wraps registration, login and token verification.
type Service struct {
	repo     Repository
	hasher   *PasswordHasher
	tokens   *TokenManager
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		validate: shared.NewValidator(),
	}
}

// Register creates an account and issues a token for it. A user already
// holding the username or the email yields shared.ErrConflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = normalizeUsername(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, shared.ValidationError(err)
	}

	existing, err := s.repo.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register %q: %w", in.Username, shared.ErrConflict)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, User{Username: in.Username, Email: in.Email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

// Login checks the credentials and issues a token. An unknown email yields
// shared.ErrNotFound and a wrong password shared.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, shared.ValidationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, shared.ErrInvalidCredentials
	}
	return s.issue(user)
}

// VerifyToken decodes a bearer token into the caller's principal.
func (s *Service) VerifyToken(token string) (shared.Principal, error) {
	return s.tokens.Verify(token)
}

func (s *Service) issue(user *User) (*AuthResult, error) {
	principal := user.Principal()
	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: principal}, nil
}

func normalizeUsername(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

func normalizeEmail(v string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(v)))
}
