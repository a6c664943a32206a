package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard/internal/platform/httpx"
	"github.com/taskboard/taskboard/internal/shared"
)

// TokenVerifier decodes bearer tokens. *Service satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) (shared.Principal, error)
}

// Guard rejects requests that lack a valid bearer token.
type Guard struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewGuard constructs a Guard.
func NewGuard(verifier TokenVerifier, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{verifier: verifier, logger: logger}
}

// Require attaches the verified principal to the request context. A missing
// token answers 401, a rejected one 403.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			httpx.Message(w, http.StatusUnauthorized, "No token provided")
			return
		}
		principal, err := g.verifier.VerifyToken(token)
		if err != nil {
			g.logger.Debug("bearer token rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
			httpx.Message(w, http.StatusForbidden, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
