package httpx

import (
	"errors"
	"net/http"

	"github.com/taskboard/taskboard/internal/shared"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrInvalidToken), errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a {"message"} body. Internal failures get a
// generic message so store details never leak to clients.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	Message(w, status, msg)
}
