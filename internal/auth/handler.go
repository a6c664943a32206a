package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskboard/taskboard/internal/platform/httpx"
	"github.com/taskboard/taskboard/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

type authResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    shared.Principal `json:"user"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.fail(w, "register", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.service.Login(r.Context(), in)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	httpx.JSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// fail answers every client-side auth failure with 400, as the browser
// client expects, and hides internal errors.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrConflict):
		httpx.Message(w, http.StatusBadRequest, "User already exists with this email or username")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Message(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, shared.ErrInvalidCredentials):
		httpx.Message(w, http.StatusBadRequest, "Invalid password")
	case errors.Is(err, shared.ErrValidation):
		httpx.Message(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
