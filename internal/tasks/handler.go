package tasks

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskboard/taskboard/internal/platform/httpx"
	"github.com/taskboard/taskboard/internal/shared"
)

// Handler exposes the task endpoints. Routes must sit behind auth.Guard.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers task routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createTask)
	r.Get("/", h.listTasks)
	r.Put("/{id}", h.updateTask)
	r.Delete("/{id}", h.deleteTask)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	task, err := h.service.Create(r.Context(), principal.ID, req)
	if err != nil {
		h.fail(w, "create task", "", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, task)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	list, err := h.service.ListByOwner(r.Context(), principal.ID)
	if err != nil {
		h.fail(w, "list tasks", "", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	task, err := h.service.Update(r.Context(), principal.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "update task", "Not authorized to update this task", err)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), principal.ID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete task", "Not authorized to delete this task", err)
		return
	}
	httpx.Message(w, http.StatusOK, "Task deleted")
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (shared.Principal, bool) {
	p, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Message(w, http.StatusUnauthorized, "No token provided")
	}
	return p, ok
}

func (h *Handler) fail(w http.ResponseWriter, op, forbidden string, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Message(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, shared.ErrForbidden):
		httpx.Message(w, http.StatusForbidden, forbidden)
	case errors.Is(err, shared.ErrValidation):
		httpx.Message(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
