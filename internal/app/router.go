package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/dashboard"
	"github.com/taskboard/taskboard/internal/observability"
	"github.com/taskboard/taskboard/internal/platform/httpx"
	"github.com/taskboard/taskboard/internal/tasks"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Guard            *auth.Guard
	AuthHandler      *auth.Handler
	TasksHandler     *tasks.Handler
	DashboardHandler *dashboard.Handler
	Store            Pinger
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with the API routes mounted.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", healthHandler(params.Store))
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}
	r.Group(func(private chi.Router) {
		if params.Guard != nil {
			private.Use(params.Guard.Require)
		}
		if params.TasksHandler != nil {
			private.Route("/tasks", params.TasksHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			private.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	return r
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
