package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/taskboard/internal/app"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/dashboard"
	"github.com/taskboard/taskboard/internal/observability"
	"github.com/taskboard/taskboard/internal/platform/db"
	"github.com/taskboard/taskboard/internal/store/memory"
	"github.com/taskboard/taskboard/internal/tasks"
)

type stores struct {
	users  auth.Repository
	tasks  tasks.Repository
	pinger app.Pinger
	close  func()
}

func openStores(ctx context.Context, cfg *app.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == app.StoreDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return &stores{
			users: memory.NewUserStore(),
			tasks: memory.NewTaskStore(),
			close: func() {},
		}, nil
	}

	pool, err := db.New(ctx, cfg.StoreDSN)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		users:  auth.NewRepository(pool),
		tasks:  tasks.NewRepository(pool),
		pinger: pool,
		close:  pool.Close,
	}, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if cfg.UsesInsecureSecret() {
		logger.Warn("JWT_SECRET is the development default, do not expose this instance")
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer st.close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(st.users, auth.NewPasswordHasher(cfg.BcryptCost), tokens)
	guard := auth.NewGuard(authService, logger)

	taskService := tasks.NewService(st.tasks)
	statsService := dashboard.NewService(st.tasks)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Guard:            guard,
		AuthHandler:      auth.NewHandler(logger, authService),
		TasksHandler:     tasks.NewHandler(logger, taskService),
		DashboardHandler: dashboard.NewHandler(logger, statsService),
		Store:            st.pinger,
		Metrics:          observability.NewMetrics(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
