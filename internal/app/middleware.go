package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mssola/user_agent"
	"github.com/unrolled/secure"

	"github.com/taskboard/taskboard/internal/observability"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
}

// MiddlewareStack installs the global middleware chain. CORS sits ahead of
// the route guards so browser preflight requests never need a token.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	production := cfg.Config != nil && cfg.Config.IsProduction()
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})

	origin := "*"
	timeout := 30 * time.Second
	if cfg.Config != nil {
		if cfg.Config.CORSAllowedOrigin != "" {
			origin = cfg.Config.CORSAllowedOrigin
		}
		if cfg.Config.AppRequestTimeout > 0 {
			timeout = cfg.Config.AppRequestTimeout
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		requestLogger(logger),
		middleware.Recoverer,
		cfg.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{origin},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}),
		middleware.Timeout(timeout),
		secureMiddleware.Handler,
	}
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(middleware.RequestIDHeader, reqID)
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", reqID),
				clientAttr(r.UserAgent()),
			)
		})
	}
}

// clientAttr summarizes the User-Agent header as browser, OS and device type.
func clientAttr(ua string) slog.Attr {
	if ua == "" {
		return slog.Group("client")
	}
	parsed := user_agent.New(ua)
	browser, _ := parsed.Browser()
	device := "desktop"
	if parsed.Mobile() {
		device = "mobile"
	} else if parsed.Bot() {
		device = "bot"
	}
	return slog.Group("client",
		slog.String("browser", browser),
		slog.String("os", parsed.OS()),
		slog.String("device", device),
	)
}
