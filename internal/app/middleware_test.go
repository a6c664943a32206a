package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.RequestID(requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/tasks", line["path"])
	assert.EqualValues(t, http.StatusCreated, line["status"])
	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, line["request_id"], rr.Header().Get(middleware.RequestIDHeader))

	client, ok := line["client"].(map[string]any)
	require.True(t, ok, "client group missing: %v", line)
	assert.Equal(t, "Chrome", client["browser"])
	assert.Equal(t, "desktop", client["device"])
}

func TestClientAttrWithoutUserAgent(t *testing.T) {
	attr := clientAttr("")
	assert.Equal(t, "client", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
}

func TestRequestLoggerEscalatesServerErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := requestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
}

func TestMiddlewareStackRecoversPanics(t *testing.T) {
	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	stack := MiddlewareStack(MiddlewareConfig{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))})
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
