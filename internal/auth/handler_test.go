package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/store/memory"
	_ "github.com/taskboard/taskboard/testing"
)

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/auth", auth.NewHandler(nil, newService(memory.NewUserStore())).MountRoutes)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	router := newAuthRouter(t)

	rr := post(t, router, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var registered authBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registered))
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.NotEmpty(t, registered.Token)
	assert.NotEmpty(t, registered.User.ID)
	assert.Equal(t, "alice", registered.User.Username)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = post(t, router, "/auth/login", `{"email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var loggedIn authBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loggedIn))
	assert.Equal(t, "Login successful", loggedIn.Message)
	assert.Equal(t, registered.User, loggedIn.User)
}

func TestAuthEndpointFailures(t *testing.T) {
	router := newAuthRouter(t)
	rr := post(t, router, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	cases := []struct {
		name    string
		path    string
		body    string
		message string
	}{
		{"duplicate", "/auth/register", `{"username":"alice","email":"x@example.com","password":"pw"}`, "User already exists with this email or username"},
		{"unknown email", "/auth/login", `{"email":"bob@example.com","password":"pw"}`, "User not found"},
		{"wrong password", "/auth/login", `{"email":"alice@example.com","password":"nope"}`, "Invalid password"},
		{"malformed json", "/auth/login", `{"email":`, "Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := post(t, router, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"message":"`+tc.message+`"}`, rr.Body.String())
		})
	}

	rr = post(t, router, "/auth/register", `{"username":"carol","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email")
}
