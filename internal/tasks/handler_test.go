package tasks_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/shared"
	"github.com/taskboard/taskboard/internal/tasks"
	_ "github.com/taskboard/taskboard/testing"
)

// asUser stands in for the auth guard.
func asUser(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id != "" {
				r = r.WithContext(shared.ContextWithPrincipal(r.Context(), shared.Principal{ID: id}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTaskRouter(svc *tasks.Service, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(userID))
	r.Route("/tasks", tasks.NewHandler(nil, svc).MountRoutes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestTaskEndpointsLifecycle(t *testing.T) {
	svc, _ := newService()
	router := newTaskRouter(svc, owner)

	rr := do(t, router, http.MethodPost, "/tasks", `{"title":"Write report","userId":"someone-else"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created tasks.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, tasks.PriorityMedium, created.Priority)

	rr = do(t, router, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []tasks.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rr = do(t, router, http.MethodPut, "/tasks/"+created.ID, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated tasks.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, tasks.StatusCompleted, updated.Status)
	assert.Equal(t, "Write report", updated.Title)

	rr = do(t, router, http.MethodDelete, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, rr.Body.String())

	rr = do(t, router, http.MethodDelete, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, rr.Body.String())
}

func TestTaskEndpointsEmptyList(t *testing.T) {
	svc, _ := newService()

	rr := do(t, newTaskRouter(svc, owner), http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestTaskEndpointsForeignTask(t *testing.T) {
	svc, _ := newService()
	rr := do(t, newTaskRouter(svc, owner), http.MethodPost, "/tasks", `{"title":"Mine"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created tasks.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	intruder := newTaskRouter(svc, stranger)

	rr = do(t, intruder, http.MethodPut, "/tasks/"+created.ID, `{"title":"Stolen"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Not authorized to update this task"}`, rr.Body.String())

	rr = do(t, intruder, http.MethodDelete, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Not authorized to delete this task"}`, rr.Body.String())
}

func TestTaskEndpointsBadInput(t *testing.T) {
	svc, _ := newService()
	router := newTaskRouter(svc, owner)

	rr := do(t, router, http.MethodPost, "/tasks", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "title is required")

	rr = do(t, router, http.MethodPost, "/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPut, "/tasks/"+uuid.NewString(), `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTaskEndpointsRequirePrincipal(t *testing.T) {
	svc, _ := newService()

	rr := do(t, newTaskRouter(svc, ""), http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
