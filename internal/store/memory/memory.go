// Package memory keeps users and tasks in process memory. It backs
// STORE_DRIVER=memory for local runs and the end-to-end router tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/shared"
	"github.com/taskboard/taskboard/internal/tasks"
)

// UserStore implements auth.Repository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]auth.User
}

// NewUserStore constructs an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]auth.User)}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *UserStore) FindByEmailOrUsername(_ context.Context, email, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Create enforces the same uniqueness as the users table constraints.
func (s *UserStore) Create(_ context.Context, user auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, shared.ErrConflict
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return &user, nil
}

// TaskStore implements tasks.Repository.
type TaskStore struct {
	mu    sync.RWMutex
	seq   int64
	tasks map[string]entry
}

type entry struct {
	task tasks.Task
	seq  int64
}

// NewTaskStore constructs an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]entry)}
}

func (s *TaskStore) Create(_ context.Context, task tasks.Task) (*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.seq++
	s.tasks[task.ID] = entry{task: task, seq: s.seq}
	return &task, nil
}

func (s *TaskStore) Get(_ context.Context, id string) (*tasks.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.tasks[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	task := e.task
	return &task, nil
}

// ListByOwner orders by creation time, newest first; insertion order breaks ties.
func (s *TaskStore) ListByOwner(_ context.Context, ownerID string) ([]tasks.Task, error) {
	s.mu.RLock()
	entries := make([]entry, 0)
	for _, e := range s.tasks {
		if e.task.OwnerID == ownerID {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})
	result := make([]tasks.Task, len(entries))
	for i, e := range entries {
		result[i] = e.task
	}
	return result, nil
}

func (s *TaskStore) Update(_ context.Context, task tasks.Task) (*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tasks[task.ID]
	if !ok || e.task.OwnerID != task.OwnerID {
		return nil, shared.ErrNotFound
	}
	task.CreatedAt = e.task.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	e.task = task
	s.tasks[task.ID] = e
	return &task, nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *TaskStore) Count(_ context.Context, ownerID string, filter tasks.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.tasks {
		if e.task.OwnerID == ownerID && filter.Matches(e.task) {
			n++
		}
	}
	return n, nil
}

var (
	_ auth.Repository  = (*UserStore)(nil)
	_ tasks.Repository = (*TaskStore)(nil)
)
