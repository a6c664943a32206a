package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskboard/taskboard/internal/shared"
)

// Service performs ownership-checked CRUD on tasks.
type Service struct {
	repo      Repository
	validator *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validator: newValidator()}
}

// Create stores a new task owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateTaskRequest) (*Task, error) {
	task := newTask(ownerID, req)
	if err := s.validate(task); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// ListByOwner returns the owner's tasks, most recent first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if list == nil {
		list = []Task{}
	}
	return list, nil
}

// Update merges req into the task after checking that ownerID owns it.
// A missing task yields shared.ErrNotFound, someone else's task
// shared.ErrForbidden; neither case writes anything.
func (s *Service) Update(ctx context.Context, ownerID, taskID string, req UpdateTaskRequest) (*Task, error) {
	task, err := s.owned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	req.apply(task)
	if err := s.validate(*task); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, *task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Delete removes the task after the same checks as Update.
func (s *Service) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.owned(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// owned reads the task and compares owners instead of filtering on both, so
// callers can tell a missing task (404) from a foreign one (403).
func (s *Service) owned(ctx context.Context, ownerID, taskID string) (*Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, shared.ErrNotFound
	}
	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}
	return task, nil
}
