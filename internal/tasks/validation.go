package tasks

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskboard/taskboard/internal/shared"
)

var clockLayouts = []string{"15:04", "15:04:05"}

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		for _, layout := range clockLayouts {
			if _, err := time.Parse(layout, fl.Field().String()); err == nil {
				return true
			}
		}
		return false
	})
	return v
}

func (s *Service) validate(t Task) error {
	if err := s.validator.Struct(t); err != nil {
		return shared.ValidationError(err)
	}
	return nil
}

// newTask applies the documented defaults to a create request.
func newTask(ownerID string, req CreateTaskRequest) Task {
	t := Task{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		DeadlineDate: strings.TrimSpace(req.DeadlineDate),
		DeadlineTime: strings.TrimSpace(req.DeadlineTime),
		Priority:     req.Priority,
		Important:    req.Important,
		Status:       req.Status,
		Emoji:        req.Emoji,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return t
}

// apply merges the non-nil fields of req into t. The owner is never touched.
func (req UpdateTaskRequest) apply(t *Task) {
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DeadlineDate != nil {
		t.DeadlineDate = strings.TrimSpace(*req.DeadlineDate)
	}
	if req.DeadlineTime != nil {
		t.DeadlineTime = strings.TrimSpace(*req.DeadlineTime)
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Important != nil {
		t.Important = *req.Important
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Emoji != nil {
		t.Emoji = *req.Emoji
	}
}
