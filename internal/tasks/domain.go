package tasks

import "time"

// Priority ranks a task. The zero value is replaced by PriorityMedium on create.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status tracks completion. The zero value is replaced by StatusPending on create.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"userId"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	DeadlineDate string    `json:"deadlineDate" validate:"omitempty,datetime=2006-01-02"`
	DeadlineTime string    `json:"deadlineTime" validate:"omitempty,clock"`
	Priority     Priority  `json:"priority" validate:"oneof=low medium high"`
	Important    bool      `json:"important"`
	Status       Status    `json:"status" validate:"oneof=pending completed"`
	Emoji        string    `json:"emoji" validate:"max=16"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /tasks. Any owner sent by the client
// is dropped during decoding.
type CreateTaskRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DeadlineDate string   `json:"deadlineDate"`
	DeadlineTime string   `json:"deadlineTime"`
	Priority     Priority `json:"priority"`
	Important    bool     `json:"important"`
	Status       Status   `json:"status"`
	Emoji        string   `json:"emoji"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	DeadlineDate *string   `json:"deadlineDate,omitempty"`
	DeadlineTime *string   `json:"deadlineTime,omitempty"`
	Priority     *Priority `json:"priority,omitempty"`
	Important    *bool     `json:"important,omitempty"`
	Status       *Status   `json:"status,omitempty"`
	Emoji        *string   `json:"emoji,omitempty"`
}

// Filter narrows a per-owner count. Zero fields match everything.
type Filter struct {
	Status    Status
	Important *bool
}

// Matches reports whether t satisfies the filter.
func (f Filter) Matches(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Important != nil && t.Important != *f.Important {
		return false
	}
	return true
}
