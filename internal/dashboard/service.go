package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/taskboard/taskboard/internal/tasks"
)

// Counter counts an owner's tasks matching a filter. tasks.Repository
// implementations satisfy it.
type Counter interface {
	Count(ctx context.Context, ownerID string, filter tasks.Filter) (int, error)
}

// Summary is the dashboard payload.
type Summary struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
	ImportantTasks int `json:"importantTasks"`
}

// Service aggregates per-owner task counts.
type Service struct {
	counter Counter
}

// NewService constructs a Service.
func NewService(counter Counter) *Service {
	return &Service{counter: counter}
}

// Summarize runs the four counts concurrently. They are independent: an
// important completed task is counted in both ImportantTasks and
// CompletedTasks.
func (s *Service) Summarize(ctx context.Context, ownerID string) (Summary, error) {
	important := true
	var summary Summary
	queries := []struct {
		filter tasks.Filter
		dest   *int
	}{
		{tasks.Filter{}, &summary.TotalTasks},
		{tasks.Filter{Status: tasks.StatusCompleted}, &summary.CompletedTasks},
		{tasks.Filter{Status: tasks.StatusPending}, &summary.PendingTasks},
		{tasks.Filter{Important: &important}, &summary.ImportantTasks},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			n, err := s.counter.Count(gctx, ownerID, q.filter)
			if err != nil {
				return err
			}
			*q.dest = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("summarize tasks: %w", err)
	}
	return summary, nil
}
