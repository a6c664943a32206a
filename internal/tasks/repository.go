package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/taskboard/internal/platform/db"
	"github.com/taskboard/taskboard/internal/shared"
)

// Repository persists tasks. Implementations return shared.ErrNotFound for
// missing records.
type Repository interface {
	Create(ctx context.Context, task Task) (*Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	Update(ctx context.Context, task Task) (*Task, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, ownerID string, filter Filter) (int, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const taskColumns = `id::text, user_id::text, title, description, deadline_date, deadline_time, priority, important, status, emoji, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, task Task) (*Task, error) {
	now := db.Now()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, user_id, title, description, deadline_date, deadline_time, priority, important, status, emoji, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		task.ID, task.OwnerID, task.Title, task.Description, task.DeadlineDate, task.DeadlineTime,
		string(task.Priority), task.Important, string(task.Status), task.Emoji, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &task, nil
}

func (r *PGRepository) Get(ctx context.Context, id string) (*Task, error) {
	task, err := scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// ListByOwner returns the owner's tasks, newest first.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := []Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

// Update overwrites every mutable column. The owner takes part in the match
// only, so it can never be rewritten here.
func (r *PGRepository) Update(ctx context.Context, task Task) (*Task, error) {
	task.UpdatedAt = db.Now()
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, deadline_date = $5, deadline_time = $6,
		    priority = $7, important = $8, status = $9, emoji = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2`,
		task.ID, task.OwnerID, task.Title, task.Description, task.DeadlineDate, task.DeadlineTime,
		string(task.Priority), task.Important, string(task.Status), task.Emoji, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if err := db.RequireAffected(tag, shared.ErrNotFound); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return db.RequireAffected(tag, shared.ErrNotFound)
}

func (r *PGRepository) Count(ctx context.Context, ownerID string, filter Filter) (int, error) {
	query, args := countQuery(ownerID, filter)
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return total, nil
}

// countQuery builds the owner-scoped COUNT with one placeholder per set
// filter field.
func countQuery(ownerID string, filter Filter) (string, []any) {
	query := `SELECT COUNT(*) FROM tasks WHERE user_id = $1`
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Important != nil {
		args = append(args, *filter.Important)
		query += ` AND important = $` + strconv.Itoa(len(args))
	}
	return query, args
}

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	var priority, status string
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.DeadlineDate, &t.DeadlineTime,
		&priority, &t.Important, &status, &t.Emoji, &t.CreatedAt, &t.UpdatedAt)
	t.Priority = Priority(priority)
	t.Status = Status(status)
	return t, err
}

var _ Repository = (*PGRepository)(nil)
