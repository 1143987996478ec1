package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// ErrTaskNotFound means no task row matched the given id.
var ErrTaskNotFound = errors.New("task not found")

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) exec(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.Executor(ctx, r.db)
}

// Save inserts or updates a task.
func (r *SQLiteTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	_, err := r.exec(ctx).ExecContext(ctx, `
		INSERT INTO tasks (id, title, estimated_hours, deadline, important, status, frequency, min_block_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			estimated_hours = excluded.estimated_hours,
			deadline = excluded.deadline,
			important = excluded.important,
			status = excluded.status,
			frequency = excluded.frequency,
			min_block_minutes = excluded.min_block_minutes,
			updated_at = excluded.updated_at`,
		task.ID().String(),
		task.Title(),
		task.EstimatedHours(),
		task.Deadline(),
		boolToInt(task.IsImportant()),
		task.Status().String(),
		task.Frequency().String(),
		task.MinBlockMinutes(),
		task.CreatedAt().Format(time.RFC3339),
		task.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a task by id.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.exec(ctx).QueryRowContext(ctx, `
		SELECT id, title, estimated_hours, deadline, important, status, frequency, min_block_minutes, created_at, updated_at
		FROM tasks WHERE id = ?`, id.String())

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// FindAll retrieves every task, ordered by deadline then title.
func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.findWhere(ctx, "")
}

// FindPending retrieves tasks still awaiting work.
func (r *SQLiteTaskRepository) FindPending(ctx context.Context) ([]*domain.Task, error) {
	return r.findWhere(ctx, "WHERE status = 'pending'")
}

func (r *SQLiteTaskRepository) findWhere(ctx context.Context, where string) ([]*domain.Task, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, `
		SELECT id, title, estimated_hours, deadline, important, status, frequency, min_block_minutes, created_at, updated_at
		FROM tasks `+where+` ORDER BY deadline, title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Delete removes a task.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id, title, deadline, status, frequency string
		createdAt, updatedAt                   string
		estimatedHours                         float64
		important, minBlockMinutes             int
	)
	if err := row.Scan(&id, &title, &estimatedHours, &deadline, &important, &status, &frequency, &minBlockMinutes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTask(
		taskID,
		title,
		estimatedHours,
		deadline,
		important != 0,
		domain.ParseTaskStatus(status),
		domain.ParseFrequency(frequency),
		minBlockMinutes,
		created,
		updated,
	), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
