package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new Postgres task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

func (r *PostgresTaskRepository) exec(ctx context.Context) sharedPersistence.PgExecutor {
	return sharedPersistence.PgxExecutor(ctx, r.pool)
}

// Save upserts a task.
func (r *PostgresTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO tasks (id, title, estimated_hours, deadline, important, status,
			frequency, min_block_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			estimated_hours = EXCLUDED.estimated_hours,
			deadline = EXCLUDED.deadline,
			important = EXCLUDED.important,
			status = EXCLUDED.status,
			frequency = EXCLUDED.frequency,
			min_block_minutes = EXCLUDED.min_block_minutes,
			updated_at = EXCLUDED.updated_at`,
		task.ID(),
		task.Title(),
		task.EstimatedHours(),
		task.Deadline(),
		task.IsImportant(),
		task.Status().String(),
		task.Frequency().String(),
		task.MinBlockMinutes(),
		task.CreatedAt(),
		task.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a task by its identifier.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.exec(ctx).QueryRow(ctx, `
		SELECT id, title, estimated_hours, deadline, important, status,
			frequency, min_block_minutes, created_at, updated_at
		FROM tasks WHERE id = $1`, id)

	task, err := scanPgTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// FindAll retrieves every task ordered by deadline.
func (r *PostgresTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.findWhere(ctx, "")
}

// FindPending retrieves tasks still awaiting work.
func (r *PostgresTaskRepository) FindPending(ctx context.Context) ([]*domain.Task, error) {
	return r.findWhere(ctx, "WHERE status = 'pending'")
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *PostgresTaskRepository) findWhere(ctx context.Context, where string) ([]*domain.Task, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT id, title, estimated_hours, deadline, important, status,
			frequency, min_block_minutes, created_at, updated_at
		FROM tasks `+where+` ORDER BY deadline, title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanPgTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanPgTask(row pgx.Row) (*domain.Task, error) {
	var (
		id                               uuid.UUID
		title, deadline, status, freq    string
		estimatedHours                   float64
		important                        bool
		minBlockMinutes                  int
		createdAt, updatedAt             time.Time
	)
	if err := row.Scan(&id, &title, &estimatedHours, &deadline, &important,
		&status, &freq, &minBlockMinutes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateTask(
		id, title, estimatedHours, deadline, important,
		domain.ParseTaskStatus(status), domain.ParseFrequency(freq),
		minBlockMinutes, createdAt, updatedAt,
	), nil
}
