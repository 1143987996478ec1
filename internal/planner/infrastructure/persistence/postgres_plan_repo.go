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

// PostgresPlanRepository implements domain.PlanRepository using PostgreSQL.
type PostgresPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanRepository creates a new Postgres plan repository.
func NewPostgresPlanRepository(pool *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{pool: pool}
}

func (r *PostgresPlanRepository) exec(ctx context.Context) sharedPersistence.PgExecutor {
	return sharedPersistence.PgxExecutor(ctx, r.pool)
}

// Save upserts a plan row and rewrites its sessions.
func (r *PostgresPlanRepository) Save(ctx context.Context, plan *domain.StudyPlan) error {
	exec := r.exec(ctx)

	_, err := exec.Exec(ctx, `
		INSERT INTO study_plans (id, plan_date, available_hours, is_locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plan_date) DO UPDATE SET
			available_hours = EXCLUDED.available_hours,
			is_locked = EXCLUDED.is_locked,
			updated_at = EXCLUDED.updated_at`,
		plan.ID(), plan.Date(), plan.AvailableHours(), plan.IsLocked(),
		plan.CreatedAt(), plan.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	var planID uuid.UUID
	if err := exec.QueryRow(ctx,
		`SELECT id FROM study_plans WHERE plan_date = $1`, plan.Date(),
	).Scan(&planID); err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM sessions WHERE plan_id = $1`, planID); err != nil {
		return err
	}
	for _, s := range plan.Sessions() {
		_, err := exec.Exec(ctx, `
			INSERT INTO sessions (id, plan_id, task_id, session_number, start_time, end_time,
				allocated_hours, status, done, original_date, original_time, rescheduled_at,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			s.ID(), planID, s.TaskID(), s.SessionNumber(), s.StartTime(), s.EndTime(),
			s.AllocatedHours(), s.Status().String(), s.IsDone(),
			s.OriginalDate(), s.OriginalTime(), s.RescheduledAt(),
			s.CreatedAt(), s.UpdatedAt(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveSet persists every plan in the set.
func (r *PostgresPlanRepository) SaveSet(ctx context.Context, plans domain.PlanSet) error {
	for _, date := range plans.Dates() {
		if err := r.Save(ctx, plans[date]); err != nil {
			return err
		}
	}
	return nil
}

// FindByDate retrieves the plan for one date, nil when absent.
func (r *PostgresPlanRepository) FindByDate(ctx context.Context, date string) (*domain.StudyPlan, error) {
	row := r.exec(ctx).QueryRow(ctx, `
		SELECT id, plan_date, available_hours, is_locked, created_at, updated_at
		FROM study_plans WHERE plan_date = $1`, date)

	plan, err := r.scanPlan(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return plan, err
}

// FindAll retrieves every stored plan keyed by date.
func (r *PostgresPlanRepository) FindAll(ctx context.Context) (domain.PlanSet, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT id, plan_date, available_hours, is_locked, created_at, updated_at
		FROM study_plans ORDER BY plan_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type planRow struct {
		id                   uuid.UUID
		date                 string
		availableHours       float64
		isLocked             bool
		createdAt, updatedAt time.Time
	}
	// Drain plan rows before issuing per-plan session queries; pgx allows
	// one open result set per connection.
	planRows := make([]planRow, 0)
	for rows.Next() {
		var pr planRow
		if err := rows.Scan(&pr.id, &pr.date, &pr.availableHours, &pr.isLocked, &pr.createdAt, &pr.updatedAt); err != nil {
			return nil, err
		}
		planRows = append(planRows, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plans := domain.NewPlanSet()
	for _, pr := range planRows {
		sessions, err := r.loadSessions(ctx, pr.id)
		if err != nil {
			return nil, err
		}
		plans[pr.date] = domain.RehydrateStudyPlan(pr.id, pr.date, sessions, pr.availableHours, pr.isLocked, pr.createdAt, pr.updatedAt)
	}
	return plans, nil
}

// Delete removes a plan and, via cascade, its sessions.
func (r *PostgresPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).Exec(ctx, `DELETE FROM study_plans WHERE id = $1`, id)
	return err
}

func (r *PostgresPlanRepository) scanPlan(ctx context.Context, row pgx.Row) (*domain.StudyPlan, error) {
	var (
		id                   uuid.UUID
		date                 string
		availableHours       float64
		isLocked             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &date, &availableHours, &isLocked, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sessions, err := r.loadSessions(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateStudyPlan(id, date, sessions, availableHours, isLocked, createdAt, updatedAt), nil
}

func (r *PostgresPlanRepository) loadSessions(ctx context.Context, planID uuid.UUID) ([]*domain.Session, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT id, task_id, session_number, start_time, end_time, allocated_hours,
			status, done, original_date, original_time, rescheduled_at, created_at, updated_at
		FROM sessions WHERE plan_id = $1 ORDER BY start_time, session_number`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		var (
			id, taskID                 uuid.UUID
			sessionNumber              int
			startTime, endTime, status string
			originalDate, originalTime string
			allocatedHours             float64
			done                       bool
			rescheduledAt              *time.Time
			createdAt, updatedAt       time.Time
		)
		if err := rows.Scan(&id, &taskID, &sessionNumber, &startTime, &endTime, &allocatedHours,
			&status, &done, &originalDate, &originalTime, &rescheduledAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, domain.RehydrateSession(
			id, taskID, sessionNumber, startTime, endTime, allocatedHours,
			domain.ParseSessionStatus(status), done, originalDate, originalTime,
			rescheduledAt, createdAt, updatedAt,
		))
	}
	return sessions, rows.Err()
}
