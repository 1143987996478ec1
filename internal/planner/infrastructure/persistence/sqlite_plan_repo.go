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

// SQLitePlanRepository implements domain.PlanRepository using SQLite.
// Sessions are stored delete-and-reinsert under their plan row; a plan's
// session list is small and changes wholesale on every engine pass.
type SQLitePlanRepository struct {
	db *sql.DB
}

// NewSQLitePlanRepository creates a new SQLite plan repository.
func NewSQLitePlanRepository(db *sql.DB) *SQLitePlanRepository {
	return &SQLitePlanRepository{db: db}
}

func (r *SQLitePlanRepository) exec(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.Executor(ctx, r.db)
}

// Save upserts a plan row and rewrites its sessions.
func (r *SQLitePlanRepository) Save(ctx context.Context, plan *domain.StudyPlan) error {
	exec := r.exec(ctx)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO study_plans (id, plan_date, available_hours, is_locked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(plan_date) DO UPDATE SET
			available_hours = excluded.available_hours,
			is_locked = excluded.is_locked,
			updated_at = excluded.updated_at`,
		plan.ID().String(),
		plan.Date(),
		plan.AvailableHours(),
		boolToInt(plan.IsLocked()),
		plan.CreatedAt().Format(time.RFC3339),
		plan.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	// The conflict target is plan_date, so resolve the surviving row id.
	var planID string
	if err := exec.QueryRowContext(ctx,
		`SELECT id FROM study_plans WHERE plan_date = ?`, plan.Date(),
	).Scan(&planID); err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM sessions WHERE plan_id = ?`, planID); err != nil {
		return err
	}
	for _, s := range plan.Sessions() {
		var rescheduledAt any
		if at := s.RescheduledAt(); at != nil {
			rescheduledAt = at.Format(time.RFC3339)
		}
		_, err := exec.ExecContext(ctx, `
			INSERT INTO sessions (id, plan_id, task_id, session_number, start_time, end_time,
				allocated_hours, status, done, original_date, original_time, rescheduled_at,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID().String(),
			planID,
			s.TaskID().String(),
			s.SessionNumber(),
			s.StartTime(),
			s.EndTime(),
			s.AllocatedHours(),
			s.Status().String(),
			boolToInt(s.IsDone()),
			s.OriginalDate(),
			s.OriginalTime(),
			rescheduledAt,
			s.CreatedAt().Format(time.RFC3339),
			s.UpdatedAt().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveSet persists every plan in the set.
func (r *SQLitePlanRepository) SaveSet(ctx context.Context, plans domain.PlanSet) error {
	for _, date := range plans.Dates() {
		if err := r.Save(ctx, plans[date]); err != nil {
			return err
		}
	}
	return nil
}

// FindByDate retrieves the plan for one date, nil when absent.
func (r *SQLitePlanRepository) FindByDate(ctx context.Context, date string) (*domain.StudyPlan, error) {
	row := r.exec(ctx).QueryRowContext(ctx, `
		SELECT id, plan_date, available_hours, is_locked, created_at, updated_at
		FROM study_plans WHERE plan_date = ?`, date)

	plan, err := r.scanPlan(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return plan, err
}

// FindAll retrieves every stored plan keyed by date.
func (r *SQLitePlanRepository) FindAll(ctx context.Context) (domain.PlanSet, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, `
		SELECT id, plan_date, available_hours, is_locked, created_at, updated_at
		FROM study_plans ORDER BY plan_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := domain.NewPlanSet()
	for rows.Next() {
		plan, err := r.scanPlan(ctx, rows)
		if err != nil {
			return nil, err
		}
		plans[plan.Date()] = plan
	}
	return plans, rows.Err()
}

// Delete removes a plan and, via cascade, its sessions.
func (r *SQLitePlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).ExecContext(ctx, `DELETE FROM study_plans WHERE id = ?`, id.String())
	return err
}

func (r *SQLitePlanRepository) scanPlan(ctx context.Context, row rowScanner) (*domain.StudyPlan, error) {
	var (
		id, date, createdAt, updatedAt string
		availableHours                 float64
		isLocked                       int
	)
	if err := row.Scan(&id, &date, &availableHours, &isLocked, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	planID, err := uuid.Parse(id)
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

	sessions, err := r.loadSessions(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateStudyPlan(planID, date, sessions, availableHours, isLocked != 0, created, updated), nil
}

func (r *SQLitePlanRepository) loadSessions(ctx context.Context, planID string) ([]*domain.Session, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, `
		SELECT id, task_id, session_number, start_time, end_time, allocated_hours,
			status, done, original_date, original_time, rescheduled_at, created_at, updated_at
		FROM sessions WHERE plan_id = ? ORDER BY start_time, session_number`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		var (
			id, taskID, startTime, endTime, status     string
			originalDate, originalTime                 string
			createdAt, updatedAt                       string
			rescheduledAt                              sql.NullString
			sessionNumber, done                        int
			allocatedHours                             float64
		)
		if err := rows.Scan(&id, &taskID, &sessionNumber, &startTime, &endTime, &allocatedHours,
			&status, &done, &originalDate, &originalTime, &rescheduledAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		sessionID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		task, err := uuid.Parse(taskID)
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
		var rescheduled *time.Time
		if rescheduledAt.Valid {
			at, err := time.Parse(time.RFC3339, rescheduledAt.String)
			if err != nil {
				return nil, err
			}
			rescheduled = &at
		}

		sessions = append(sessions, domain.RehydrateSession(
			sessionID,
			task,
			sessionNumber,
			startTime,
			endTime,
			allocatedHours,
			domain.ParseSessionStatus(status),
			done != 0,
			originalDate,
			originalTime,
			rescheduled,
			created,
			updated,
		))
	}
	return sessions, rows.Err()
}
