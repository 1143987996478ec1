package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteRedistributionLogRepository implements domain.RedistributionLogRepository
// using SQLite. Records are append-only.
type SQLiteRedistributionLogRepository struct {
	db *sql.DB
}

// NewSQLiteRedistributionLogRepository creates a new SQLite redistribution log repository.
func NewSQLiteRedistributionLogRepository(db *sql.DB) *SQLiteRedistributionLogRepository {
	return &SQLiteRedistributionLogRepository{db: db}
}

func (r *SQLiteRedistributionLogRepository) exec(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.Executor(ctx, r.db)
}

// Create appends one redistribution record.
func (r *SQLiteRedistributionLogRepository) Create(ctx context.Context, record domain.RedistributionRecord) error {
	_, err := r.exec(ctx).ExecContext(ctx, `
		INSERT INTO redistribution_log (id, task_id, session_number, trigger_type,
			attempted_at, from_date, from_time, to_date, to_time, hours, success, failure_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.TaskID.String(),
		record.SessionNumber,
		string(record.Trigger),
		record.AttemptedAt.UTC().Format(time.RFC3339),
		record.FromDate,
		record.FromTime,
		record.ToDate,
		record.ToTime,
		record.Hours,
		boolToInt(record.Success),
		record.FailureReason,
	)
	return err
}

// ListByDateRange returns records whose origin date falls in [from, to],
// ordered by origin date then attempt time.
func (r *SQLiteRedistributionLogRepository) ListByDateRange(ctx context.Context, from, to string) ([]domain.RedistributionRecord, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, `
		SELECT id, task_id, session_number, trigger_type, attempted_at,
			from_date, from_time, to_date, to_time, hours, success, failure_reason
		FROM redistribution_log
		WHERE from_date >= ? AND from_date <= ?
		ORDER BY from_date, attempted_at, id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.RedistributionRecord, 0)
	for rows.Next() {
		var (
			id, taskID, trigger, attemptedAt string
			record                           domain.RedistributionRecord
			success                          int
		)
		if err := rows.Scan(&id, &taskID, &record.SessionNumber, &trigger, &attemptedAt,
			&record.FromDate, &record.FromTime, &record.ToDate, &record.ToTime,
			&record.Hours, &success, &record.FailureReason); err != nil {
			return nil, err
		}
		record.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		record.TaskID, err = uuid.Parse(taskID)
		if err != nil {
			return nil, err
		}
		record.AttemptedAt, err = time.Parse(time.RFC3339, attemptedAt)
		if err != nil {
			return nil, err
		}
		record.Trigger = domain.RedistributionTrigger(trigger)
		record.Success = success != 0
		records = append(records, record)
	}
	return records, rows.Err()
}
