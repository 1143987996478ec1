package persistence

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRedistributionLogRepository implements
// domain.RedistributionLogRepository using PostgreSQL.
type PostgresRedistributionLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRedistributionLogRepository creates a new Postgres redistribution log repository.
func NewPostgresRedistributionLogRepository(pool *pgxpool.Pool) *PostgresRedistributionLogRepository {
	return &PostgresRedistributionLogRepository{pool: pool}
}

func (r *PostgresRedistributionLogRepository) exec(ctx context.Context) sharedPersistence.PgExecutor {
	return sharedPersistence.PgxExecutor(ctx, r.pool)
}

// Create appends one redistribution record.
func (r *PostgresRedistributionLogRepository) Create(ctx context.Context, record domain.RedistributionRecord) error {
	_, err := r.exec(ctx).Exec(ctx, `
		INSERT INTO redistribution_log (id, task_id, session_number, trigger_type,
			attempted_at, from_date, from_time, to_date, to_time, hours, success, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		record.ID, record.TaskID, record.SessionNumber, string(record.Trigger),
		record.AttemptedAt.UTC(), record.FromDate, record.FromTime,
		record.ToDate, record.ToTime, record.Hours, record.Success, record.FailureReason,
	)
	return err
}

// ListByDateRange returns records whose origin date falls in [from, to],
// ordered by origin date then attempt time.
func (r *PostgresRedistributionLogRepository) ListByDateRange(ctx context.Context, from, to string) ([]domain.RedistributionRecord, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT id, task_id, session_number, trigger_type, attempted_at,
			from_date, from_time, to_date, to_time, hours, success, failure_reason
		FROM redistribution_log
		WHERE from_date >= $1 AND from_date <= $2
		ORDER BY from_date, attempted_at, id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.RedistributionRecord, 0)
	for rows.Next() {
		var (
			record  domain.RedistributionRecord
			trigger string
		)
		if err := rows.Scan(&record.ID, &record.TaskID, &record.SessionNumber, &trigger,
			&record.AttemptedAt, &record.FromDate, &record.FromTime, &record.ToDate,
			&record.ToTime, &record.Hours, &record.Success, &record.FailureReason); err != nil {
			return nil, err
		}
		record.Trigger = domain.RedistributionTrigger(trigger)
		records = append(records, record)
	}
	return records, rows.Err()
}
