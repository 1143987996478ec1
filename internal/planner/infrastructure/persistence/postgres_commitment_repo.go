package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommitmentRepository implements domain.CommitmentRepository using
// PostgreSQL. The JSONB columns carry the same shapes as the SQLite backend.
type PostgresCommitmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommitmentRepository creates a new Postgres commitment repository.
func NewPostgresCommitmentRepository(pool *pgxpool.Pool) *PostgresCommitmentRepository {
	return &PostgresCommitmentRepository{pool: pool}
}

func (r *PostgresCommitmentRepository) exec(ctx context.Context) sharedPersistence.PgExecutor {
	return sharedPersistence.PgxExecutor(ctx, r.pool)
}

// Save upserts a commitment.
func (r *PostgresCommitmentRepository) Save(ctx context.Context, c *domain.FixedCommitment) error {
	days := make([]int, 0, len(c.DaysOfWeek()))
	for _, d := range c.DaysOfWeek() {
		days = append(days, int(d))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}
	datesJSON, err := json.Marshal(c.SpecificDates())
	if err != nil {
		return err
	}
	modifiedJSON, err := json.Marshal(c.ModifiedOccurrences())
	if err != nil {
		return err
	}
	deletedJSON, err := json.Marshal(c.DeletedOccurrences())
	if err != nil {
		return err
	}

	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO fixed_commitments (id, title, start_time, end_time, recurring,
			days_of_week, specific_dates, modified_occurrences, deleted_occurrences,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			recurring = EXCLUDED.recurring,
			days_of_week = EXCLUDED.days_of_week,
			specific_dates = EXCLUDED.specific_dates,
			modified_occurrences = EXCLUDED.modified_occurrences,
			deleted_occurrences = EXCLUDED.deleted_occurrences,
			updated_at = EXCLUDED.updated_at`,
		c.ID(), c.Title(), c.StartTime(), c.EndTime(), c.IsRecurring(),
		daysJSON, datesJSON, modifiedJSON, deletedJSON,
		c.CreatedAt(), c.UpdatedAt(),
	)
	return err
}

// FindAll retrieves every commitment ordered by title.
func (r *PostgresCommitmentRepository) FindAll(ctx context.Context) ([]*domain.FixedCommitment, error) {
	rows, err := r.exec(ctx).Query(ctx, `
		SELECT id, title, start_time, end_time, recurring, days_of_week,
			specific_dates, modified_occurrences, deleted_occurrences, created_at, updated_at
		FROM fixed_commitments ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]*domain.FixedCommitment, 0)
	for rows.Next() {
		c, err := scanPgCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

// Delete removes a commitment.
func (r *PostgresCommitmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).Exec(ctx, `DELETE FROM fixed_commitments WHERE id = $1`, id)
	return err
}

func scanPgCommitment(row pgx.Row) (*domain.FixedCommitment, error) {
	var (
		id                                             uuid.UUID
		title, startTime, endTime                      string
		recurring                                      bool
		daysJSON, datesJSON, modifiedJSON, deletedJSON []byte
		createdAt, updatedAt                           time.Time
	)
	if err := row.Scan(&id, &title, &startTime, &endTime, &recurring,
		&daysJSON, &datesJSON, &modifiedJSON, &deletedJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var dayInts []int
	if err := json.Unmarshal(daysJSON, &dayInts); err != nil {
		return nil, err
	}
	days := make([]time.Weekday, 0, len(dayInts))
	for _, d := range dayInts {
		days = append(days, time.Weekday(d))
	}
	var dates []string
	if err := json.Unmarshal(datesJSON, &dates); err != nil {
		return nil, err
	}
	var modified map[string]domain.Occurrence
	if err := json.Unmarshal(modifiedJSON, &modified); err != nil {
		return nil, err
	}
	var deleted map[string]bool
	if err := json.Unmarshal(deletedJSON, &deleted); err != nil {
		return nil, err
	}

	return domain.RehydrateFixedCommitment(
		id, title, startTime, endTime, recurring,
		days, dates, modified, deleted, createdAt, updatedAt,
	), nil
}
