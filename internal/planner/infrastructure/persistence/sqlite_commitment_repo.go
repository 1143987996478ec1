package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// ErrCommitmentNotFound is returned when a commitment cannot be located.
var ErrCommitmentNotFound = errors.New("commitment not found")

// SQLiteCommitmentRepository implements domain.CommitmentRepository using SQLite.
// Weekday sets, date lists and per-date occurrence edits are stored as JSON text.
type SQLiteCommitmentRepository struct {
	db *sql.DB
}

// NewSQLiteCommitmentRepository creates a new SQLite commitment repository.
func NewSQLiteCommitmentRepository(db *sql.DB) *SQLiteCommitmentRepository {
	return &SQLiteCommitmentRepository{db: db}
}

func (r *SQLiteCommitmentRepository) exec(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.Executor(ctx, r.db)
}

// Save upserts a commitment.
func (r *SQLiteCommitmentRepository) Save(ctx context.Context, c *domain.FixedCommitment) error {
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

	_, err = r.exec(ctx).ExecContext(ctx, `
		INSERT INTO fixed_commitments (id, title, start_time, end_time, recurring,
			days_of_week, specific_dates, modified_occurrences, deleted_occurrences,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			recurring = excluded.recurring,
			days_of_week = excluded.days_of_week,
			specific_dates = excluded.specific_dates,
			modified_occurrences = excluded.modified_occurrences,
			deleted_occurrences = excluded.deleted_occurrences,
			updated_at = excluded.updated_at`,
		c.ID().String(),
		c.Title(),
		c.StartTime(),
		c.EndTime(),
		boolToInt(c.IsRecurring()),
		string(daysJSON),
		string(datesJSON),
		string(modifiedJSON),
		string(deletedJSON),
		c.CreatedAt().Format(time.RFC3339),
		c.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a commitment by its identifier.
func (r *SQLiteCommitmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FixedCommitment, error) {
	row := r.exec(ctx).QueryRowContext(ctx, `
		SELECT id, title, start_time, end_time, recurring, days_of_week,
			specific_dates, modified_occurrences, deleted_occurrences, created_at, updated_at
		FROM fixed_commitments WHERE id = ?`, id.String())

	c, err := scanCommitment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommitmentNotFound
	}
	return c, err
}

// FindAll retrieves every commitment ordered by title.
func (r *SQLiteCommitmentRepository) FindAll(ctx context.Context) ([]*domain.FixedCommitment, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, `
		SELECT id, title, start_time, end_time, recurring, days_of_week,
			specific_dates, modified_occurrences, deleted_occurrences, created_at, updated_at
		FROM fixed_commitments ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]*domain.FixedCommitment, 0)
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

// Delete removes a commitment.
func (r *SQLiteCommitmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.exec(ctx).ExecContext(ctx, `DELETE FROM fixed_commitments WHERE id = ?`, id.String())
	return err
}

func scanCommitment(row rowScanner) (*domain.FixedCommitment, error) {
	var (
		id, title, startTime, endTime                        string
		daysJSON, datesJSON, modifiedJSON, deletedJSON       string
		createdAt, updatedAt                                 string
		isRecurring                                          int
	)
	if err := row.Scan(&id, &title, &startTime, &endTime, &isRecurring,
		&daysJSON, &datesJSON, &modifiedJSON, &deletedJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	commitmentID, err := uuid.Parse(id)
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

	var dayInts []int
	if err := json.Unmarshal([]byte(daysJSON), &dayInts); err != nil {
		return nil, err
	}
	days := make([]time.Weekday, 0, len(dayInts))
	for _, d := range dayInts {
		days = append(days, time.Weekday(d))
	}
	var dates []string
	if err := json.Unmarshal([]byte(datesJSON), &dates); err != nil {
		return nil, err
	}
	var modified map[string]domain.Occurrence
	if err := json.Unmarshal([]byte(modifiedJSON), &modified); err != nil {
		return nil, err
	}
	var deleted map[string]bool
	if err := json.Unmarshal([]byte(deletedJSON), &deleted); err != nil {
		return nil, err
	}

	return domain.RehydrateFixedCommitment(
		commitmentID, title, startTime, endTime, isRecurring != 0,
		days, dates, modified, deleted, created, updated,
	), nil
}
