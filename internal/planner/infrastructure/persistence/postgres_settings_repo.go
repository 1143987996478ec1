package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSettingsRepository implements domain.SettingsRepository using PostgreSQL.
type PostgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSettingsRepository creates a new Postgres settings repository.
func NewPostgresSettingsRepository(pool *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{pool: pool}
}

func (r *PostgresSettingsRepository) exec(ctx context.Context) sharedPersistence.PgExecutor {
	return sharedPersistence.PgxExecutor(ctx, r.pool)
}

// Save writes the settings row.
func (r *PostgresSettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	days := make([]int, 0, len(settings.WorkDays))
	for _, d := range settings.WorkDays {
		days = append(days, int(d))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}

	_, err = r.exec(ctx).Exec(ctx, `
		INSERT INTO settings (id, work_days, daily_available_hours, buffer_days,
			window_start_hour, window_end_hour, min_session_minutes, plan_mode, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			work_days = EXCLUDED.work_days,
			daily_available_hours = EXCLUDED.daily_available_hours,
			buffer_days = EXCLUDED.buffer_days,
			window_start_hour = EXCLUDED.window_start_hour,
			window_end_hour = EXCLUDED.window_end_hour,
			min_session_minutes = EXCLUDED.min_session_minutes,
			plan_mode = EXCLUDED.plan_mode,
			updated_at = EXCLUDED.updated_at`,
		daysJSON,
		settings.DailyAvailableHours,
		settings.BufferDays,
		settings.StudyWindowStartHour,
		settings.StudyWindowEndHour,
		settings.MinSessionMinutes,
		settings.PlanMode.String(),
		time.Now().UTC(),
	)
	return err
}

// Load reads the settings row, defaulting when none exists.
func (r *PostgresSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	var (
		daysJSON                                []byte
		planMode                                string
		dailyAvailableHours                     float64
		bufferDays, startHour, endHour, minutes int
		updatedAt                               time.Time
	)
	err := r.exec(ctx).QueryRow(ctx, `
		SELECT work_days, daily_available_hours, buffer_days, window_start_hour,
			window_end_hour, min_session_minutes, plan_mode, updated_at
		FROM settings WHERE id = 1`,
	).Scan(&daysJSON, &dailyAvailableHours, &bufferDays, &startHour, &endHour, &minutes, &planMode, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}

	var dayInts []int
	if err := json.Unmarshal(daysJSON, &dayInts); err != nil {
		return domain.Settings{}, err
	}
	days := make([]time.Weekday, 0, len(dayInts))
	for _, d := range dayInts {
		days = append(days, time.Weekday(d))
	}

	return domain.Settings{
		WorkDays:             days,
		DailyAvailableHours:  dailyAvailableHours,
		BufferDays:           bufferDays,
		StudyWindowStartHour: startHour,
		StudyWindowEndHour:   endHour,
		MinSessionMinutes:    minutes,
		PlanMode:             domain.ParsePlanMode(planMode),
	}, nil
}
