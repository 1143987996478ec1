package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
)

// SQLiteSettingsRepository implements domain.SettingsRepository using SQLite.
// Preferences live in a single row; Load falls back to the defaults when the
// user has never saved any.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository creates a new SQLite settings repository.
func NewSQLiteSettingsRepository(db *sql.DB) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{db: db}
}

func (r *SQLiteSettingsRepository) exec(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.Executor(ctx, r.db)
}

// Save writes the settings row.
func (r *SQLiteSettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	days := make([]int, 0, len(settings.WorkDays))
	for _, d := range settings.WorkDays {
		days = append(days, int(d))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}

	_, err = r.exec(ctx).ExecContext(ctx, `
		INSERT INTO settings (id, work_days, daily_available_hours, buffer_days,
			window_start_hour, window_end_hour, min_session_minutes, plan_mode, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			work_days = excluded.work_days,
			daily_available_hours = excluded.daily_available_hours,
			buffer_days = excluded.buffer_days,
			window_start_hour = excluded.window_start_hour,
			window_end_hour = excluded.window_end_hour,
			min_session_minutes = excluded.min_session_minutes,
			plan_mode = excluded.plan_mode,
			updated_at = excluded.updated_at`,
		string(daysJSON),
		settings.DailyAvailableHours,
		settings.BufferDays,
		settings.StudyWindowStartHour,
		settings.StudyWindowEndHour,
		settings.MinSessionMinutes,
		settings.PlanMode.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Load reads the settings row, defaulting when none exists.
func (r *SQLiteSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	var (
		daysJSON, planMode, updatedAt             string
		dailyAvailableHours                       float64
		bufferDays, startHour, endHour, minutes   int
	)
	err := r.exec(ctx).QueryRowContext(ctx, `
		SELECT work_days, daily_available_hours, buffer_days, window_start_hour,
			window_end_hour, min_session_minutes, plan_mode, updated_at
		FROM settings WHERE id = 1`,
	).Scan(&daysJSON, &dailyAvailableHours, &bufferDays, &startHour, &endHour, &minutes, &planMode, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}

	var dayInts []int
	if err := json.Unmarshal([]byte(daysJSON), &dayInts); err != nil {
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
