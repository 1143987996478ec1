package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, MigrateSQLite(context.Background(), db))
	return db
}

func TestSQLiteTaskRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	task, err := domain.NewTask("Read chapter 4", 6, "2025-03-08", true)
	require.NoError(t, err)
	task.SetFrequency(domain.FrequencyDaily)
	task.SetMinBlockMinutes(45)
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, task.ID(), loaded.ID())
	assert.Equal(t, "Read chapter 4", loaded.Title())
	assert.Equal(t, 6.0, loaded.EstimatedHours())
	assert.Equal(t, "2025-03-08", loaded.Deadline())
	assert.True(t, loaded.IsImportant())
	assert.Equal(t, domain.FrequencyDaily, loaded.Frequency())
	assert.Equal(t, 45, loaded.MinBlockMinutes())

	// Upsert on the same id updates in place.
	require.NoError(t, loaded.Complete())
	require.NoError(t, repo.Save(ctx, loaded))

	again, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, again.Status())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteTaskRepository_FindPending(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	open, err := domain.NewTask("Essay draft", 4, "2025-03-07", false)
	require.NoError(t, err)
	done, err := domain.NewTask("Lab report", 2, "2025-03-05", false)
	require.NoError(t, err)
	require.NoError(t, done.Complete())
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, done))

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID(), pending[0].ID())
}

func TestSQLiteTaskRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteTaskRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSQLitePlanRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLitePlanRepository(db)
	ctx := context.Background()

	taskID := uuid.New()
	plan := domain.NewStudyPlan("2025-03-04", 4)
	s1, err := domain.NewSession(taskID, 1, "09:00", "11:00", 2)
	require.NoError(t, err)
	s2, err := domain.NewSession(taskID, 2, "14:00", "15:00", 1)
	require.NoError(t, err)
	s2.MarkRescheduled("2025-03-03", "09:00", time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, plan.AddSession(s1))
	require.NoError(t, plan.AddSession(s2))
	plan.Lock()

	require.NoError(t, repo.Save(ctx, plan))

	loaded, err := repo.FindByDate(ctx, "2025-03-04")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsLocked())
	assert.InDelta(t, 3.0, loaded.TotalStudyHours(), 0.001)
	require.Len(t, loaded.Sessions(), 2)

	moved := loaded.Sessions()[1]
	assert.Equal(t, "2025-03-03", moved.OriginalDate())
	assert.Equal(t, "09:00", moved.OriginalTime())
	require.NotNil(t, moved.RescheduledAt())
	assert.Equal(t, domain.SessionRescheduled, moved.Status())
}

func TestSQLitePlanRepository_SaveRewritesSessions(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLitePlanRepository(db)
	ctx := context.Background()

	taskID := uuid.New()
	plan := domain.NewStudyPlan("2025-03-05", 4)
	s, err := domain.NewSession(taskID, 1, "09:00", "10:00", 1)
	require.NoError(t, err)
	require.NoError(t, plan.AddSession(s))
	require.NoError(t, repo.Save(ctx, plan))

	require.NoError(t, plan.RemoveSession(s.ID()))
	replacement, err := domain.NewSession(taskID, 2, "10:00", "12:00", 2)
	require.NoError(t, err)
	require.NoError(t, plan.AddSession(replacement))
	require.NoError(t, repo.Save(ctx, plan))

	loaded, err := repo.FindByDate(ctx, "2025-03-05")
	require.NoError(t, err)
	require.Len(t, loaded.Sessions(), 1)
	assert.Equal(t, 2, loaded.Sessions()[0].SessionNumber())
}

func TestSQLitePlanRepository_FindByDateAbsent(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLitePlanRepository(db)

	plan, err := repo.FindByDate(context.Background(), "2025-03-09")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestSQLitePlanRepository_SaveSetAndFindAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLitePlanRepository(db)
	ctx := context.Background()

	plans := domain.NewPlanSet()
	plans["2025-03-03"] = domain.NewStudyPlan("2025-03-03", 4)
	plans["2025-03-04"] = domain.NewStudyPlan("2025-03-04", 4)
	require.NoError(t, repo.SaveSet(ctx, plans))

	loaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-03", "2025-03-04"}, loaded.Dates())
}

func TestSQLiteCommitmentRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteCommitmentRepository(db)
	ctx := context.Background()

	c, err := domain.NewRecurringCommitment("Gym", "18:00", "19:00", []time.Weekday{time.Monday, time.Wednesday})
	require.NoError(t, err)
	c.OverrideOccurrence("2025-03-05", "07:00", "08:00")
	c.DeleteOccurrence("2025-03-10")
	require.NoError(t, repo.Save(ctx, c))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	loaded := all[0]
	assert.Equal(t, "Gym", loaded.Title())
	assert.True(t, loaded.IsRecurring())
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, loaded.DaysOfWeek())

	// Occurrence edits survive the JSON columns.
	moved, ok := loaded.AppliesOn("2025-03-05")
	require.True(t, ok)
	assert.Equal(t, domain.Interval{Start: 420, End: 480}, moved)
	_, ok = loaded.AppliesOn("2025-03-10")
	assert.False(t, ok)
}

func TestSQLiteCommitmentRepository_OneOff(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteCommitmentRepository(db)
	ctx := context.Background()

	c, err := domain.NewOneOffCommitment("Dentist", "10:00", "11:00", []string{"2025-03-06"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsRecurring())
	assert.Equal(t, []string{"2025-03-06"}, all[0].SpecificDates())
}

func TestSQLiteSettingsRepository_DefaultsWhenEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteSettingsRepository(db)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSQLiteSettingsRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteSettingsRepository(db)
	ctx := context.Background()

	settings := domain.Settings{
		WorkDays:             []time.Weekday{time.Saturday, time.Sunday},
		DailyAvailableHours:  6,
		BufferDays:           1,
		StudyWindowStartHour: 9,
		StudyWindowEndHour:   18,
		MinSessionMinutes:    45,
		PlanMode:             domain.PlanModeBalanced,
	}
	require.NoError(t, repo.Save(ctx, settings))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	// Second save overwrites the single row.
	settings.DailyAvailableHours = 3
	require.NoError(t, repo.Save(ctx, settings))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, loaded.DailyAvailableHours)
}

func TestSQLiteRedistributionLogRepository_RangeQuery(t *testing.T) {
	db := openTestDB(t)
	repo := NewSQLiteRedistributionLogRepository(db)
	ctx := context.Background()

	taskID := uuid.New()
	at := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	inRange := domain.RedistributionRecord{
		ID: uuid.New(), TaskID: taskID, SessionNumber: 1,
		Trigger: domain.RedistributionMissed, AttemptedAt: at,
		FromDate: "2025-03-03", FromTime: "09:00",
		ToDate: "2025-03-05", ToTime: "08:00", Hours: 1.5, Success: true,
	}
	failed := domain.RedistributionRecord{
		ID: uuid.New(), TaskID: taskID, SessionNumber: 2,
		Trigger: domain.RedistributionEviction, AttemptedAt: at,
		FromDate: "2025-03-04", Hours: 2, Success: false,
		FailureReason: "no available slots found within deadline",
	}
	outOfRange := domain.RedistributionRecord{
		ID: uuid.New(), TaskID: taskID, SessionNumber: 3,
		Trigger: domain.RedistributionMissed, AttemptedAt: at,
		FromDate: "2025-02-20", Hours: 1, Success: true,
	}
	for _, rec := range []domain.RedistributionRecord{failed, inRange, outOfRange} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	records, err := repo.ListByDateRange(ctx, "2025-03-01", "2025-03-09")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-03-03", records[0].FromDate)
	assert.True(t, records[0].Success)
	assert.Equal(t, "2025-03-04", records[1].FromDate)
	assert.Equal(t, domain.RedistributionEviction, records[1].Trigger)
	assert.Equal(t, "no available slots found within deadline", records[1].FailureReason)
}
