package services

import (
	"testing"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedistributeMissed_MovesMissedSessionForward(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Statistics homework", 3, "2025-03-10", false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))

	result := NewRedistributor(testLogger()).RedistributeMissed(
		plans, []*domain.Task{task}, nil, settings, wednesday, noonOf(t, wednesday),
	)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, monday, result.Moved[0].FromDate)
	assert.Equal(t, wednesday, result.Moved[0].ToDate)
	assert.True(t, result.Summary.Success)

	// The origin plan in the result is emptied; the caller's is untouched.
	assert.Empty(t, result.Plans.Get(monday).Sessions())
	assert.Len(t, plans.Get(monday).Sessions(), 1)

	moved := result.Plans.Get(wednesday).Sessions()
	require.Len(t, moved, 1)
	assert.Equal(t, 1, moved[0].SessionNumber())
	assert.Equal(t, domain.SessionRescheduled, moved[0].Status())
	assert.Equal(t, monday, moved[0].OriginalDate())
	assert.Equal(t, "09:00", moved[0].OriginalTime())
	require.NotNil(t, moved[0].RescheduledAt())
}

func TestRedistributeMissed_IgnoresSettledSessionsAndLockedDays(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Statistics homework", 3, "2025-03-10", false)

	plans := domain.NewPlanSet()

	mondayPlan := plans.Ensure(monday, settings.DailyAvailableHours)
	done := newSession(t, task, 1, "09:00", "10:00", 1)
	addSession(t, mondayPlan, done)
	done.MarkDone()

	tuesdayPlan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, tuesdayPlan, newSession(t, task, 2, "09:00", "10:00", 1))
	tuesdayPlan.Lock()

	result := NewRedistributor(testLogger()).RedistributeMissed(
		plans, []*domain.Task{task}, nil, settings, wednesday, noonOf(t, wednesday),
	)

	assert.Empty(t, result.Moved)
	assert.Empty(t, result.Failed)
}

func TestRedistributeMissed_FailsWhenDeadlinePassed(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Late abstract", 1, tuesday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))

	result := NewRedistributor(testLogger()).RedistributeMissed(
		plans, []*domain.Task{task}, nil, settings, wednesday, noonOf(t, wednesday),
	)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "deadline has already passed", result.Failed[0].Reason)
	assert.False(t, result.Summary.Success)
	assert.Contains(t, result.Summary.Suggestions,
		"increase your daily available hours or widen the study window")
	assert.Contains(t, result.Summary.Suggestions,
		`extend the deadline for "Late abstract" or reduce its estimate`)

	// A failed session stays where it was.
	assert.Len(t, result.Plans.Get(monday).Sessions(), 1)
}

func TestRedistributeMissed_ImportantTasksMoveFirst(t *testing.T) {
	settings := domain.DefaultSettings()
	important := newTask(t, "Grant proposal", 2, "2025-03-10", true)
	casual := newTask(t, "Blog post", 2, "2025-03-10", false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, casual, 1, "08:00", "09:00", 1))
	addSession(t, plan, newSession(t, important, 1, "09:00", "10:00", 1))

	result := NewRedistributor(testLogger()).RedistributeMissed(
		plans, []*domain.Task{important, casual}, nil, settings, wednesday, noonOf(t, wednesday),
	)

	require.Len(t, result.Moved, 2)
	assert.Equal(t, important.ID(), result.Moved[0].TaskID)
	// Priority order shows in the slots: the important task claimed the
	// earliest window of the day.
	assert.Equal(t, "08:00", result.Moved[0].ToTime)
	assert.Equal(t, "09:00", result.Moved[1].ToTime)
}

func TestEvictLockedDay_RelocatesOpenSessions(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Presentation prep", 4, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "11:00", 2))
	done := newSession(t, task, 2, "11:00", "12:00", 1)
	addSession(t, plan, done)
	done.MarkDone()

	result := NewRedistributor(testLogger()).EvictLockedDay(
		tuesday, plans, []*domain.Task{task}, nil, settings, monday, noonOf(t, monday),
	)

	require.Len(t, result.Moved, 1)
	assert.Equal(t, tuesday, result.Moved[0].FromDate)
	assert.Equal(t, wednesday, result.Moved[0].ToDate)

	// The settled session stays on the day being locked.
	require.Len(t, result.Plans.Get(tuesday).Sessions(), 1)
	assert.True(t, result.Plans.Get(tuesday).Sessions()[0].IsSettled())
}

func TestEvictLockedDay_RespectsCapacityAndDeadline(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Presentation prep", 2, friday, false)
	filler := newTask(t, "Filler work", 12, "2025-03-31", false)

	plans := domain.NewPlanSet()
	origin := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, origin, newSession(t, task, 1, "09:00", "11:00", 2))

	// Every remaining day before the deadline is already at capacity.
	for i, date := range []string{wednesday, thursday, friday} {
		full := plans.Ensure(date, settings.DailyAvailableHours)
		addSession(t, full, newSession(t, filler, i+1, "08:00", "12:00", 4))
	}

	result := NewRedistributor(testLogger()).EvictLockedDay(
		tuesday, plans, []*domain.Task{task, filler}, nil, settings, monday, noonOf(t, monday),
	)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "no available slots found within deadline", result.Failed[0].Reason)
	assert.False(t, result.Summary.Success)
}

func TestMissedRedistributionPriority_Weights(t *testing.T) {
	overdueImportant := newTask(t, "Overdue important", 1, monday, true)
	nearDeadline := newTask(t, "Due soon", 1, thursday, false)
	farDeadline := newTask(t, "Due later", 1, "2025-03-13", false)

	// As of Wednesday: overdue adds 2000 on top of 1000 for importance;
	// pending deadlines score by closeness.
	assert.Equal(t, 3000, missedRedistributionPriority(overdueImportant, wednesday))
	assert.Equal(t, 99, missedRedistributionPriority(nearDeadline, wednesday))
	assert.Equal(t, 92, missedRedistributionPriority(farDeadline, wednesday))
}

func TestEvictionPriority_DeadlineBands(t *testing.T) {
	within1 := newTask(t, "Due tomorrow", 1, thursday, false)
	within3 := newTask(t, "Due in three", 1, saturday, false)
	within7 := newTask(t, "Due in a week", 1, "2025-03-12", true)

	assert.Equal(t, 500, evictionPriority(within1, wednesday))
	assert.Equal(t, 300, evictionPriority(within3, wednesday))
	assert.Equal(t, 1200, evictionPriority(within7, wednesday))
}
