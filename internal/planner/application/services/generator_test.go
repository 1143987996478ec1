package services

import (
	"testing"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_SpreadsHoursEvenlyAcrossEligibleDays(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Exam prep", 6, saturday, false)

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    domain.NewPlanSet(),
		Today:    monday,
	})

	require.Len(t, result.Outcomes, 1)
	assert.InDelta(t, 6, result.Outcomes[0].PlacedHours, 0.01)
	assert.Empty(t, result.Outcomes[0].Reason)

	// Tuesday through Friday, 1.5h each; Saturday is not a work day.
	for _, date := range []string{tuesday, wednesday, thursday, friday} {
		plan := result.Plans.Get(date)
		require.NotNil(t, plan, date)
		require.Len(t, plan.Sessions(), 1, date)
		assert.InDelta(t, 1.5, plan.Sessions()[0].AllocatedHours(), 0.001)
		assert.Equal(t, "08:00", plan.Sessions()[0].StartTime())
	}
	assert.Nil(t, result.Plans.Get(saturday))
}

func TestGenerator_LockedDayShrinksEligibleSetAndStaysUntouched(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Exam prep", 6, saturday, false)

	plans := domain.NewPlanSet()
	plans.Ensure(wednesday, settings.DailyAvailableHours).Lock()

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    plans,
		Today:    monday,
	})

	// Three open days left, 2h each.
	for _, date := range []string{tuesday, thursday, friday} {
		plan := result.Plans.Get(date)
		require.NotNil(t, plan, date)
		require.Len(t, plan.Sessions(), 1, date)
		assert.InDelta(t, 2, plan.Sessions()[0].AllocatedHours(), 0.001)
	}
	assert.Empty(t, result.Plans.Get(wednesday).Sessions())
	assert.Empty(t, ValidateLockedDaysIntegrity(plans, result.Plans))
}

func TestGenerator_DoesNotMutateInputPlans(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Exam prep", 4, saturday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))

	NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    plans,
		Today:    monday,
	})

	// The caller's snapshot keeps its original session even though the pass
	// purged and replanned it on the working copy.
	require.Len(t, plans.Get(tuesday).Sessions(), 1)
	assert.Equal(t, "09:00", plans.Get(tuesday).Sessions()[0].StartTime())
}

func TestGenerator_IsDeterministic(t *testing.T) {
	settings := domain.DefaultSettings()
	tasks := []*domain.Task{
		newTask(t, "Biology notes", 3, friday, false),
		newTask(t, "Algebra drills", 3, friday, false),
		newTask(t, "Chemistry lab", 2, thursday, true),
	}
	gen := NewGenerator(testLogger())

	first := gen.Generate(GenerateInput{
		Tasks: tasks, Settings: settings, Plans: domain.NewPlanSet(), Today: monday,
	})
	second := gen.Generate(GenerateInput{
		Tasks: tasks, Settings: settings, Plans: domain.NewPlanSet(), Today: monday,
	})

	require.Equal(t, first.Plans.Dates(), second.Plans.Dates())
	for _, date := range first.Plans.Dates() {
		a := first.Plans.Get(date).Sessions()
		b := second.Plans.Get(date).Sessions()
		require.Len(t, b, len(a), date)
		for i := range a {
			assert.Equal(t, a[i].TaskID(), b[i].TaskID())
			assert.Equal(t, a[i].StartTime(), b[i].StartTime())
			assert.Equal(t, a[i].AllocatedHours(), b[i].AllocatedHours())
		}
	}
}

func TestGenerator_SecondPassOnOwnOutputIsStable(t *testing.T) {
	settings := domain.DefaultSettings()
	tasks := []*domain.Task{
		newTask(t, "Biology notes", 3, friday, false),
		newTask(t, "Algebra drills", 3, friday, false),
		newTask(t, "Chemistry lab", 2, thursday, true),
	}
	gen := NewGenerator(testLogger())

	first := gen.Generate(GenerateInput{
		Tasks: tasks, Settings: settings, Plans: domain.NewPlanSet(), Today: monday,
	})
	// No time passes and nothing external changes; replanning the first
	// pass's own output must reproduce it placement for placement.
	second := gen.Generate(GenerateInput{
		Tasks: tasks, Settings: settings, Plans: first.Plans, Today: monday,
	})

	require.Equal(t, first.Plans.Dates(), second.Plans.Dates())
	for _, date := range first.Plans.Dates() {
		a := first.Plans.Get(date).Sessions()
		b := second.Plans.Get(date).Sessions()
		require.Len(t, b, len(a), date)
		for i := range a {
			assert.Equal(t, a[i].TaskID(), b[i].TaskID(), date)
			assert.Equal(t, a[i].StartTime(), b[i].StartTime(), date)
			assert.Equal(t, a[i].EndTime(), b[i].EndTime(), date)
			assert.Equal(t, a[i].AllocatedHours(), b[i].AllocatedHours(), date)
		}
		assert.InDelta(t, first.Plans.Get(date).TotalStudyHours(),
			second.Plans.Get(date).TotalStudyHours(), 0.001, date)
	}
}

func TestGenerator_TopsUpAroundLockedHours(t *testing.T) {
	const nextMonday = "2025-03-10"
	settings := domain.DefaultSettings()
	task := newTask(t, "History exam", 5, nextMonday, false)

	// One of the five eligible work days is locked and already carries an
	// hour of the task.
	plans := domain.NewPlanSet()
	locked := plans.Ensure(wednesday, settings.DailyAvailableHours)
	addSession(t, locked, newSession(t, task, 1, "08:00", "09:00", 1))
	locked.Lock()

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    plans,
		Today:    monday,
	})

	require.Len(t, result.Outcomes, 1)
	assert.InDelta(t, 4, result.Outcomes[0].RequiredHours, 0.001)
	assert.InDelta(t, 4, result.Outcomes[0].PlacedHours, 0.001)

	// Exactly one hour on each open day; the locked hour is untouched.
	for _, date := range []string{tuesday, thursday, friday, nextMonday} {
		plan := result.Plans.Get(date)
		require.NotNil(t, plan, date)
		require.Len(t, plan.Sessions(), 1, date)
		assert.InDelta(t, 1, plan.Sessions()[0].AllocatedHours(), 0.001, date)
	}
	require.Len(t, result.Plans.Get(wednesday).Sessions(), 1)
	assert.Empty(t, ValidateLockedDaysIntegrity(plans, result.Plans))
	assert.InDelta(t, 5, taskHoursTotal(result.Plans, task.ID()), 0.001)
}

func TestGenerator_ModeSwitchKeepsLockedDayAndTotals(t *testing.T) {
	const nextMonday = "2025-03-10"
	settings := domain.DefaultSettings()
	task := newTask(t, "History exam", 5, nextMonday, false)

	plans := domain.NewPlanSet()
	locked := plans.Ensure(wednesday, settings.DailyAvailableHours)
	addSession(t, locked, newSession(t, task, 1, "08:00", "09:00", 1))
	locked.Lock()

	gen := NewGenerator(testLogger())
	even := gen.Generate(GenerateInput{
		Tasks: []*domain.Task{task}, Settings: settings, Plans: plans, Today: monday,
	})

	settings.PlanMode = domain.PlanModeBalanced
	balanced := gen.Generate(GenerateInput{
		Tasks: []*domain.Task{task}, Settings: settings, Plans: even.Plans, Today: monday,
	})

	// The locked hour never moves and the task's grand total is conserved
	// across the mode switch.
	require.Len(t, balanced.Plans.Get(wednesday).Sessions(), 1)
	assert.InDelta(t, 1, balanced.Plans.Get(wednesday).Sessions()[0].AllocatedHours(), 0.001)
	assert.Empty(t, ValidateLockedDaysIntegrity(even.Plans, balanced.Plans))
	assert.InDelta(t, 4, sumOutcomeHours(balanced.Outcomes), 0.001)
	assert.InDelta(t, 5, taskHoursTotal(balanced.Plans, task.ID()), 0.001)
}

func taskHoursTotal(plans domain.PlanSet, taskID uuid.UUID) float64 {
	total := 0.0
	for _, placed := range plans.SessionsForTask(taskID) {
		total += placed.Session.AllocatedHours()
	}
	return total
}

func sumOutcomeHours(outcomes []TaskOutcome) float64 {
	total := 0.0
	for _, o := range outcomes {
		total += o.PlacedHours
	}
	return total
}

func TestGenerator_SessionNumbersNeverReused(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Exam prep", 6, saturday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))
	addSession(t, plan, newSession(t, task, 2, "10:00", "11:00", 1))

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    plans,
		Today:    monday,
	})

	// The old open sessions were purged, but their numbers stay retired.
	for _, placed := range result.Plans.SessionsForTask(task.ID()) {
		assert.Greater(t, placed.Session.SessionNumber(), 2)
	}
}

func TestGenerator_ReportsNoEligibleDays(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Overdue essay", 3, monday, true)

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{task},
		Settings: settings,
		Plans:    domain.NewPlanSet(),
		Today:    monday,
	})

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, 0.0, result.Outcomes[0].PlacedHours)
	assert.Equal(t, "no eligible days before deadline", result.Outcomes[0].Reason)
}

func TestGenerator_ReportsInsufficientFreeTime(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Exam prep", 6, saturday, false)

	// Only one hour of the study window is ever free.
	busy, err := domain.NewRecurringCommitment("Work", "08:00", "21:00", []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	})
	require.NoError(t, err)

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:       []*domain.Task{task},
		Settings:    settings,
		Commitments: []*domain.FixedCommitment{busy},
		Plans:       domain.NewPlanSet(),
		Today:       monday,
	})

	require.Len(t, result.Outcomes, 1)
	assert.Less(t, result.Outcomes[0].PlacedHours, result.Outcomes[0].RequiredHours)
	assert.Equal(t, "insufficient free time before deadline", result.Outcomes[0].Reason)
}

func TestGenerator_BalancedModeSchedulesImportantFirst(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.PlanMode = domain.PlanModeBalanced

	important := newTask(t, "Defense slides", 2, tuesday, true)
	filler := newTask(t, "Inbox cleanup", 2, tuesday, false)

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{filler, important},
		Settings: settings,
		Plans:    domain.NewPlanSet(),
		Today:    monday,
	})

	plan := result.Plans.Get(tuesday)
	require.NotNil(t, plan)
	require.Len(t, plan.Sessions(), 2)
	// The important task claimed the earlier window.
	assert.Equal(t, important.ID(), plan.Sessions()[0].TaskID())
	assert.Equal(t, filler.ID(), plan.Sessions()[1].TaskID())
}

func TestGenerator_SkipsCompletedAndFullyAccountedTasks(t *testing.T) {
	settings := domain.DefaultSettings()
	completed := newTask(t, "Done already", 3, friday, false)
	require.NoError(t, completed.Complete())

	covered := newTask(t, "Covered by lock", 2, friday, false)
	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, covered, 1, "09:00", "11:00", 2))
	plan.Lock()

	result := NewGenerator(testLogger()).Generate(GenerateInput{
		Tasks:    []*domain.Task{completed, covered},
		Settings: settings,
		Plans:    plans,
		Today:    monday,
	})

	assert.Empty(t, result.Outcomes)
}
