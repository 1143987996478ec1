package services

import (
	"testing"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineSessions_MergesFragmentsIntoOneBlock(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Essay draft", 4, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 3, "11:00", "12:00", 1))
	addSession(t, plan, newSession(t, task, 2, "09:00", "10:00", 1))

	merged := NewCombiner(testLogger()).CombineSessions(tuesday, plans, settings)

	assert.Equal(t, 1, merged)
	require.Len(t, plan.Sessions(), 1)
	combined := plan.Sessions()[0]
	assert.Equal(t, "09:00", combined.StartTime())
	assert.Equal(t, "11:00", combined.EndTime())
	assert.InDelta(t, 2, combined.AllocatedHours(), 0.001)
	assert.Equal(t, 2, combined.SessionNumber())
	assert.InDelta(t, 2, plan.TotalStudyHours(), 0.001)
}

func TestCombineSessions_LeavesLockedDaysAlone(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Essay draft", 4, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))
	addSession(t, plan, newSession(t, task, 2, "11:00", "12:00", 1))
	plan.Lock()

	merged := NewCombiner(testLogger()).CombineSessions(tuesday, plans, settings)

	assert.Equal(t, 0, merged)
	assert.Len(t, plan.Sessions(), 2)
}

func TestCombineSessions_SkipsMergesAboveMaxLength(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Marathon revision", 8, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "08:00", "10:30", 2.5))
	addSession(t, plan, newSession(t, task, 2, "11:00", "13:30", 2.5))

	// 5h exceeds the single-session ceiling.
	merged := NewCombiner(testLogger()).CombineSessions(tuesday, plans, settings)

	assert.Equal(t, 0, merged)
	assert.Len(t, plan.Sessions(), 2)
}

func TestCombineSessions_SkipsMergeCollidingWithAnotherTask(t *testing.T) {
	settings := domain.DefaultSettings()
	fragmented := newTask(t, "Essay draft", 4, friday, false)
	other := newTask(t, "Vocabulary", 1, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, fragmented, 1, "08:00", "09:00", 1))
	addSession(t, plan, newSession(t, other, 1, "09:00", "09:30", 0.5))
	addSession(t, plan, newSession(t, fragmented, 2, "10:00", "11:00", 1))

	// The merged block would run 08:00-10:00, over the other task's session.
	merged := NewCombiner(testLogger()).CombineSessions(tuesday, plans, settings)

	assert.Equal(t, 0, merged)
	assert.Len(t, plan.Sessions(), 3)
}

func TestCombineSessions_IgnoresSettledFragments(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Essay draft", 4, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(tuesday, settings.DailyAvailableHours)
	done := newSession(t, task, 1, "08:00", "09:00", 1)
	addSession(t, plan, done)
	done.MarkDone()
	addSession(t, plan, newSession(t, task, 2, "10:00", "11:00", 1))

	// Only one open fragment, so nothing merges.
	merged := NewCombiner(testLogger()).CombineSessions(tuesday, plans, settings)

	assert.Equal(t, 0, merged)
	assert.Len(t, plan.Sessions(), 2)
}
