package services

import (
	"testing"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFreeWindows_EmptyDayIsOneFullWindow(t *testing.T) {
	settings := domain.DefaultSettings()
	windows := DayFreeWindows(monday, domain.NewPlanSet(), nil, settings)

	require.Len(t, windows, 1)
	assert.Equal(t, "08:00", windows[0].Start)
	assert.Equal(t, "22:00", windows[0].End)
	assert.InDelta(t, 14, windows[0].DurationHours, 0.001)
}

func TestDayFreeWindows_SessionsAndCommitmentsBlockTime(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Read chapter 4", 2, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "09:00", "10:00", 1))

	gym, err := domain.NewRecurringCommitment("Gym", "12:00", "13:30", []time.Weekday{time.Monday})
	require.NoError(t, err)

	windows := DayFreeWindows(monday, plans, []*domain.FixedCommitment{gym}, settings)

	require.Len(t, windows, 3)
	assert.Equal(t, "08:00", windows[0].Start)
	assert.Equal(t, "09:00", windows[0].End)
	assert.Equal(t, "10:00", windows[1].Start)
	assert.Equal(t, "12:00", windows[1].End)
	assert.Equal(t, "13:30", windows[2].Start)
	assert.Equal(t, "22:00", windows[2].End)
}

func TestDayFreeWindows_LockedDayHasNoAvailability(t *testing.T) {
	settings := domain.DefaultSettings()
	plans := domain.NewPlanSet()
	plans.Ensure(monday, settings.DailyAvailableHours).Lock()

	assert.Empty(t, DayFreeWindows(monday, plans, nil, settings))
}

func TestDayFreeWindows_SkippedSessionFreesItsSlot(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Essay draft", 2, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	s := newSession(t, task, 1, "09:00", "10:00", 1)
	addSession(t, plan, s)
	s.SetStatus(domain.SessionSkipped)
	plan.RecomputeTotal()

	windows := DayFreeWindows(monday, plans, nil, settings)
	require.Len(t, windows, 1)
	assert.Equal(t, "08:00", windows[0].Start)
	assert.Equal(t, "22:00", windows[0].End)
}

func TestDayFreeWindows_GapsBelowMinimumAreDropped(t *testing.T) {
	settings := domain.DefaultSettings()
	task := newTask(t, "Problem set", 2, friday, false)

	plans := domain.NewPlanSet()
	plan := plans.Ensure(monday, settings.DailyAvailableHours)
	addSession(t, plan, newSession(t, task, 1, "08:00", "09:00", 1))
	addSession(t, plan, newSession(t, task, 2, "09:15", "10:00", 0.75))

	windows := DayFreeWindows(monday, plans, nil, settings)
	// The 15-minute gap at 09:00 is shorter than the minimum session length.
	require.Len(t, windows, 1)
	assert.Equal(t, "10:00", windows[0].Start)
}

func TestFindNextSlot_SkipsNonWorkDays(t *testing.T) {
	settings := domain.DefaultSettings()

	slot, ok := FindNextSlot(2, saturday, 7, "", domain.NewPlanSet(), nil, settings)
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", slot.Date) // the following Monday
	assert.Equal(t, "08:00", slot.Start)
	assert.Equal(t, "10:00", slot.End)
}

func TestFindNextSlot_SkipsLockedAndExcludedDays(t *testing.T) {
	settings := domain.DefaultSettings()
	plans := domain.NewPlanSet()
	plans.Ensure(tuesday, settings.DailyAvailableHours).Lock()

	slot, ok := FindNextSlot(1, monday, 7, monday, plans, nil, settings)
	require.True(t, ok)
	assert.Equal(t, wednesday, slot.Date)
}

func TestFindNextSlot_TruncatesWindowToRequestedHours(t *testing.T) {
	settings := domain.DefaultSettings()

	slot, ok := FindNextSlot(1.5, monday, 7, "", domain.NewPlanSet(), nil, settings)
	require.True(t, ok)
	assert.Equal(t, "08:00", slot.Start)
	assert.Equal(t, "09:30", slot.End)
}

func TestFindNextSlot_GivesUpAfterHorizon(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.WorkDays = []time.Weekday{time.Sunday}

	_, ok := FindNextSlot(2, monday, 5, "", domain.NewPlanSet(), nil, settings)
	assert.False(t, ok)
}
