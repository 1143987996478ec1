package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_Validation(t *testing.T) {
	_, err := NewTask("   ", 2, "2025-03-07", false)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewTask("Essay", -1, "2025-03-07", false)
	assert.ErrorIs(t, err, ErrNegativeEstimate)

	task, err := NewTask("  Essay  ", 2, "2025-03-07", true)
	require.NoError(t, err)
	assert.Equal(t, "Essay", task.Title())
	assert.True(t, task.IsPending())
	assert.Equal(t, FrequencyFlexible, task.Frequency())
}

func TestTask_CompleteIsIdempotentOnlyOnce(t *testing.T) {
	task, err := NewTask("Essay", 2, "2025-03-07", false)
	require.NoError(t, err)

	require.NoError(t, task.Complete())
	assert.ErrorIs(t, task.Complete(), ErrTaskAlreadyDone)
	assert.Equal(t, TaskStatusCompleted, task.Status())
}

func TestTask_DeadlineArithmetic(t *testing.T) {
	task, err := NewTask("Essay", 2, "2025-03-07", false)
	require.NoError(t, err)

	assert.Equal(t, 4, task.DaysUntilDeadline("2025-03-03"))
	assert.Equal(t, "2025-03-05", task.BufferedDeadline(2))
	assert.True(t, task.IsUrgent("2025-03-05"))
	assert.False(t, task.IsUrgent("2025-03-01"))
}

func TestTask_QuadrantAsOf(t *testing.T) {
	urgent := "2025-03-06"
	later := "2025-02-20"

	importantUrgent, err := NewTask("A", 1, "2025-03-07", true)
	require.NoError(t, err)
	notImportant, err := NewTask("B", 1, "2025-03-07", false)
	require.NoError(t, err)

	assert.Equal(t, ImportantUrgent, importantUrgent.QuadrantAsOf(urgent))
	assert.Equal(t, ImportantNotUrgent, importantUrgent.QuadrantAsOf(later))
	assert.Equal(t, NotImportantUrgent, notImportant.QuadrantAsOf(urgent))
	assert.Equal(t, NotImportantNotUrgent, notImportant.QuadrantAsOf(later))
}

func TestParseRoundTrips(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusPending, TaskStatusCompleted, TaskStatusArchived} {
		assert.Equal(t, status, ParseTaskStatus(status.String()))
	}
	for _, f := range []Frequency{FrequencyFlexible, FrequencyDaily, FrequencyThreeWeekly, FrequencyWeekly} {
		assert.Equal(t, f, ParseFrequency(f.String()))
	}
	for _, m := range []PlanMode{PlanModeEven, PlanModeBalanced, PlanModeEisenhower} {
		assert.Equal(t, m, ParsePlanMode(m.String()))
	}
}
