package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/require"
)

// Fixed reference week: 2025-03-03 is a Monday.
const (
	monday    = "2025-03-03"
	tuesday   = "2025-03-04"
	wednesday = "2025-03-05"
	thursday  = "2025-03-06"
	friday    = "2025-03-07"
	saturday  = "2025-03-08"
	sunday    = "2025-03-09"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTask(t *testing.T, title string, hours float64, deadline string, important bool) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, hours, deadline, important)
	require.NoError(t, err)
	return task
}

func newSession(t *testing.T, task *domain.Task, number int, start, end string, hours float64) *domain.Session {
	t.Helper()
	s, err := domain.NewSession(task.ID(), number, start, end, hours)
	require.NoError(t, err)
	return s
}

func addSession(t *testing.T, plan *domain.StudyPlan, s *domain.Session) {
	t.Helper()
	require.NoError(t, plan.AddSession(s))
}

func noonOf(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := domain.ParseDate(date)
	require.NoError(t, err)
	return day.Add(12 * time.Hour)
}
