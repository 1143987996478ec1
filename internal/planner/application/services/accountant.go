package services

import (
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// RemainingHours computes the hours of a task still needing a new placement:
// the estimate minus everything already accounted for, where a session is
// accounted for when it is done, completed, skipped, or resident on a locked
// day. This is the single source of truth for outstanding work and must be
// recomputed fresh before every pass; lock and completion state change
// between calls.
func RemainingHours(task *domain.Task, plans domain.PlanSet) float64 {
	accounted := 0.0
	for _, placed := range plans.SessionsForTask(task.ID()) {
		if placed.Session.IsSettled() || placed.Plan.IsLocked() {
			accounted += placed.Session.AllocatedHours()
		}
	}
	remaining := task.EstimatedHours() - accounted
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UnlockedSessions returns the task's sessions eligible to be discarded and
// replaced: those on non-locked days that are not done, completed, or skipped.
func UnlockedSessions(taskID uuid.UUID, plans domain.PlanSet) []domain.PlacedSession {
	eligible := make([]domain.PlacedSession, 0)
	for _, placed := range plans.SessionsForTask(taskID) {
		if placed.Plan.IsLocked() || placed.Session.IsSettled() {
			continue
		}
		eligible = append(eligible, placed)
	}
	return eligible
}

// RemoveUnlockedSessions purges exactly the UnlockedSessions set from their
// plans, recomputing each touched plan's total, and reports how many were
// removed.
func RemoveUnlockedSessions(taskID uuid.UUID, plans domain.PlanSet) int {
	removed := 0
	for _, placed := range UnlockedSessions(taskID, plans) {
		if err := placed.Plan.RemoveSession(placed.Session.ID()); err == nil {
			removed++
		}
	}
	return removed
}
