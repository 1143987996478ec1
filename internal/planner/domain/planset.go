package domain

import (
	"sort"

	"github.com/google/uuid"
)

// PlanSet is the working collection of study plans keyed by calendar date.
// Engine entry points clone the caller's set, mutate only the clone, and
// return it; the caller adopts the returned set as the new source of truth.
type PlanSet map[string]*StudyPlan

// NewPlanSet creates an empty plan set.
func NewPlanSet() PlanSet {
	return make(PlanSet)
}

// Clone returns a deep copy of the set.
func (ps PlanSet) Clone() PlanSet {
	clone := make(PlanSet, len(ps))
	for date, plan := range ps {
		clone[date] = plan.Clone()
	}
	return clone
}

// Get returns the plan for a date, or nil when the date is fully open.
func (ps PlanSet) Get(date string) *StudyPlan {
	return ps[date]
}

// Ensure returns the plan for a date, creating an empty one lazily.
func (ps PlanSet) Ensure(date string, defaultAvailableHours float64) *StudyPlan {
	if plan, ok := ps[date]; ok {
		return plan
	}
	plan := NewStudyPlan(date, defaultAvailableHours)
	ps[date] = plan
	return plan
}

// Dates returns the plan dates in ascending order.
func (ps PlanSet) Dates() []string {
	dates := make([]string, 0, len(ps))
	for date := range ps {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// IsLockedDay reports whether the date has a locked plan.
func (ps PlanSet) IsLockedDay(date string) bool {
	plan := ps[date]
	return plan != nil && plan.IsLocked()
}

// PlacedSession pairs a session with the plan holding it.
type PlacedSession struct {
	Date    string
	Plan    *StudyPlan
	Session *Session
}

// SessionsForTask returns every session for a task across all plans, in
// ascending date order.
func (ps PlanSet) SessionsForTask(taskID uuid.UUID) []PlacedSession {
	placed := make([]PlacedSession, 0)
	for _, date := range ps.Dates() {
		plan := ps[date]
		for _, s := range plan.SessionsForTask(taskID) {
			placed = append(placed, PlacedSession{Date: date, Plan: plan, Session: s})
		}
	}
	return placed
}

// MaxSessionNumber returns the highest session number used by a task across
// all plans, locked days included. Zero means the task has no sessions.
func (ps PlanSet) MaxSessionNumber(taskID uuid.UUID) int {
	max := 0
	for _, plan := range ps {
		for _, s := range plan.SessionsForTask(taskID) {
			if s.SessionNumber() > max {
				max = s.SessionNumber()
			}
		}
	}
	return max
}
