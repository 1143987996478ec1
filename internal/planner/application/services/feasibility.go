package services

import (
	"fmt"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// FeasibilityResult is the verdict of a frequency/deadline check.
type FeasibilityResult struct {
	Feasible          bool
	EstimatedSessions int
	CapacityHours     float64
	Reason            string
}

// CheckFrequencyDeadlineConflict estimates how many sessions the task's
// cadence yields between today and its buffered deadline and compares the
// resulting capacity against the estimate. A task that cannot fit gets a
// human-readable reason instead of an error.
func CheckFrequencyDeadlineConflict(task *domain.Task, settings domain.Settings, today string) FeasibilityResult {
	deadline := task.BufferedDeadline(settings.BufferDays)

	workDays := 0
	weeks := 0
	for d := domain.AddDays(today, 1); d <= deadline; d = domain.AddDays(d, 1) {
		if settings.IsWorkDay(domain.WeekdayOf(d)) {
			workDays++
		}
	}
	if span := domain.DaysBetween(today, deadline); span > 0 {
		weeks = (span + 6) / 7
	}

	sessions := 0
	switch task.Frequency() {
	case domain.FrequencyDaily, domain.FrequencyFlexible:
		sessions = workDays
	case domain.FrequencyThreeWeekly:
		sessions = 3 * weeks
		if sessions > workDays {
			sessions = workDays
		}
	case domain.FrequencyWeekly:
		sessions = weeks
	}

	capacity := float64(sessions) * settings.MaxSessionHours()
	if capacity+hoursEps >= task.EstimatedHours() {
		return FeasibilityResult{
			Feasible:          true,
			EstimatedSessions: sessions,
			CapacityHours:     capacity,
		}
	}

	return FeasibilityResult{
		Feasible:          false,
		EstimatedSessions: sessions,
		CapacityHours:     capacity,
		Reason: fmt.Sprintf(
			"a %s cadence yields at most %d sessions (%.1fh) before %s, but %q needs %.1fh; relax the cadence, extend the deadline, or reduce the estimate",
			task.Frequency(), sessions, capacity, deadline, task.Title(), task.EstimatedHours(),
		),
	}
}

// CommitmentConflict describes an overlap between a candidate commitment and
// an existing one. Override marks the mixed recurring/one-off case, where the
// one-off occurrence shadows the recurring one instead of colliding outright.
type CommitmentConflict struct {
	Existing *domain.FixedCommitment
	Override bool
}

// CheckCommitmentConflicts returns every existing commitment whose time range
// and date domain both intersect the candidate's.
func CheckCommitmentConflicts(candidate *domain.FixedCommitment, existing []*domain.FixedCommitment) []CommitmentConflict {
	var conflicts []CommitmentConflict
	for _, other := range existing {
		if other.ID() == candidate.ID() {
			continue
		}
		if !candidate.TimeOverlaps(other) {
			continue
		}

		switch {
		case candidate.IsRecurring() && other.IsRecurring():
			if weekdaysIntersect(candidate.DaysOfWeek(), other.DaysOfWeek()) {
				conflicts = append(conflicts, CommitmentConflict{Existing: other})
			}
		case !candidate.IsRecurring() && !other.IsRecurring():
			if datesIntersect(candidate.SpecificDates(), other.SpecificDates()) {
				conflicts = append(conflicts, CommitmentConflict{Existing: other})
			}
		default:
			if mixedDomainsIntersect(candidate, other) {
				conflicts = append(conflicts, CommitmentConflict{Existing: other, Override: true})
			}
		}
	}
	return conflicts
}

func weekdaysIntersect(a, b []time.Weekday) bool {
	set := make(map[time.Weekday]bool, len(a))
	for _, wd := range a {
		set[wd] = true
	}
	for _, wd := range b {
		if set[wd] {
			return true
		}
	}
	return false
}

func datesIntersect(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, d := range a {
		set[d] = true
	}
	for _, d := range b {
		if set[d] {
			return true
		}
	}
	return false
}

// mixedDomainsIntersect checks whether any one-off date falls on one of the
// recurring commitment's weekdays.
func mixedDomainsIntersect(a, b *domain.FixedCommitment) bool {
	recurring, oneOff := a, b
	if !a.IsRecurring() {
		recurring, oneOff = b, a
	}
	for _, date := range oneOff.SpecificDates() {
		wd := domain.WeekdayOf(date)
		for _, owned := range recurring.DaysOfWeek() {
			if owned == wd {
				return true
			}
		}
	}
	return false
}
