package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// criticalDeadlineDays is how close an important task's deadline must be for
// its sessions to block a day lock outright.
const criticalDeadlineDays = 2

// Redistribution pressure thresholds: hours-to-evict over spare capacity.
const (
	pressureMediumRatio = 0.5
	pressureHighRatio   = 0.8
)

// capacityLookaheadDays is how far the lock assessment scans for spare room.
const capacityLookaheadDays = 14

// PressureLevel classifies how hard an eviction will be to absorb.
type PressureLevel int

const (
	PressureLow PressureLevel = iota
	PressureMedium
	PressureHigh
)

func (p PressureLevel) String() string {
	switch p {
	case PressureMedium:
		return "medium"
	case PressureHigh:
		return "high"
	default:
		return "low"
	}
}

// LockAssessment is the full verdict on locking a day.
type LockAssessment struct {
	CanLock         bool
	PendingSessions int
	Blockers        []string
	Warnings        []string
	HoursToMove     float64
	SpareCapacity   float64
	Pressure        PressureLevel
}

// LockGovernor decides whether a day may be locked and validates after the
// fact that locked-day content was never mutated.
type LockGovernor struct {
	logger *slog.Logger
}

// NewLockGovernor creates a lock governor.
func NewLockGovernor(logger *slog.Logger) *LockGovernor {
	return &LockGovernor{logger: logger}
}

// CanLock reports whether a day holds no outstanding pending work: every
// session is done, completed, skipped, or missed. Callers needing to lock a
// day with pending work must first run redistribution to clear it. The
// pending-session count is returned alongside.
func CanLock(date string, plans domain.PlanSet) (bool, int) {
	plan := plans.Get(date)
	if plan == nil {
		return true, 0
	}
	pending := 0
	for _, s := range plan.Sessions() {
		if s.IsSettled() || s.Status() == domain.SessionMissed {
			continue
		}
		pending++
	}
	return pending == 0, pending
}

// ValidateLock extends CanLock with soft warnings and a capacity analysis of
// the next 14 eligible days.
func (g *LockGovernor) ValidateLock(
	date string,
	plans domain.PlanSet,
	tasks []*domain.Task,
	settings domain.Settings,
	today string,
) LockAssessment {
	assessment := LockAssessment{}
	_, assessment.PendingSessions = CanLock(date, plans)

	taskByID := indexTasks(tasks)

	plan := plans.Get(date)
	if plan != nil {
		for _, s := range plan.Sessions() {
			task, ok := taskByID[s.TaskID()]
			if !ok {
				continue
			}
			if s.IsSettled() {
				continue
			}
			if task.IsImportant() && task.DaysUntilDeadline(today) <= criticalDeadlineDays {
				assessment.Blockers = append(assessment.Blockers, fmt.Sprintf(
					"session for %q is critical: the deadline is within %d days",
					task.Title(), criticalDeadlineDays,
				))
				continue
			}
			if task.Frequency() == domain.FrequencyFlexible {
				assessment.Warnings = append(assessment.Warnings, fmt.Sprintf(
					"%q is a one-time task; its session here will need redistribution",
					task.Title(),
				))
			}
			assessment.HoursToMove += s.AllocatedHours()
		}
	}

	if wd := domain.WeekdayOf(date); wd == time.Saturday || wd == time.Sunday {
		assessment.Warnings = append(assessment.Warnings, "locking a weekend day reduces catch-up room")
	}

	assessment.SpareCapacity = spareCapacity(date, plans, settings)
	assessment.Pressure = classifyPressure(assessment.HoursToMove, assessment.SpareCapacity)
	assessment.CanLock = len(assessment.Blockers) == 0

	return assessment
}

// spareCapacity sums the open hours on the next eligible days after the lock
// candidate.
func spareCapacity(date string, plans domain.PlanSet, settings domain.Settings) float64 {
	spare := 0.0
	for offset := 1; offset <= capacityLookaheadDays; offset++ {
		d := domain.AddDays(date, offset)
		if !settings.IsWorkDay(domain.WeekdayOf(d)) {
			continue
		}
		if plan := plans.Get(d); plan != nil {
			if plan.IsLocked() {
				continue
			}
			spare += plan.SpareHours()
			continue
		}
		spare += settings.DailyAvailableHours
	}
	return spare
}

func classifyPressure(hoursToMove, spare float64) PressureLevel {
	if hoursToMove <= hoursEps {
		return PressureLow
	}
	if spare <= hoursEps {
		return PressureHigh
	}
	ratio := hoursToMove / spare
	switch {
	case ratio < pressureMediumRatio:
		return PressureLow
	case ratio < pressureHighRatio:
		return PressureMedium
	default:
		return PressureHigh
	}
}

// LockDay flips the lock flag, creating an empty locked plan when none exists.
func (g *LockGovernor) LockDay(date string, plans domain.PlanSet, settings domain.Settings) *domain.StudyPlan {
	plan := plans.Ensure(date, settings.DailyAvailableHours)
	plan.Lock()
	g.logger.Info("day locked", "date", date, "sessions", len(plan.Sessions()))
	return plan
}

// UnlockDay reopens a locked day, resetting its capacity to the settings
// default. Unlocking a day with no plan is a no-op.
func (g *LockGovernor) UnlockDay(date string, plans domain.PlanSet, settings domain.Settings) *domain.StudyPlan {
	plan := plans.Get(date)
	if plan == nil {
		return nil
	}
	plan.Unlock(settings.DailyAvailableHours)
	g.logger.Info("day unlocked", "date", date)
	return plan
}

// ValidateLockedDaysIntegrity compares a before and after snapshot: every
// plan locked in before must still exist, still be locked, and hold the same
// sessions with unchanged times and hours. Differences are reported as
// human-readable violations; an empty result means the pass was clean.
func ValidateLockedDaysIntegrity(before, after domain.PlanSet) []string {
	violations := make([]string, 0)

	for _, date := range before.Dates() {
		prior := before[date]
		if !prior.IsLocked() {
			continue
		}

		current := after.Get(date)
		if current == nil {
			violations = append(violations, fmt.Sprintf("locked plan %s is missing", date))
			continue
		}
		if !current.IsLocked() {
			violations = append(violations, fmt.Sprintf("locked plan %s was unlocked", date))
		}
		if len(current.Sessions()) != len(prior.Sessions()) {
			violations = append(violations, fmt.Sprintf(
				"locked plan %s session count changed from %d to %d",
				date, len(prior.Sessions()), len(current.Sessions()),
			))
			continue
		}
		for i, was := range prior.Sessions() {
			is := current.Sessions()[i]
			if is.StartTime() != was.StartTime() ||
				is.EndTime() != was.EndTime() ||
				is.AllocatedHours() != was.AllocatedHours() {
				violations = append(violations, fmt.Sprintf(
					"locked plan %s session %d for task %s was mutated",
					date, was.SessionNumber(), was.TaskID(),
				))
			}
		}
	}

	return violations
}
