package services

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// slotSearchHorizonDays bounds any forward slot search.
const slotSearchHorizonDays = 30

// evictionHorizonDays bounds the search for a new home when a day is locked.
const evictionHorizonDays = 14

// Priority weights are policy, not incidental; they live here so a weight
// change is auditable in one place.
const (
	priorityImportant        = 1000
	priorityOverdue          = 2000
	priorityDeadlineBase     = 100
	evictionDeadlineWithin1  = 500
	evictionDeadlineWithin3  = 300
	evictionDeadlineWithin7  = 200
)

// missedRedistributionPriority scores a missed session for redistribution
// ordering: importance adds 1000; a passed deadline adds 2000, otherwise
// closeness to the deadline adds up to 100.
func missedRedistributionPriority(task *domain.Task, today string) int {
	score := 0
	if task.IsImportant() {
		score += priorityImportant
	}
	days := task.DaysUntilDeadline(today)
	if days < 0 {
		score += priorityOverdue
	} else if days < priorityDeadlineBase {
		score += priorityDeadlineBase - days
	}
	return score
}

// evictionPriority scores a session displaced by a day lock: importance adds
// 1000; deadlines within 1, 3, or 7 days add 500, 300, or 200.
func evictionPriority(task *domain.Task, today string) int {
	score := 0
	if task.IsImportant() {
		score += priorityImportant
	}
	switch days := task.DaysUntilDeadline(today); {
	case days <= 1:
		score += evictionDeadlineWithin1
	case days <= 3:
		score += evictionDeadlineWithin3
	case days <= 7:
		score += evictionDeadlineWithin7
	}
	return score
}

// MovedSession describes a successful relocation.
type MovedSession struct {
	TaskID        uuid.UUID
	TaskTitle     string
	SessionNumber int
	Hours         float64
	FromDate      string
	FromTime      string
	ToDate        string
	ToTime        string
}

// FailedSession describes a session that could not be relocated. It is left
// in place.
type FailedSession struct {
	TaskID        uuid.UUID
	TaskTitle     string
	SessionNumber int
	Hours         float64
	Date          string
	Reason        string
}

// RedistributionSummary is the structured feedback for a redistribution pass.
type RedistributionSummary struct {
	Moved       int
	Failed      int
	Success     bool
	Suggestions []string
}

// RedistributeResult carries the updated plans plus the full outcome report.
type RedistributeResult struct {
	Plans   domain.PlanSet
	Moved   []MovedSession
	Failed  []FailedSession
	Summary RedistributionSummary
}

// Redistributor moves sessions that can no longer stay where they are: missed
// sessions on past days, and sessions displaced when a day is locked. It
// never writes to, or removes, sessions on a locked plan.
type Redistributor struct {
	logger *slog.Logger
}

// NewRedistributor creates a redistributor.
func NewRedistributor(logger *slog.Logger) *Redistributor {
	return &Redistributor{logger: logger}
}

// candidate is a session queued for relocation.
type candidate struct {
	placed   domain.PlacedSession
	task     *domain.Task
	priority int
}

// RedistributeMissed scans every unlocked plan dated before today for missed
// sessions of still-pending tasks and moves each to the next feasible slot
// before the task's buffered deadline, in priority order.
func (r *Redistributor) RedistributeMissed(
	plans domain.PlanSet,
	tasks []*domain.Task,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
	today string,
	now time.Time,
) RedistributeResult {
	working := plans.Clone()
	taskByID := indexTasks(tasks)

	candidates := make([]candidate, 0)
	for _, date := range working.Dates() {
		if date >= today {
			break
		}
		plan := working[date]
		if plan.IsLocked() {
			continue
		}
		for _, s := range plan.Sessions() {
			if !s.IsMissedOn(date, now) {
				continue
			}
			task, ok := taskByID[s.TaskID()]
			if !ok || !task.IsPending() {
				continue
			}
			candidates = append(candidates, candidate{
				placed:   domain.PlacedSession{Date: date, Plan: plan, Session: s},
				task:     task,
				priority: missedRedistributionPriority(task, today),
			})
		}
	}
	sortCandidates(candidates)

	result := RedistributeResult{Plans: working}
	for _, c := range candidates {
		deadline := c.task.BufferedDeadline(settings.BufferDays)
		horizon := domain.DaysBetween(today, deadline) + 1
		if horizon > slotSearchHorizonDays {
			horizon = slotSearchHorizonDays
		}
		if horizon <= 0 {
			r.fail(&result, c, "deadline has already passed")
			continue
		}

		slot, ok := FindNextSlot(
			c.placed.Session.AllocatedHours(),
			today,
			horizon,
			c.placed.Date,
			working,
			commitments,
			settings,
		)
		if !ok {
			r.fail(&result, c, "no available slots found before deadline")
			continue
		}

		r.move(&result, c, slot, working, settings, now)
	}

	result.Summary = summarize(result)
	return result
}

// EvictLockedDay relocates every unsettled session of a still-pending task
// away from a day that is about to be locked. Destinations must be work days
// within the next 14 days (and the buffered deadline), unlocked, and with
// spare capacity for the session's hours.
func (r *Redistributor) EvictLockedDay(
	lockDate string,
	plans domain.PlanSet,
	tasks []*domain.Task,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
	today string,
	now time.Time,
) RedistributeResult {
	working := plans.Clone()
	taskByID := indexTasks(tasks)

	result := RedistributeResult{Plans: working}
	origin := working.Get(lockDate)
	if origin == nil || origin.IsLocked() {
		result.Summary = summarize(result)
		return result
	}

	candidates := make([]candidate, 0)
	for _, s := range origin.Sessions() {
		if s.IsSettled() {
			continue
		}
		task, ok := taskByID[s.TaskID()]
		if !ok || !task.IsPending() {
			continue
		}
		candidates = append(candidates, candidate{
			placed:   domain.PlacedSession{Date: lockDate, Plan: origin, Session: s},
			task:     task,
			priority: evictionPriority(task, today),
		})
	}
	sortCandidates(candidates)

	for _, c := range candidates {
		slot, ok := r.findEvictionSlot(c, lockDate, working, commitments, settings)
		if !ok {
			r.fail(&result, c, "no available slots found within deadline")
			continue
		}
		r.move(&result, c, slot, working, settings, now)
	}

	result.Summary = summarize(result)
	return result
}

func (r *Redistributor) findEvictionSlot(
	c candidate,
	lockDate string,
	working domain.PlanSet,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
) (SlotMatch, bool) {
	hours := c.placed.Session.AllocatedHours()
	deadline := c.task.BufferedDeadline(settings.BufferDays)

	for offset := 1; offset <= evictionHorizonDays; offset++ {
		date := domain.AddDays(lockDate, offset)
		if date > deadline {
			break
		}
		if !settings.IsWorkDay(domain.WeekdayOf(date)) {
			continue
		}
		if working.IsLockedDay(date) {
			continue
		}

		load := 0.0
		if plan := working.Get(date); plan != nil {
			load = plan.TotalStudyHours()
		}
		if load+hours > settings.DailyAvailableHours+hoursEps {
			continue
		}

		for _, w := range DayFreeWindows(date, working, commitments, settings) {
			if w.DurationHours+hoursEps < hours {
				continue
			}
			start := domain.ToMinutes(w.Start)
			return SlotMatch{
				Date:  date,
				Start: w.Start,
				End:   domain.ToClock(start + minutesOf(hours)),
			}, true
		}
	}
	return SlotMatch{}, false
}

// move deletes the session from its unlocked origin plan and appends a
// replacement, tagged rescheduled with provenance, to the destination plan.
// Both plans' totals are recomputed.
func (r *Redistributor) move(
	result *RedistributeResult,
	c candidate,
	slot SlotMatch,
	working domain.PlanSet,
	settings domain.Settings,
	now time.Time,
) {
	session := c.placed.Session
	if err := c.placed.Plan.RemoveSession(session.ID()); err != nil {
		r.fail(result, c, err.Error())
		return
	}

	replacement, err := domain.NewSession(
		session.TaskID(),
		session.SessionNumber(),
		slot.Start,
		slot.End,
		session.AllocatedHours(),
	)
	if err != nil {
		r.fail(result, c, err.Error())
		return
	}
	replacement.MarkRescheduled(c.placed.Date, session.StartTime(), now)

	target := working.Ensure(slot.Date, settings.DailyAvailableHours)
	if err := target.AddSession(replacement); err != nil {
		r.fail(result, c, err.Error())
		return
	}
	target.AddDomainEvent(domain.NewSessionMoved(
		target.ID(), session.TaskID(), session.SessionNumber(), c.placed.Date, slot.Date,
	))

	result.Moved = append(result.Moved, MovedSession{
		TaskID:        session.TaskID(),
		TaskTitle:     c.task.Title(),
		SessionNumber: session.SessionNumber(),
		Hours:         session.AllocatedHours(),
		FromDate:      c.placed.Date,
		FromTime:      session.StartTime(),
		ToDate:        slot.Date,
		ToTime:        slot.Start,
	})

	r.logger.Info("session redistributed",
		"task", c.task.Title(),
		"from", c.placed.Date,
		"to", slot.Date,
	)
}

func (r *Redistributor) fail(result *RedistributeResult, c candidate, reason string) {
	result.Failed = append(result.Failed, FailedSession{
		TaskID:        c.placed.Session.TaskID(),
		TaskTitle:     c.task.Title(),
		SessionNumber: c.placed.Session.SessionNumber(),
		Hours:         c.placed.Session.AllocatedHours(),
		Date:          c.placed.Date,
		Reason:        reason,
	})
	r.logger.Warn("session redistribution failed",
		"task", c.task.Title(),
		"date", c.placed.Date,
		"reason", reason,
	)
}

// sortCandidates orders by priority descending with a deterministic date and
// session-number tie-break.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		if candidates[i].placed.Date != candidates[j].placed.Date {
			return candidates[i].placed.Date < candidates[j].placed.Date
		}
		return candidates[i].placed.Session.SessionNumber() < candidates[j].placed.Session.SessionNumber()
	})
}

func summarize(result RedistributeResult) RedistributionSummary {
	summary := RedistributionSummary{
		Moved:   len(result.Moved),
		Failed:  len(result.Failed),
		Success: len(result.Failed) == 0,
	}
	if summary.Failed > 0 {
		summary.Suggestions = append(summary.Suggestions,
			"increase your daily available hours or widen the study window",
		)
		seen := make(map[uuid.UUID]bool)
		for _, f := range result.Failed {
			if seen[f.TaskID] {
				continue
			}
			seen[f.TaskID] = true
			summary.Suggestions = append(summary.Suggestions,
				fmt.Sprintf("extend the deadline for %q or reduce its estimate", f.TaskTitle),
			)
		}
	}
	return summary
}

func indexTasks(tasks []*domain.Task) map[uuid.UUID]*domain.Task {
	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID()] = t
	}
	return byID
}
