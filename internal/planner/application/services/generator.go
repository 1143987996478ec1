package services

import (
	"log/slog"
	"sort"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// GenerateInput is the full snapshot a generation pass works from. The pass
// never mutates the caller's plans; it clones them and returns the clone.
type GenerateInput struct {
	Tasks       []*domain.Task
	Settings    domain.Settings
	Commitments []*domain.FixedCommitment
	Plans       domain.PlanSet
	Today       string
}

// TaskOutcome reports how much of one task's outstanding hours found a home.
type TaskOutcome struct {
	TaskID        uuid.UUID
	Title         string
	RequiredHours float64
	PlacedHours   float64
	Reason        string
}

// GenerateResult is the updated plan collection plus per-task diagnostics.
type GenerateResult struct {
	Plans    domain.PlanSet
	Outcomes []TaskOutcome
}

// Generator produces day-by-day session assignments for pending tasks. It is
// a greedy, deterministic allocator: re-running the same inputs yields the
// same outputs.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a plan generator.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{logger: logger}
}

// orderedTask pairs a task with the distribution strategy its ordering
// policy assigned to it.
type orderedTask struct {
	task     *domain.Task
	strategy Strategy
}

// Generate runs a full generation pass per the configured plan mode. Locked
// days are copied as-is and can never receive or lose a session.
func (g *Generator) Generate(in GenerateInput) GenerateResult {
	working := in.Plans.Clone()

	// Session numbers are strictly increasing over a task's lifetime and
	// never reused, so the counters must be seeded before any purge.
	nextNumber := make(map[uuid.UUID]int)
	for _, t := range in.Tasks {
		nextNumber[t.ID()] = working.MaxSessionNumber(t.ID())
	}

	pending := make([]*domain.Task, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		if !t.IsPending() {
			continue
		}
		t.SetRemainingHours(RemainingHours(t, working))
		if t.RemainingHours() <= hoursEps {
			continue
		}
		pending = append(pending, t)
	}

	for _, t := range pending {
		RemoveUnlockedSessions(t.ID(), working)
	}

	ordered := orderTasks(pending, in.Settings.PlanMode, in.Today)

	outcomes := make([]TaskOutcome, 0, len(ordered))
	for _, ot := range ordered {
		outcomes = append(outcomes, g.scheduleTask(ot, working, in, nextNumber))
	}

	return GenerateResult{Plans: working, Outcomes: outcomes}
}

func (g *Generator) scheduleTask(
	ot orderedTask,
	working domain.PlanSet,
	in GenerateInput,
	nextNumber map[uuid.UUID]int,
) TaskOutcome {
	task := ot.task
	outcome := TaskOutcome{
		TaskID:        task.ID(),
		Title:         task.Title(),
		RequiredHours: task.RemainingHours(),
	}

	eligible := EligibleDays(in.Today, task.BufferedDeadline(in.Settings.BufferDays), working, in.Settings)
	if len(eligible) == 0 {
		outcome.Reason = "no eligible days before deadline"
		g.logger.Warn("task has no eligible days, skipping",
			"task", task.Title(),
			"deadline", task.Deadline(),
		)
		return outcome
	}

	alloc := Distribute(task.RemainingHours(), len(eligible), ot.strategy)

	for i, date := range eligible {
		hours := alloc[i]
		if hours <= hoursEps {
			continue
		}

		window, ok := firstFittingWindow(date, hours, working, in.Commitments, in.Settings)
		if !ok {
			// That portion of the task's hours is not placed; surfaced via
			// the outcome totals rather than a hard error.
			continue
		}

		nextNumber[task.ID()]++
		start := domain.ToMinutes(window.Start)
		session, err := domain.NewSession(
			task.ID(),
			nextNumber[task.ID()],
			window.Start,
			domain.ToClock(start+minutesOf(hours)),
			hours,
		)
		if err != nil {
			g.logger.Warn("skipping invalid session placement", "task", task.Title(), "error", err)
			continue
		}

		plan := working.Ensure(date, in.Settings.DailyAvailableHours)
		if err := plan.AddSession(session); err != nil {
			// Inserting into a locked plan is rejected and becomes a no-op.
			g.logger.Warn("session insert rejected", "date", date, "error", err)
			continue
		}
		outcome.PlacedHours += hours
	}

	if outcome.PlacedHours+hoursEps < outcome.RequiredHours {
		outcome.Reason = "insufficient free time before deadline"
	}
	return outcome
}

// EligibleDays returns the work weekdays strictly after today up to and
// including the buffered deadline, excluding locked days.
func EligibleDays(today, bufferedDeadline string, plans domain.PlanSet, settings domain.Settings) []string {
	days := make([]string, 0)
	for date := domain.AddDays(today, 1); date <= bufferedDeadline; date = domain.AddDays(date, 1) {
		if !settings.IsWorkDay(domain.WeekdayOf(date)) {
			continue
		}
		if plans.IsLockedDay(date) {
			continue
		}
		days = append(days, date)
	}
	return days
}

func firstFittingWindow(
	date string,
	hours float64,
	plans domain.PlanSet,
	commitments []*domain.FixedCommitment,
	settings domain.Settings,
) (FreeWindow, bool) {
	for _, w := range DayFreeWindows(date, plans, commitments, settings) {
		if w.DurationHours+hoursEps >= hours {
			return w, true
		}
	}
	return FreeWindow{}, false
}

// orderTasks applies the configured task-ordering policy. Ordering matters
// because later tasks see less availability.
func orderTasks(tasks []*domain.Task, mode domain.PlanMode, today string) []orderedTask {
	switch mode {
	case domain.PlanModeBalanced:
		return orderBalanced(tasks)
	case domain.PlanModeEisenhower:
		return orderEisenhower(tasks, today)
	default:
		return orderEven(tasks)
	}
}

// orderEven sorts by importance, then deadline, and schedules everything with
// the even strategy.
func orderEven(tasks []*domain.Task) []orderedTask {
	sorted := sortTasks(tasks)
	ordered := make([]orderedTask, len(sorted))
	for i, t := range sorted {
		ordered[i] = orderedTask{task: t, strategy: StrategyEven}
	}
	return ordered
}

// orderBalanced schedules important tasks first, then the rest; every task is
// still independently distributed evenly.
func orderBalanced(tasks []*domain.Task) []orderedTask {
	important := make([]*domain.Task, 0)
	rest := make([]*domain.Task, 0)
	for _, t := range tasks {
		if t.IsImportant() {
			important = append(important, t)
		} else {
			rest = append(rest, t)
		}
	}

	ordered := make([]orderedTask, 0, len(tasks))
	for _, t := range sortTasks(important) {
		ordered = append(ordered, orderedTask{task: t, strategy: StrategyEven})
	}
	for _, t := range sortTasks(rest) {
		ordered = append(ordered, orderedTask{task: t, strategy: StrategyEven})
	}
	return ordered
}

// orderEisenhower buckets tasks by importance and urgency and processes the
// quadrants Do-First through Eliminate, each with its own strategy.
func orderEisenhower(tasks []*domain.Task, today string) []orderedTask {
	buckets := map[domain.Quadrant][]*domain.Task{}
	for _, t := range tasks {
		q := t.QuadrantAsOf(today)
		buckets[q] = append(buckets[q], t)
	}

	quadrantOrder := []struct {
		quadrant domain.Quadrant
		strategy Strategy
	}{
		{domain.ImportantUrgent, StrategyFrontLoad},
		{domain.ImportantNotUrgent, StrategyEven},
		{domain.NotImportantUrgent, StrategyFrontLoad},
		{domain.NotImportantNotUrgent, StrategyBackLoad},
	}

	ordered := make([]orderedTask, 0, len(tasks))
	for _, q := range quadrantOrder {
		for _, t := range sortTasks(buckets[q.quadrant]) {
			ordered = append(ordered, orderedTask{task: t, strategy: q.strategy})
		}
	}
	return ordered
}

// sortTasks orders by importance desc, deadline asc, then title and ID for a
// deterministic tie-break.
func sortTasks(tasks []*domain.Task) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsImportant() != sorted[j].IsImportant() {
			return sorted[i].IsImportant()
		}
		if sorted[i].Deadline() != sorted[j].Deadline() {
			return sorted[i].Deadline() < sorted[j].Deadline()
		}
		if sorted[i].Title() != sorted[j].Title() {
			return sorted[i].Title() < sorted[j].Title()
		}
		return sorted[i].ID().String() < sorted[j].ID().String()
	})
	return sorted
}
