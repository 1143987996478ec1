package services

import (
	"log/slog"
	"sort"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// Combiner merges fragmented same-task sessions on a single day into one
// contiguous block.
type Combiner struct {
	logger *slog.Logger
}

// NewCombiner creates a session combiner.
func NewCombiner(logger *slog.Logger) *Combiner {
	return &Combiner{logger: logger}
}

// CombineSessions groups a day's active sessions by task and, for any task
// with more than one, replaces the group with a single session starting at
// the earliest start time and lasting the summed duration, carrying the
// group's minimum session number. Merges outside the configured length
// bounds, or on a locked day, are left alone. Returns how many merges ran.
func (c *Combiner) CombineSessions(date string, plans domain.PlanSet, settings domain.Settings) int {
	plan := plans.Get(date)
	if plan == nil || plan.IsLocked() {
		return 0
	}

	groups := make(map[uuid.UUID][]*domain.Session)
	order := make([]uuid.UUID, 0)
	for _, s := range plan.Sessions() {
		if s.IsSettled() {
			continue
		}
		if _, seen := groups[s.TaskID()]; !seen {
			order = append(order, s.TaskID())
		}
		groups[s.TaskID()] = append(groups[s.TaskID()], s)
	}

	minHours := float64(settings.MinSessionMinutes) / 60
	maxHours := settings.MaxSessionHours()

	merged := 0
	for _, taskID := range order {
		group := groups[taskID]
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartMinute() < group[j].StartMinute()
		})

		total := 0.0
		number := group[0].SessionNumber()
		for _, s := range group {
			total += s.AllocatedHours()
			if s.SessionNumber() < number {
				number = s.SessionNumber()
			}
		}
		if total < minHours-hoursEps || total > maxHours+hoursEps {
			continue
		}

		start := group[0].StartMinute()
		span := domain.Interval{Start: start, End: start + minutesOf(total)}
		if overlapsOtherTasks(plan, taskID, group, span) {
			c.logger.Warn("merge would collide with another task's session, skipping",
				"date", date, "task", taskID)
			continue
		}

		for _, s := range group {
			if err := plan.RemoveSession(s.ID()); err != nil {
				continue
			}
		}

		combined, err := domain.NewSession(
			taskID,
			number,
			domain.ToClock(span.Start),
			domain.ToClock(span.End),
			total,
		)
		if err != nil {
			continue
		}
		if err := plan.AddSession(combined); err != nil {
			c.logger.Warn("failed to insert combined session", "date", date, "error", err)
			continue
		}
		merged++
	}

	return merged
}

func overlapsOtherTasks(plan *domain.StudyPlan, taskID uuid.UUID, group []*domain.Session, span domain.Interval) bool {
	inGroup := make(map[uuid.UUID]bool, len(group))
	for _, s := range group {
		inGroup[s.ID()] = true
	}
	for _, s := range plan.Sessions() {
		if inGroup[s.ID()] || s.Status() == domain.SessionSkipped {
			continue
		}
		if s.TimeRange().Overlaps(span) {
			return true
		}
	}
	return false
}
