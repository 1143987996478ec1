package queries

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// GetPlanQuery fetches the plans in a date range, inclusive on both ends.
// An empty To means a single day.
type GetPlanQuery struct {
	From string
	To   string
}

func (q GetPlanQuery) QueryName() string { return "plan.get" }

// SessionView is one scheduled session with its task context resolved.
type SessionView struct {
	TaskID        uuid.UUID
	TaskTitle     string
	SessionNumber int
	StartTime     string
	EndTime       string
	Hours         float64
	Status        string
	Done          bool
	MovedFrom     string
}

// DayView is one day of the plan.
type DayView struct {
	Date            string
	Locked          bool
	TotalStudyHours float64
	AvailableHours  float64
	Sessions        []SessionView
}

// GetPlanHandler handles the GetPlanQuery.
type GetPlanHandler struct {
	planRepo domain.PlanRepository
	taskRepo domain.TaskRepository
}

// NewGetPlanHandler creates a new GetPlanHandler.
func NewGetPlanHandler(planRepo domain.PlanRepository, taskRepo domain.TaskRepository) *GetPlanHandler {
	return &GetPlanHandler{planRepo: planRepo, taskRepo: taskRepo}
}

// Handle executes the GetPlanQuery.
func (h *GetPlanHandler) Handle(ctx context.Context, query GetPlanQuery) ([]DayView, error) {
	to := query.To
	if to == "" {
		to = query.From
	}

	plans, err := h.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[uuid.UUID]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID()] = t.Title()
	}

	views := make([]DayView, 0)
	for _, date := range plans.Dates() {
		if date < query.From || date > to {
			continue
		}
		plan := plans[date]

		view := DayView{
			Date:            date,
			Locked:          plan.IsLocked(),
			TotalStudyHours: plan.TotalStudyHours(),
			AvailableHours:  plan.AvailableHours(),
			Sessions:        make([]SessionView, 0, len(plan.Sessions())),
		}
		for _, s := range plan.Sessions() {
			view.Sessions = append(view.Sessions, SessionView{
				TaskID:        s.TaskID(),
				TaskTitle:     titles[s.TaskID()],
				SessionNumber: s.SessionNumber(),
				StartTime:     s.StartTime(),
				EndTime:       s.EndTime(),
				Hours:         s.AllocatedHours(),
				Status:        s.Status().String(),
				Done:          s.IsDone(),
				MovedFrom:     s.OriginalDate(),
			})
		}
		views = append(views, view)
	}

	return views, nil
}
