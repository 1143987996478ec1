package queries

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/google/uuid"
)

// RemainingHoursQuery reports outstanding work per pending task.
type RemainingHoursQuery struct{}

func (q RemainingHoursQuery) QueryName() string { return "task.remaining" }

// TaskProgress is one task's bookkeeping snapshot.
type TaskProgress struct {
	TaskID         uuid.UUID
	Title          string
	Deadline       string
	Important      bool
	EstimatedHours float64
	RemainingHours float64
	OpenSessions   int
}

// RemainingHoursHandler handles the RemainingHoursQuery.
type RemainingHoursHandler struct {
	taskRepo domain.TaskRepository
	planRepo domain.PlanRepository
}

// NewRemainingHoursHandler creates a new RemainingHoursHandler.
func NewRemainingHoursHandler(taskRepo domain.TaskRepository, planRepo domain.PlanRepository) *RemainingHoursHandler {
	return &RemainingHoursHandler{taskRepo: taskRepo, planRepo: planRepo}
}

// Handle executes the RemainingHoursQuery.
func (h *RemainingHoursHandler) Handle(ctx context.Context, _ RemainingHoursQuery) ([]TaskProgress, error) {
	tasks, err := h.taskRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := h.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	progress := make([]TaskProgress, 0, len(tasks))
	for _, t := range tasks {
		progress = append(progress, TaskProgress{
			TaskID:         t.ID(),
			Title:          t.Title(),
			Deadline:       t.Deadline(),
			Important:      t.IsImportant(),
			EstimatedHours: t.EstimatedHours(),
			RemainingHours: services.RemainingHours(t, plans),
			OpenSessions:   len(services.UnlockedSessions(t.ID(), plans)),
		})
	}

	return progress, nil
}
