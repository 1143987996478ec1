package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	"github.com/google/uuid"
)

// CompleteTaskCommand marks a task as finished. Open sessions of the task on
// unlocked days are removed; settled ones stay for the record.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
}

func (c CompleteTaskCommand) CommandName() string { return "task.complete" }

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo domain.TaskRepository
	planRepo domain.PlanRepository
	uow      sharedApplication.UnitOfWork
	logger   *slog.Logger
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(
	taskRepo domain.TaskRepository,
	planRepo domain.PlanRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *CompleteTaskHandler {
	return &CompleteTaskHandler{
		taskRepo: taskRepo,
		planRepo: planRepo,
		uow:      uow,
		logger:   logger,
	}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if err := task.Complete(); err != nil {
			return err
		}

		plans, err := h.planRepo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("loading plans: %w", err)
		}
		touched := domain.NewPlanSet()
		for _, placed := range plans.SessionsForTask(task.ID()) {
			if placed.Plan.IsLocked() || placed.Session.IsSettled() {
				continue
			}
			if err := placed.Plan.RemoveSession(placed.Session.ID()); err != nil {
				return err
			}
			touched[placed.Date] = placed.Plan
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return fmt.Errorf("saving task: %w", err)
		}
		if len(touched) > 0 {
			if err := h.planRepo.SaveSet(txCtx, touched); err != nil {
				return fmt.Errorf("saving plans: %w", err)
			}
		}

		h.logger.Info("task completed", "task", task.Title(), "sessions_removed", len(touched))
		return nil
	})
}
