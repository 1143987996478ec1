package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	Title           string
	EstimatedHours  float64
	Deadline        string
	Important       bool
	Frequency       domain.Frequency
	MinBlockMinutes int
	Today           string
}

func (c CreateTaskCommand) CommandName() string { return "task.create" }

// CreateTaskResult carries the new task's id and its feasibility verdict.
// An infeasible task is still created; the verdict is advisory.
type CreateTaskResult struct {
	TaskID      uuid.UUID
	Feasibility services.FeasibilityResult
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo     domain.TaskRepository
	settingsRepo domain.SettingsRepository
	uow          sharedApplication.UnitOfWork
	logger       *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(
	taskRepo domain.TaskRepository,
	settingsRepo domain.SettingsRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:     taskRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
		logger:       logger,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	today := cmd.Today
	if today == "" {
		today = domain.DateOf(time.Now())
	}

	var result *CreateTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := domain.NewTask(cmd.Title, cmd.EstimatedHours, cmd.Deadline, cmd.Important)
		if err != nil {
			return err
		}
		if cmd.Frequency != domain.FrequencyFlexible {
			task.SetFrequency(cmd.Frequency)
		}
		if cmd.MinBlockMinutes > 0 {
			task.SetMinBlockMinutes(cmd.MinBlockMinutes)
		}

		settings, err := h.settingsRepo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		feasibility := services.CheckFrequencyDeadlineConflict(task, settings, today)
		if !feasibility.Feasible {
			h.logger.Warn("task created but looks infeasible",
				"task", task.Title(),
				"reason", feasibility.Reason,
			)
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return fmt.Errorf("saving task: %w", err)
		}

		result = &CreateTaskResult{TaskID: task.ID(), Feasibility: feasibility}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
