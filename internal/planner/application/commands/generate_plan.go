package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

// GeneratePlanCommand triggers a full plan generation pass.
type GeneratePlanCommand struct {
	// Today overrides the reference date; empty means the current date.
	Today string
}

func (c GeneratePlanCommand) CommandName() string { return "plan.generate" }

// GeneratePlanResult reports what the pass produced.
type GeneratePlanResult struct {
	Outcomes    []services.TaskOutcome
	DaysPlanned int
}

// GeneratePlanHandler handles the GeneratePlanCommand.
type GeneratePlanHandler struct {
	taskRepo       domain.TaskRepository
	planRepo       domain.PlanRepository
	commitmentRepo domain.CommitmentRepository
	settingsRepo   domain.SettingsRepository
	generator      *services.Generator
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewGeneratePlanHandler creates a new GeneratePlanHandler.
func NewGeneratePlanHandler(
	taskRepo domain.TaskRepository,
	planRepo domain.PlanRepository,
	commitmentRepo domain.CommitmentRepository,
	settingsRepo domain.SettingsRepository,
	generator *services.Generator,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *GeneratePlanHandler {
	return &GeneratePlanHandler{
		taskRepo:       taskRepo,
		planRepo:       planRepo,
		commitmentRepo: commitmentRepo,
		settingsRepo:   settingsRepo,
		generator:      generator,
		uow:            uow,
		logger:         logger,
	}
}

// Handle executes the GeneratePlanCommand.
func (h *GeneratePlanHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) (*GeneratePlanResult, error) {
	today := cmd.Today
	if today == "" {
		today = domain.DateOf(time.Now())
	}
	start := time.Now()
	opLogger := observability.LogOperation(h.logger, cmd.CommandName(), "today", today)

	var result *GeneratePlanResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		settings, err := h.settingsRepo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		tasks, err := h.taskRepo.FindPending(txCtx)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		commitments, err := h.commitmentRepo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("loading commitments: %w", err)
		}
		plans, err := h.planRepo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("loading plans: %w", err)
		}

		generated := h.generator.Generate(services.GenerateInput{
			Tasks:       tasks,
			Settings:    settings,
			Commitments: commitments,
			Plans:       plans,
			Today:       today,
		})

		if violations := services.ValidateLockedDaysIntegrity(plans, generated.Plans); len(violations) > 0 {
			return fmt.Errorf("locked day integrity violated: %s", strings.Join(violations, "; "))
		}

		if err := h.planRepo.SaveSet(txCtx, generated.Plans); err != nil {
			return fmt.Errorf("saving plans: %w", err)
		}

		result = &GeneratePlanResult{
			Outcomes:    generated.Outcomes,
			DaysPlanned: len(generated.Plans.Dates()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	opLogger.Info("plan generated", "tasks", len(result.Outcomes))
	observability.LogDuration(h.logger, cmd.CommandName(), start)
	return result, nil
}
