package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
)

// CombineSessionsCommand merges a day's fragmented same-task sessions.
type CombineSessionsCommand struct {
	Date string
}

func (c CombineSessionsCommand) CommandName() string { return "plan.combine" }

// CombineSessionsResult reports how many merges ran.
type CombineSessionsResult struct {
	Merged int
}

// CombineSessionsHandler handles the CombineSessionsCommand.
type CombineSessionsHandler struct {
	planRepo     domain.PlanRepository
	settingsRepo domain.SettingsRepository
	combiner     *services.Combiner
	uow          sharedApplication.UnitOfWork
	logger       *slog.Logger
}

// NewCombineSessionsHandler creates a new CombineSessionsHandler.
func NewCombineSessionsHandler(
	planRepo domain.PlanRepository,
	settingsRepo domain.SettingsRepository,
	combiner *services.Combiner,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *CombineSessionsHandler {
	return &CombineSessionsHandler{
		planRepo:     planRepo,
		settingsRepo: settingsRepo,
		combiner:     combiner,
		uow:          uow,
		logger:       logger,
	}
}

// Handle executes the CombineSessionsCommand.
func (h *CombineSessionsHandler) Handle(ctx context.Context, cmd CombineSessionsCommand) (*CombineSessionsResult, error) {
	var result *CombineSessionsResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		settings, err := h.settingsRepo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		plan, err := h.planRepo.FindByDate(txCtx, cmd.Date)
		if err != nil {
			return err
		}
		if plan == nil {
			return ErrNoPlanForDate
		}

		plans := domain.NewPlanSet()
		plans[cmd.Date] = plan
		merged := h.combiner.CombineSessions(cmd.Date, plans, settings)

		if merged > 0 {
			if err := h.planRepo.Save(txCtx, plan); err != nil {
				return fmt.Errorf("saving plan: %w", err)
			}
		}
		result = &CombineSessionsResult{Merged: merged}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("sessions combined", "date", cmd.Date, "merged", result.Merged)
	return result, nil
}
