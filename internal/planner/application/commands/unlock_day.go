package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
)

// ErrNoPlanForDate means no plan exists on the requested date.
var ErrNoPlanForDate = errors.New("no plan exists for that date")

// UnlockDayCommand reopens a locked day for planning.
type UnlockDayCommand struct {
	Date string
}

func (c UnlockDayCommand) CommandName() string { return "plan.unlock" }

// UnlockDayHandler handles the UnlockDayCommand.
type UnlockDayHandler struct {
	planRepo     domain.PlanRepository
	settingsRepo domain.SettingsRepository
	uow          sharedApplication.UnitOfWork
	logger       *slog.Logger
}

// NewUnlockDayHandler creates a new UnlockDayHandler.
func NewUnlockDayHandler(
	planRepo domain.PlanRepository,
	settingsRepo domain.SettingsRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *UnlockDayHandler {
	return &UnlockDayHandler{
		planRepo:     planRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
		logger:       logger,
	}
}

// Handle executes the UnlockDayCommand.
func (h *UnlockDayHandler) Handle(ctx context.Context, cmd UnlockDayCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		plan.Unlock(settings.DailyAvailableHours)
		if err := h.planRepo.Save(txCtx, plan); err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}

		h.logger.Info("day unlocked", "date", cmd.Date)
		return nil
	})
}
