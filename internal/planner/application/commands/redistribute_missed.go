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

// RedistributeMissedCommand moves missed sessions on past days to new slots.
type RedistributeMissedCommand struct {
	Today string
	Now   time.Time
}

func (c RedistributeMissedCommand) CommandName() string { return "plan.redistribute" }

// RedistributeMissedHandler handles the RedistributeMissedCommand.
type RedistributeMissedHandler struct {
	taskRepo       domain.TaskRepository
	planRepo       domain.PlanRepository
	commitmentRepo domain.CommitmentRepository
	settingsRepo   domain.SettingsRepository
	logRepo        domain.RedistributionLogRepository
	redistributor  *services.Redistributor
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewRedistributeMissedHandler creates a new RedistributeMissedHandler.
func NewRedistributeMissedHandler(
	taskRepo domain.TaskRepository,
	planRepo domain.PlanRepository,
	commitmentRepo domain.CommitmentRepository,
	settingsRepo domain.SettingsRepository,
	logRepo domain.RedistributionLogRepository,
	redistributor *services.Redistributor,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *RedistributeMissedHandler {
	return &RedistributeMissedHandler{
		taskRepo:       taskRepo,
		planRepo:       planRepo,
		commitmentRepo: commitmentRepo,
		settingsRepo:   settingsRepo,
		logRepo:        logRepo,
		redistributor:  redistributor,
		uow:            uow,
		logger:         logger,
	}
}

// Handle executes the RedistributeMissedCommand.
func (h *RedistributeMissedHandler) Handle(ctx context.Context, cmd RedistributeMissedCommand) (*services.RedistributeResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := cmd.Today
	if today == "" {
		today = domain.DateOf(now)
	}

	var result services.RedistributeResult

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

		result = h.redistributor.RedistributeMissed(plans, tasks, commitments, settings, today, now)

		if err := h.planRepo.SaveSet(txCtx, result.Plans); err != nil {
			return fmt.Errorf("saving plans: %w", err)
		}
		return logRedistribution(txCtx, h.logRepo, result, domain.RedistributionMissed, now)
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("redistribution finished",
		"moved", result.Summary.Moved,
		"failed", result.Summary.Failed,
	)
	return &result, nil
}

// logRedistribution writes one audit record per attempted move.
func logRedistribution(
	ctx context.Context,
	logRepo domain.RedistributionLogRepository,
	result services.RedistributeResult,
	trigger domain.RedistributionTrigger,
	now time.Time,
) error {
	for _, m := range result.Moved {
		record := domain.RedistributionRecord{
			ID:            uuid.New(),
			TaskID:        m.TaskID,
			SessionNumber: m.SessionNumber,
			Trigger:       trigger,
			AttemptedAt:   now,
			FromDate:      m.FromDate,
			FromTime:      m.FromTime,
			ToDate:        m.ToDate,
			ToTime:        m.ToTime,
			Hours:         m.Hours,
			Success:       true,
		}
		if err := logRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("logging redistribution: %w", err)
		}
	}
	for _, f := range result.Failed {
		record := domain.RedistributionRecord{
			ID:            uuid.New(),
			TaskID:        f.TaskID,
			SessionNumber: f.SessionNumber,
			Trigger:       trigger,
			AttemptedAt:   now,
			FromDate:      f.Date,
			Hours:         f.Hours,
			Success:       false,
			FailureReason: f.Reason,
		}
		if err := logRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("logging redistribution: %w", err)
		}
	}
	return nil
}
