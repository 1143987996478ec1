package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
)

var (
	// ErrDayHasPendingSessions means the day cannot be locked until its open
	// sessions are redistributed or the caller opts into eviction.
	ErrDayHasPendingSessions = errors.New("day has pending sessions; redistribute them first or lock with eviction")
	// ErrLockBlocked means the lock assessment found hard blockers.
	ErrLockBlocked = errors.New("day cannot be locked")
)

// LockDayCommand freezes one day's plan. With Evict set, open sessions are
// first moved to other days; without it, a day with open sessions is refused.
type LockDayCommand struct {
	Date  string
	Evict bool
	Today string
	Now   time.Time
}

func (c LockDayCommand) CommandName() string { return "plan.lock" }

// LockDayResult reports the assessment and any eviction outcome.
type LockDayResult struct {
	Assessment services.LockAssessment
	Eviction   *services.RedistributeResult
}

// LockDayHandler handles the LockDayCommand.
type LockDayHandler struct {
	taskRepo       domain.TaskRepository
	planRepo       domain.PlanRepository
	commitmentRepo domain.CommitmentRepository
	settingsRepo   domain.SettingsRepository
	logRepo        domain.RedistributionLogRepository
	governor       *services.LockGovernor
	redistributor  *services.Redistributor
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewLockDayHandler creates a new LockDayHandler.
func NewLockDayHandler(
	taskRepo domain.TaskRepository,
	planRepo domain.PlanRepository,
	commitmentRepo domain.CommitmentRepository,
	settingsRepo domain.SettingsRepository,
	logRepo domain.RedistributionLogRepository,
	governor *services.LockGovernor,
	redistributor *services.Redistributor,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *LockDayHandler {
	return &LockDayHandler{
		taskRepo:       taskRepo,
		planRepo:       planRepo,
		commitmentRepo: commitmentRepo,
		settingsRepo:   settingsRepo,
		logRepo:        logRepo,
		governor:       governor,
		redistributor:  redistributor,
		uow:            uow,
		logger:         logger,
	}
}

// Handle executes the LockDayCommand.
func (h *LockDayHandler) Handle(ctx context.Context, cmd LockDayCommand) (*LockDayResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := cmd.Today
	if today == "" {
		today = domain.DateOf(now)
	}

	var result *LockDayResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		settings, err := h.settingsRepo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		tasks, err := h.taskRepo.FindPending(txCtx)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		plans, err := h.planRepo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("loading plans: %w", err)
		}

		assessment := h.governor.ValidateLock(cmd.Date, plans, tasks, settings, today)
		result = &LockDayResult{Assessment: assessment}

		if !assessment.CanLock {
			return fmt.Errorf("%w: %s", ErrLockBlocked, strings.Join(assessment.Blockers, "; "))
		}

		working := plans
		if ok, _ := services.CanLock(cmd.Date, plans); !ok {
			if !cmd.Evict {
				return ErrDayHasPendingSessions
			}

			commitments, err := h.commitmentRepo.FindAll(txCtx)
			if err != nil {
				return fmt.Errorf("loading commitments: %w", err)
			}
			eviction := h.redistributor.EvictLockedDay(
				cmd.Date, plans, tasks, commitments, settings, today, now,
			)
			result.Eviction = &eviction
			working = eviction.Plans

			if err := logRedistribution(txCtx, h.logRepo, eviction, domain.RedistributionEviction, now); err != nil {
				return err
			}
		}

		h.governor.LockDay(cmd.Date, working, settings)
		if err := h.planRepo.SaveSet(txCtx, working); err != nil {
			return fmt.Errorf("saving plans: %w", err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	h.logger.Info("day locked", "date", cmd.Date, "evicted", cmd.Evict)
	return result, nil
}
