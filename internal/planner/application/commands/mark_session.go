package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	"github.com/google/uuid"
)

// ErrUnknownSessionAction means the mark action is not recognized.
var ErrUnknownSessionAction = errors.New("unknown session action")

// SessionAction is what the user did with a scheduled session.
type SessionAction string

const (
	SessionActionDone SessionAction = "done"
	SessionActionSkip SessionAction = "skip"
)

// MarkSessionCommand records the outcome of one scheduled session. This is
// the write surface external callers use; marking works on locked days too,
// since it changes outcome state, not placement.
type MarkSessionCommand struct {
	Date          string
	TaskID        uuid.UUID
	SessionNumber int
	Action        SessionAction
}

func (c MarkSessionCommand) CommandName() string { return "session.mark" }

// MarkSessionHandler handles the MarkSessionCommand.
type MarkSessionHandler struct {
	planRepo domain.PlanRepository
	uow      sharedApplication.UnitOfWork
	logger   *slog.Logger
}

// NewMarkSessionHandler creates a new MarkSessionHandler.
func NewMarkSessionHandler(
	planRepo domain.PlanRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *MarkSessionHandler {
	return &MarkSessionHandler{
		planRepo: planRepo,
		uow:      uow,
		logger:   logger,
	}
}

// Handle executes the MarkSessionCommand.
func (h *MarkSessionHandler) Handle(ctx context.Context, cmd MarkSessionCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		plan, err := h.planRepo.FindByDate(txCtx, cmd.Date)
		if err != nil {
			return err
		}
		if plan == nil {
			return ErrNoPlanForDate
		}

		session, err := plan.FindTaskSession(cmd.TaskID, cmd.SessionNumber)
		if err != nil {
			return err
		}

		switch cmd.Action {
		case SessionActionDone:
			session.MarkDone()
			session.SetStatus(domain.SessionCompleted)
		case SessionActionSkip:
			session.SetStatus(domain.SessionSkipped)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSessionAction, cmd.Action)
		}
		plan.RecomputeTotal()

		if err := h.planRepo.Save(txCtx, plan); err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}

		h.logger.Info("session marked",
			"date", cmd.Date,
			"session", cmd.SessionNumber,
			"action", string(cmd.Action),
		)
		return nil
	})
}
