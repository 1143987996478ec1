package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	"github.com/google/uuid"
)

// ErrCommitmentConflict means the new commitment strictly collides with an
// existing one on both time and dates.
var ErrCommitmentConflict = errors.New("commitment conflicts with an existing one")

// CreateCommitmentCommand adds a fixed busy interval. Exactly one of
// DaysOfWeek (recurring) or Dates (one-off) should be set.
type CreateCommitmentCommand struct {
	Title      string
	StartTime  string
	EndTime    string
	DaysOfWeek []time.Weekday
	Dates      []string
}

func (c CreateCommitmentCommand) CommandName() string { return "commitment.create" }

// CreateCommitmentResult carries the new commitment's id plus any soft
// override overlaps that were allowed through.
type CreateCommitmentResult struct {
	CommitmentID uuid.UUID
	Overrides    []services.CommitmentConflict
}

// CreateCommitmentHandler handles the CreateCommitmentCommand.
type CreateCommitmentHandler struct {
	commitmentRepo domain.CommitmentRepository
	uow            sharedApplication.UnitOfWork
	logger         *slog.Logger
}

// NewCreateCommitmentHandler creates a new CreateCommitmentHandler.
func NewCreateCommitmentHandler(
	commitmentRepo domain.CommitmentRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *CreateCommitmentHandler {
	return &CreateCommitmentHandler{
		commitmentRepo: commitmentRepo,
		uow:            uow,
		logger:         logger,
	}
}

// Handle executes the CreateCommitmentCommand.
func (h *CreateCommitmentHandler) Handle(ctx context.Context, cmd CreateCommitmentCommand) (*CreateCommitmentResult, error) {
	var result *CreateCommitmentResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var commitment *domain.FixedCommitment
		var err error
		if len(cmd.DaysOfWeek) > 0 {
			commitment, err = domain.NewRecurringCommitment(cmd.Title, cmd.StartTime, cmd.EndTime, cmd.DaysOfWeek)
		} else {
			commitment, err = domain.NewOneOffCommitment(cmd.Title, cmd.StartTime, cmd.EndTime, cmd.Dates)
		}
		if err != nil {
			return err
		}

		existing, err := h.commitmentRepo.FindAll(txCtx)
		if err != nil {
			return fmt.Errorf("loading commitments: %w", err)
		}

		overrides := make([]services.CommitmentConflict, 0)
		for _, conflict := range services.CheckCommitmentConflicts(commitment, existing) {
			if !conflict.Override {
				return fmt.Errorf("%w: %q", ErrCommitmentConflict, conflict.Existing.Title())
			}
			overrides = append(overrides, conflict)
		}

		if err := h.commitmentRepo.Save(txCtx, commitment); err != nil {
			return fmt.Errorf("saving commitment: %w", err)
		}

		result = &CreateCommitmentResult{CommitmentID: commitment.ID(), Overrides: overrides}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("commitment created", "title", cmd.Title)
	return result, nil
}
