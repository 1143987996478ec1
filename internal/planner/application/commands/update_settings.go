package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
)

// ErrInvalidSettings means the submitted preferences are not usable.
var ErrInvalidSettings = errors.New("invalid settings")

// UpdateSettingsCommand replaces the stored planning preferences.
type UpdateSettingsCommand struct {
	Settings domain.Settings
}

func (c UpdateSettingsCommand) CommandName() string { return "settings.update" }

// UpdateSettingsHandler handles the UpdateSettingsCommand.
type UpdateSettingsHandler struct {
	settingsRepo domain.SettingsRepository
	uow          sharedApplication.UnitOfWork
	logger       *slog.Logger
}

// NewUpdateSettingsHandler creates a new UpdateSettingsHandler.
func NewUpdateSettingsHandler(
	settingsRepo domain.SettingsRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{
		settingsRepo: settingsRepo,
		uow:          uow,
		logger:       logger,
	}
}

// Handle executes the UpdateSettingsCommand.
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) error {
	s := cmd.Settings
	if s.DailyAvailableHours <= 0 ||
		len(s.WorkDays) == 0 ||
		s.MinSessionMinutes <= 0 ||
		s.StudyWindowEndHour <= s.StudyWindowStartHour {
		return ErrInvalidSettings
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.settingsRepo.Save(txCtx, s); err != nil {
			return err
		}
		h.logger.Info("settings updated", "mode", s.PlanMode.String())
		return nil
	})
}
