package queries

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// GetSettingsQuery fetches the stored planning preferences, falling back to
// the defaults when none were saved yet.
type GetSettingsQuery struct{}

func (q GetSettingsQuery) QueryName() string { return "settings.get" }

// GetSettingsHandler handles the GetSettingsQuery.
type GetSettingsHandler struct {
	settingsRepo domain.SettingsRepository
}

// NewGetSettingsHandler creates a new GetSettingsHandler.
func NewGetSettingsHandler(settingsRepo domain.SettingsRepository) *GetSettingsHandler {
	return &GetSettingsHandler{settingsRepo: settingsRepo}
}

// Handle executes the GetSettingsQuery.
func (h *GetSettingsHandler) Handle(ctx context.Context, _ GetSettingsQuery) (domain.Settings, error) {
	return h.settingsRepo.Load(ctx)
}
