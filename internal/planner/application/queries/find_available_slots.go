package queries

import (
	"context"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// FindAvailableSlotsQuery searches forward for open time able to hold a block
// of the requested length.
type FindAvailableSlotsQuery struct {
	Hours    float64
	FromDate string
	MaxDays  int
	Limit    int
}

func (q FindAvailableSlotsQuery) QueryName() string { return "plan.slots" }

// FindAvailableSlotsHandler handles the FindAvailableSlotsQuery.
type FindAvailableSlotsHandler struct {
	planRepo       domain.PlanRepository
	commitmentRepo domain.CommitmentRepository
	settingsRepo   domain.SettingsRepository
}

// NewFindAvailableSlotsHandler creates a new FindAvailableSlotsHandler.
func NewFindAvailableSlotsHandler(
	planRepo domain.PlanRepository,
	commitmentRepo domain.CommitmentRepository,
	settingsRepo domain.SettingsRepository,
) *FindAvailableSlotsHandler {
	return &FindAvailableSlotsHandler{
		planRepo:       planRepo,
		commitmentRepo: commitmentRepo,
		settingsRepo:   settingsRepo,
	}
}

// Handle executes the FindAvailableSlotsQuery. It walks eligible days and
// collects up to Limit matching slots, one per day.
func (h *FindAvailableSlotsHandler) Handle(ctx context.Context, query FindAvailableSlotsQuery) ([]services.SlotMatch, error) {
	settings, err := h.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := h.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	commitments, err := h.commitmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	from := query.FromDate
	if from == "" {
		from = domain.DateOf(time.Now())
	}
	maxDays := query.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 5
	}

	matches := make([]services.SlotMatch, 0, limit)
	for offset := 0; offset < maxDays && len(matches) < limit; offset++ {
		date := domain.AddDays(from, offset)
		slot, ok := services.FindNextSlot(query.Hours, date, 1, "", plans, commitments, settings)
		if !ok {
			continue
		}
		matches = append(matches, slot)
	}

	return matches, nil
}
