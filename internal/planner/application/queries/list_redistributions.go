package queries

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// ListRedistributionsQuery fetches the redistribution audit log for a date
// range, inclusive on both ends.
type ListRedistributionsQuery struct {
	From string
	To   string
}

func (q ListRedistributionsQuery) QueryName() string { return "redistribution.list" }

// ListRedistributionsHandler handles the ListRedistributionsQuery.
type ListRedistributionsHandler struct {
	logRepo domain.RedistributionLogRepository
}

// NewListRedistributionsHandler creates a new ListRedistributionsHandler.
func NewListRedistributionsHandler(logRepo domain.RedistributionLogRepository) *ListRedistributionsHandler {
	return &ListRedistributionsHandler{logRepo: logRepo}
}

// Handle executes the ListRedistributionsQuery.
func (h *ListRedistributionsHandler) Handle(ctx context.Context, query ListRedistributionsQuery) ([]domain.RedistributionRecord, error) {
	return h.logRepo.ListByDateRange(ctx, query.From, query.To)
}
