package queries

import (
	"context"

	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

// ListTasksQuery fetches tasks, optionally only the pending ones.
type ListTasksQuery struct {
	PendingOnly bool
}

func (q ListTasksQuery) QueryName() string { return "task.list" }

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo domain.TaskRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo domain.TaskRepository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]*domain.Task, error) {
	if query.PendingOnly {
		return h.taskRepo.FindPending(ctx)
	}
	return h.taskRepo.FindAll(ctx)
}

// ListCommitmentsQuery fetches every fixed commitment.
type ListCommitmentsQuery struct{}

func (q ListCommitmentsQuery) QueryName() string { return "commitment.list" }

// ListCommitmentsHandler handles the ListCommitmentsQuery.
type ListCommitmentsHandler struct {
	commitmentRepo domain.CommitmentRepository
}

// NewListCommitmentsHandler creates a new ListCommitmentsHandler.
func NewListCommitmentsHandler(commitmentRepo domain.CommitmentRepository) *ListCommitmentsHandler {
	return &ListCommitmentsHandler{commitmentRepo: commitmentRepo}
}

// Handle executes the ListCommitmentsQuery.
func (h *ListCommitmentsHandler) Handle(ctx context.Context, _ ListCommitmentsQuery) ([]*domain.FixedCommitment, error) {
	return h.commitmentRepo.FindAll(ctx)
}
