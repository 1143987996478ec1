package domain

import (
	"context"

	"github.com/google/uuid"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindPending(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanRepository persists study plans with their sessions.
type PlanRepository interface {
	Save(ctx context.Context, plan *StudyPlan) error
	SaveSet(ctx context.Context, plans PlanSet) error
	FindByDate(ctx context.Context, date string) (*StudyPlan, error)
	FindAll(ctx context.Context) (PlanSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommitmentRepository persists fixed commitments.
type CommitmentRepository interface {
	Save(ctx context.Context, commitment *FixedCommitment) error
	FindAll(ctx context.Context) ([]*FixedCommitment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository persists the user's planning preferences.
type SettingsRepository interface {
	Save(ctx context.Context, settings Settings) error
	Load(ctx context.Context) (Settings, error)
}

// RedistributionLogRepository persists redistribution outcomes for auditing.
type RedistributionLogRepository interface {
	Create(ctx context.Context, record RedistributionRecord) error
	ListByDateRange(ctx context.Context, from, to string) ([]RedistributionRecord, error)
}
