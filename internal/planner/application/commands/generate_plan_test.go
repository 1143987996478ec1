package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type txKey struct{}

func testTxCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, "transaction")
}

func TestGeneratePlanHandler_Handle(t *testing.T) {
	t.Run("plans pending tasks and persists the result", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		uow := new(mockUnitOfWork)
		handler := NewGeneratePlanHandler(
			taskRepo, planRepo, commitmentRepo, settingsRepo,
			services.NewGenerator(testLogger()), uow, testLogger(),
		)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		task, err := domain.NewTask("Exam prep", 4, "2025-03-08", false)
		require.NoError(t, err)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{task}, nil)
		commitmentRepo.On("FindAll", txCtx).Return([]*domain.FixedCommitment{}, nil)
		planRepo.On("FindAll", txCtx).Return(domain.NewPlanSet(), nil)

		var saved domain.PlanSet
		planRepo.On("SaveSet", txCtx, mock.AnythingOfType("domain.PlanSet")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(domain.PlanSet)
			}).
			Return(nil)

		result, err := handler.Handle(ctx, GeneratePlanCommand{Today: "2025-03-03"})

		require.NoError(t, err)
		require.Len(t, result.Outcomes, 1)
		assert.InDelta(t, 4, result.Outcomes[0].PlacedHours, 0.01)
		assert.NotEmpty(t, saved.Dates())

		uow.AssertExpectations(t)
		planRepo.AssertExpectations(t)
	})

	t.Run("logs the operation and its duration", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		uow := new(mockUnitOfWork)

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		handler := NewGeneratePlanHandler(
			taskRepo, planRepo, commitmentRepo, settingsRepo,
			services.NewGenerator(testLogger()), uow, logger,
		)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{}, nil)
		commitmentRepo.On("FindAll", txCtx).Return([]*domain.FixedCommitment{}, nil)
		planRepo.On("FindAll", txCtx).Return(domain.NewPlanSet(), nil)
		planRepo.On("SaveSet", txCtx, mock.AnythingOfType("domain.PlanSet")).Return(nil)

		_, err := handler.Handle(ctx, GeneratePlanCommand{Today: "2025-03-03"})
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "operation=plan.generate")
		assert.Contains(t, output, "plan generated")
		assert.Contains(t, output, "duration_ms=")
	})

	t.Run("rolls back when plans cannot load", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		uow := new(mockUnitOfWork)
		handler := NewGeneratePlanHandler(
			taskRepo, planRepo, commitmentRepo, settingsRepo,
			services.NewGenerator(testLogger()), uow, testLogger(),
		)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{}, nil)
		commitmentRepo.On("FindAll", txCtx).Return([]*domain.FixedCommitment{}, nil)
		planRepo.On("FindAll", txCtx).Return(nil, assert.AnError)

		_, err := handler.Handle(ctx, GeneratePlanCommand{Today: "2025-03-03"})

		assert.Error(t, err)
		uow.AssertExpectations(t)
	})
}
