package commands

import (
	"context"
	"testing"
	"time"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLockDayHandler(
	taskRepo *mockTaskRepo,
	planRepo *mockPlanRepo,
	commitmentRepo *mockCommitmentRepo,
	settingsRepo *mockSettingsRepo,
	logRepo *mockLogRepo,
	uow *mockUnitOfWork,
) *LockDayHandler {
	return NewLockDayHandler(
		taskRepo, planRepo, commitmentRepo, settingsRepo, logRepo,
		services.NewLockGovernor(testLogger()),
		services.NewRedistributor(testLogger()),
		uow, testLogger(),
	)
}

func TestLockDayHandler_Handle(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	t.Run("locks a clean day outright", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		logRepo := new(mockLogRepo)
		uow := new(mockUnitOfWork)
		handler := newLockDayHandler(taskRepo, planRepo, commitmentRepo, settingsRepo, logRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{}, nil)
		planRepo.On("FindAll", txCtx).Return(domain.NewPlanSet(), nil)

		var saved domain.PlanSet
		planRepo.On("SaveSet", txCtx, mock.AnythingOfType("domain.PlanSet")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(domain.PlanSet)
			}).
			Return(nil)

		result, err := handler.Handle(ctx, LockDayCommand{Date: "2025-03-04", Today: "2025-03-03", Now: now})

		require.NoError(t, err)
		assert.True(t, result.Assessment.CanLock)
		assert.Nil(t, result.Eviction)
		assert.True(t, saved.IsLockedDay("2025-03-04"))
		uow.AssertExpectations(t)
	})

	t.Run("refuses a day with open sessions unless eviction is requested", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		logRepo := new(mockLogRepo)
		uow := new(mockUnitOfWork)
		handler := newLockDayHandler(taskRepo, planRepo, commitmentRepo, settingsRepo, logRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		task, err := domain.NewTask("Essay", 2, "2025-03-14", false)
		require.NoError(t, err)
		plans := domain.NewPlanSet()
		plan := plans.Ensure("2025-03-04", 4)
		session, err := domain.NewSession(task.ID(), 1, "09:00", "10:00", 1)
		require.NoError(t, err)
		require.NoError(t, plan.AddSession(session))

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{task}, nil)
		planRepo.On("FindAll", txCtx).Return(plans, nil)

		_, err = handler.Handle(ctx, LockDayCommand{Date: "2025-03-04", Today: "2025-03-03", Now: now})

		assert.ErrorIs(t, err, ErrDayHasPendingSessions)
		uow.AssertExpectations(t)
	})

	t.Run("evicts open sessions before locking when asked", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		planRepo := new(mockPlanRepo)
		commitmentRepo := new(mockCommitmentRepo)
		settingsRepo := new(mockSettingsRepo)
		logRepo := new(mockLogRepo)
		uow := new(mockUnitOfWork)
		handler := newLockDayHandler(taskRepo, planRepo, commitmentRepo, settingsRepo, logRepo, uow)

		ctx := context.Background()
		txCtx := testTxCtx(ctx)

		task, err := domain.NewTask("Essay", 2, "2025-03-14", false)
		require.NoError(t, err)
		plans := domain.NewPlanSet()
		plan := plans.Ensure("2025-03-04", 4)
		session, err := domain.NewSession(task.ID(), 1, "09:00", "10:00", 1)
		require.NoError(t, err)
		require.NoError(t, plan.AddSession(session))

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		settingsRepo.On("Load", txCtx).Return(domain.DefaultSettings(), nil)
		taskRepo.On("FindPending", txCtx).Return([]*domain.Task{task}, nil)
		commitmentRepo.On("FindAll", txCtx).Return([]*domain.FixedCommitment{}, nil)
		planRepo.On("FindAll", txCtx).Return(plans, nil)
		logRepo.On("Create", txCtx, mock.AnythingOfType("domain.RedistributionRecord")).Return(nil)

		var saved domain.PlanSet
		planRepo.On("SaveSet", txCtx, mock.AnythingOfType("domain.PlanSet")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(domain.PlanSet)
			}).
			Return(nil)

		result, err := handler.Handle(ctx, LockDayCommand{
			Date: "2025-03-04", Evict: true, Today: "2025-03-03", Now: now,
		})

		require.NoError(t, err)
		require.NotNil(t, result.Eviction)
		assert.Equal(t, 1, result.Eviction.Summary.Moved)
		assert.True(t, saved.IsLockedDay("2025-03-04"))
		assert.Empty(t, saved.Get("2025-03-04").Sessions())
		// The evicted session landed on the next open work day.
		assert.Len(t, saved.Get("2025-03-05").Sessions(), 1)
		logRepo.AssertExpectations(t)
	})
}
