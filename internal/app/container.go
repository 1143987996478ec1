// Package app wires configuration, storage, and application handlers into a
// single container consumed by the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/services"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	plannerPersistence "github.com/Rosalinda-art/studyflow/internal/planner/infrastructure/persistence"
	sharedApplication "github.com/Rosalinda-art/studyflow/internal/shared/application"
	sqliteDB "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/database/sqlite"
	sharedPersistence "github.com/Rosalinda-art/studyflow/internal/shared/infrastructure/persistence"
	"github.com/Rosalinda-art/studyflow/pkg/config"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

// Repositories bundles every planner repository behind the domain interfaces.
type Repositories struct {
	Tasks       domain.TaskRepository
	Plans       domain.PlanRepository
	Commitments domain.CommitmentRepository
	Settings    domain.SettingsRepository
	Log         domain.RedistributionLogRepository
}

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	SQLiteConn   *sql.DB
	PostgresPool *pgxpool.Pool

	Repos Repositories
	UoW   sharedApplication.UnitOfWork

	// Command handlers
	CreateTaskHandler       *commands.CreateTaskHandler
	CompleteTaskHandler     *commands.CompleteTaskHandler
	GeneratePlanHandler     *commands.GeneratePlanHandler
	RedistributeHandler     *commands.RedistributeMissedHandler
	LockDayHandler          *commands.LockDayHandler
	UnlockDayHandler        *commands.UnlockDayHandler
	CombineSessionsHandler  *commands.CombineSessionsHandler
	MarkSessionHandler      *commands.MarkSessionHandler
	CreateCommitmentHandler *commands.CreateCommitmentHandler
	UpdateSettingsHandler   *commands.UpdateSettingsHandler

	// Query handlers
	GetPlanHandler             *queries.GetPlanHandler
	FindAvailableSlotsHandler  *queries.FindAvailableSlotsHandler
	RemainingHoursHandler      *queries.RemainingHoursHandler
	ListTasksHandler           *queries.ListTasksHandler
	ListCommitmentsHandler     *queries.ListCommitmentsHandler
	ListRedistributionsHandler *queries.ListRedistributionsHandler
	GetSettingsHandler         *queries.GetSettingsHandler
}

// NewContainer connects storage for the configured backend and builds every
// handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
	}

	switch cfg.DBBackend {
	case config.BackendSQLite:
		db, err := sqliteDB.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if cfg.MigrateOnRun {
			if err := plannerPersistence.MigrateSQLite(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		c.SQLiteConn = db
		c.UoW = sharedPersistence.NewSQLiteUnitOfWork(db)
		c.Repos = Repositories{
			Tasks:       plannerPersistence.NewSQLiteTaskRepository(db),
			Plans:       plannerPersistence.NewSQLitePlanRepository(db),
			Commitments: plannerPersistence.NewSQLiteCommitmentRepository(db),
			Settings:    plannerPersistence.NewSQLiteSettingsRepository(db),
			Log:         plannerPersistence.NewSQLiteRedistributionLogRepository(db),
		}
		logger.Info("connected to database", "backend", cfg.DBBackend)

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if cfg.MigrateOnRun {
			if err := plannerPersistence.MigratePostgres(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		c.PostgresPool = pool
		c.UoW = sharedPersistence.NewPostgresUnitOfWork(pool)
		c.Repos = Repositories{
			Tasks:       plannerPersistence.NewPostgresTaskRepository(pool),
			Plans:       plannerPersistence.NewPostgresPlanRepository(pool),
			Commitments: plannerPersistence.NewPostgresCommitmentRepository(pool),
			Settings:    plannerPersistence.NewPostgresSettingsRepository(pool),
			Log:         plannerPersistence.NewPostgresRedistributionLogRepository(pool),
		}
		logger.Info("connected to database", "backend", cfg.DBBackend)

	default:
		return nil, fmt.Errorf("unsupported database backend: %q", cfg.DBBackend)
	}

	c.buildHandlers()
	return c, nil
}

func (c *Container) buildHandlers() {
	generator := services.NewGenerator(c.Logger)
	redistributor := services.NewRedistributor(c.Logger)
	governor := services.NewLockGovernor(c.Logger)
	combiner := services.NewCombiner(c.Logger)

	r := c.Repos

	c.CreateTaskHandler = commands.NewCreateTaskHandler(r.Tasks, r.Settings, c.UoW, c.Logger)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(r.Tasks, r.Plans, c.UoW, c.Logger)
	c.GeneratePlanHandler = commands.NewGeneratePlanHandler(r.Tasks, r.Plans, r.Commitments, r.Settings, generator, c.UoW, c.Logger)
	c.RedistributeHandler = commands.NewRedistributeMissedHandler(r.Tasks, r.Plans, r.Commitments, r.Settings, r.Log, redistributor, c.UoW, c.Logger)
	c.LockDayHandler = commands.NewLockDayHandler(r.Tasks, r.Plans, r.Commitments, r.Settings, r.Log, governor, redistributor, c.UoW, c.Logger)
	c.UnlockDayHandler = commands.NewUnlockDayHandler(r.Plans, r.Settings, c.UoW, c.Logger)
	c.CombineSessionsHandler = commands.NewCombineSessionsHandler(r.Plans, r.Settings, combiner, c.UoW, c.Logger)
	c.MarkSessionHandler = commands.NewMarkSessionHandler(r.Plans, c.UoW, c.Logger)
	c.CreateCommitmentHandler = commands.NewCreateCommitmentHandler(r.Commitments, c.UoW, c.Logger)
	c.UpdateSettingsHandler = commands.NewUpdateSettingsHandler(r.Settings, c.UoW, c.Logger)

	c.GetPlanHandler = queries.NewGetPlanHandler(r.Plans, r.Tasks)
	c.FindAvailableSlotsHandler = queries.NewFindAvailableSlotsHandler(r.Plans, r.Commitments, r.Settings)
	c.RemainingHoursHandler = queries.NewRemainingHoursHandler(r.Tasks, r.Plans)
	c.ListTasksHandler = queries.NewListTasksHandler(r.Tasks)
	c.ListCommitmentsHandler = queries.NewListCommitmentsHandler(r.Commitments)
	c.ListRedistributionsHandler = queries.NewListRedistributionsHandler(r.Log)
	c.GetSettingsHandler = queries.NewGetSettingsHandler(r.Settings)
}

// Close releases database connections.
func (c *Container) Close() {
	if c.SQLiteConn != nil {
		if err := c.SQLiteConn.Close(); err != nil {
			c.Logger.Warn("error closing database", "error", err)
		}
	}
	if c.PostgresPool != nil {
		c.PostgresPool.Close()
	}
}
