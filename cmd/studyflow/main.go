// studyflow is a deadline-driven study planner. It spreads the remaining
// effort of every pending task across the days before its deadline, schedules
// around fixed commitments, and moves missed work forward while honoring
// locked days.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/adapter/cli/commitment"
	"github.com/Rosalinda-art/studyflow/adapter/cli/plan"
	"github.com/Rosalinda-art/studyflow/adapter/cli/session"
	"github.com/Rosalinda-art/studyflow/adapter/cli/task"
	"github.com/Rosalinda-art/studyflow/internal/app"
	"github.com/Rosalinda-art/studyflow/pkg/config"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)

	container, err := app.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetLogger(logger)
	cli.SetApp(&cli.App{
		CreateTaskHandler:       container.CreateTaskHandler,
		CompleteTaskHandler:     container.CompleteTaskHandler,
		GeneratePlanHandler:     container.GeneratePlanHandler,
		RedistributeHandler:     container.RedistributeHandler,
		LockDayHandler:          container.LockDayHandler,
		UnlockDayHandler:        container.UnlockDayHandler,
		CombineSessionsHandler:  container.CombineSessionsHandler,
		MarkSessionHandler:      container.MarkSessionHandler,
		CreateCommitmentHandler: container.CreateCommitmentHandler,
		UpdateSettingsHandler:   container.UpdateSettingsHandler,

		GetPlanHandler:             container.GetPlanHandler,
		FindAvailableSlotsHandler:  container.FindAvailableSlotsHandler,
		RemainingHoursHandler:      container.RemainingHoursHandler,
		ListTasksHandler:           container.ListTasksHandler,
		ListCommitmentsHandler:     container.ListCommitmentsHandler,
		ListRedistributionsHandler: container.ListRedistributionsHandler,
		GetSettingsHandler:         container.GetSettingsHandler,

		Metrics: container.Metrics,
	})

	cli.AddCommand(task.Cmd)
	cli.AddCommand(plan.Cmd)
	cli.AddCommand(session.Cmd)
	cli.AddCommand(commitment.Cmd)

	cli.Execute()
}
