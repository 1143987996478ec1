package cli

import (
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
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

	Metrics observability.Metrics
}

var appInstance *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return appInstance
}
