package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as complete",
	Long: `Mark a task as complete. Its remaining open sessions are removed
from unlocked days; sessions on locked days stay where they are.

Examples:
  studyflow task done 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		if err := app.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{
			TaskID: taskID,
		}); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}
		app.Metrics.Counter(observability.MetricTasksCompleted, 1)

		fmt.Println("Task completed!")
		return nil
	},
}
