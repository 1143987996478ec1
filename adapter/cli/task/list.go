package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List pending tasks ordered by deadline.

Examples:
  studyflow task list
  studyflow task list --all`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			PendingOnly: !listAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks. Add one with: studyflow task add")
			return nil
		}

		fmt.Printf("%-36s  %-30s  %8s  %-10s  %s\n", "ID", "TITLE", "HOURS", "DEADLINE", "FLAGS")
		fmt.Println(strings.Repeat("-", 100))
		for _, t := range tasks {
			flags := make([]string, 0, 2)
			if t.IsImportant() {
				flags = append(flags, "important")
			}
			if !t.IsPending() {
				flags = append(flags, t.Status().String())
			}
			fmt.Printf("%-36s  %-30s  %7.1fh  %-10s  %s\n",
				t.ID(), truncate(t.Title(), 30), t.EstimatedHours(), t.Deadline(), strings.Join(flags, ","))
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "include completed and archived tasks")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
