package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var (
	addHours     float64
	addDeadline  string
	addImportant bool
	addFrequency string
	addMinBlock  int
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a study task",
	Long: `Add a task with an estimated effort and a deadline.

The task is checked against your cadence and deadline; an impossible
combination is reported but the task is still created.

Examples:
  studyflow task add "Read chapter 4" --hours 6 --deadline 2025-06-20
  studyflow task add "Thesis draft" --hours 20 --deadline 2025-07-01 --important --frequency 3x-week`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		cmdData := commands.CreateTaskCommand{
			Title:           args[0],
			EstimatedHours:  addHours,
			Deadline:        addDeadline,
			Important:       addImportant,
			Frequency:       domain.ParseFrequency(addFrequency),
			MinBlockMinutes: addMinBlock,
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), cmdData)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		app.Metrics.Counter(observability.MetricTasksCreated, 1)

		fmt.Println("Task created!")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("  ID:       %s\n", result.TaskID)
		fmt.Printf("  Title:    %s\n", args[0])
		fmt.Printf("  Effort:   %.1fh\n", addHours)
		fmt.Printf("  Deadline: %s\n", addDeadline)
		if !result.Feasibility.Feasible {
			fmt.Println()
			fmt.Printf("  Warning: %s\n", result.Feasibility.Reason)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().Float64Var(&addHours, "hours", 1, "estimated effort in hours")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline date (YYYY-MM-DD)")
	addCmd.Flags().BoolVar(&addImportant, "important", false, "mark the task as important")
	addCmd.Flags().StringVar(&addFrequency, "frequency", "flexible", "study cadence: daily, 3x-week, weekly, flexible")
	addCmd.Flags().IntVar(&addMinBlock, "min-block", 0, "minimum session length in minutes")
	addCmd.MarkFlagRequired("deadline")
}
