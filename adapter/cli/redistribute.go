package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var redistributeCmd = &cobra.Command{
	Use:     "redistribute",
	Aliases: []string{"redist"},
	Short:   "Move missed sessions to open slots",
	Long: `Find sessions on past days that were never completed and move each one
to the nearest future day with room. Locked days are never used as a source
or a target. Sessions that fit nowhere stay in place and are reported.

Example:
  studyflow redistribute`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RedistributeHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		result, err := app.RedistributeHandler.Handle(cmd.Context(), commands.RedistributeMissedCommand{})
		if err != nil {
			return fmt.Errorf("failed to redistribute: %w", err)
		}
		app.Metrics.Counter(observability.MetricSessionsMoved, int64(len(result.Moved)))
		app.Metrics.Counter(observability.MetricSessionsStranded, int64(len(result.Failed)))

		if len(result.Moved) == 0 && len(result.Failed) == 0 {
			fmt.Println("No missed sessions to redistribute.")
			return nil
		}

		if len(result.Moved) > 0 {
			fmt.Printf("Moved %d session(s):\n", len(result.Moved))
			for _, m := range result.Moved {
				fmt.Printf("  %s #%d %.1fh  %s -> %s %s\n",
					m.TaskTitle, m.SessionNumber, m.Hours, m.FromDate, m.ToDate, m.ToTime)
			}
		}
		if len(result.Failed) > 0 {
			fmt.Printf("\nCould not move %d session(s):\n", len(result.Failed))
			for _, f := range result.Failed {
				fmt.Printf("  %s #%d %.1fh on %s: %s\n",
					f.TaskTitle, f.SessionNumber, f.Hours, f.Date, f.Reason)
			}
		}
		for _, s := range result.Summary.Suggestions {
			fmt.Printf("\nSuggestion: %s\n", s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redistributeCmd)
}
