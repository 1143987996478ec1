package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var lockEvict bool

var lockCmd = &cobra.Command{
	Use:   "lock <date>",
	Short: "Lock a day's plan",
	Long: `Freeze one day's plan so regeneration and redistribution never touch
it. A day with open sessions is refused unless --evict moves them elsewhere
first.

Examples:
  studyflow lock 2025-06-18
  studyflow lock 2025-06-18 --evict`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.LockDayHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		result, err := app.LockDayHandler.Handle(cmd.Context(), commands.LockDayCommand{
			Date:  args[0],
			Evict: lockEvict,
		})
		switch {
		case errors.Is(err, commands.ErrDayHasPendingSessions):
			return fmt.Errorf("%s has open sessions; run 'studyflow lock %s --evict' to move them first", args[0], args[0])
		case errors.Is(err, commands.ErrLockBlocked):
			return err
		case err != nil:
			return fmt.Errorf("failed to lock day: %w", err)
		}
		app.Metrics.Counter(observability.MetricDaysLocked, 1)

		fmt.Printf("%s is now locked.\n", args[0])
		for _, w := range result.Assessment.Warnings {
			fmt.Printf("  Warning: %s\n", w)
		}
		if ev := result.Eviction; ev != nil {
			app.Metrics.Counter(observability.MetricEvictions, 1)
			fmt.Printf("\nEvicted %d session(s):\n", len(ev.Moved))
			for _, m := range ev.Moved {
				fmt.Printf("  %s #%d %.1fh -> %s %s\n", m.TaskTitle, m.SessionNumber, m.Hours, m.ToDate, m.ToTime)
			}
			for _, f := range ev.Failed {
				fmt.Printf("  could not move %s #%d: %s\n", f.TaskTitle, f.SessionNumber, f.Reason)
			}
			for _, s := range ev.Summary.Suggestions {
				fmt.Printf("  Suggestion: %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	lockCmd.Flags().BoolVar(&lockEvict, "evict", false, "move open sessions to other days before locking")
	rootCmd.AddCommand(lockCmd)
}
