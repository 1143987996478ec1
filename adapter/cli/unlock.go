package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/pkg/observability"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock <date>",
	Short: "Unlock a day's plan",
	Long: `Reopen a locked day so future regeneration and redistribution may
change it again. Unlocking an already-open day is a no-op.

Example:
  studyflow unlock 2025-06-18`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.UnlockDayHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		err := app.UnlockDayHandler.Handle(cmd.Context(), commands.UnlockDayCommand{Date: args[0]})
		if errors.Is(err, commands.ErrNoPlanForDate) {
			return fmt.Errorf("no plan exists for %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to unlock day: %w", err)
		}
		app.Metrics.Counter(observability.MetricDaysUnlocked, 1)

		fmt.Printf("%s is now unlocked.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unlockCmd)
}
