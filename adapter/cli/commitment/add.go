package commitment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
)

var (
	addStart string
	addEnd   string
	addDays  []string
	addDates []string
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a fixed commitment",
	Long: `Add a fixed busy interval. Pass --days for a recurring commitment or
--dates for a one-off; exactly one of the two.

Examples:
  studyflow commitment add "Gym" --start 18:00 --end 19:00 --days mon,wed,fri
  studyflow commitment add "Dentist" --start 14:00 --end 15:00 --dates 2025-06-20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateCommitmentHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		if (len(addDays) == 0) == (len(addDates) == 0) {
			return fmt.Errorf("pass exactly one of --days or --dates")
		}

		days, err := parseWeekdays(addDays)
		if err != nil {
			return err
		}

		result, err := app.CreateCommitmentHandler.Handle(cmd.Context(), commands.CreateCommitmentCommand{
			Title:      args[0],
			StartTime:  addStart,
			EndTime:    addEnd,
			DaysOfWeek: days,
			Dates:      addDates,
		})
		if errors.Is(err, commands.ErrCommitmentConflict) {
			return fmt.Errorf("%v; adjust the time or dates", err)
		}
		if err != nil {
			return fmt.Errorf("failed to add commitment: %w", err)
		}

		fmt.Printf("Commitment added.\n\n")
		fmt.Printf("  ID:    %s\n", result.CommitmentID)
		fmt.Printf("  Title: %s\n", args[0])
		fmt.Printf("  Time:  %s-%s\n", addStart, addEnd)
		for _, o := range result.Overrides {
			fmt.Printf("\n  Note: overlaps %q on some dates; the new commitment takes precedence there.\n", o.Existing.Title())
		}
		return nil
	},
}

func parseWeekdays(raw []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(raw))
	for _, r := range raw {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(r))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", r)
		}
		days = append(days, d)
	}
	return days, nil
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", "start time (HH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end time (HH:MM)")
	addCmd.Flags().StringSliceVar(&addDays, "days", nil, "weekdays for a recurring commitment (e.g. mon,wed,fri)")
	addCmd.Flags().StringSliceVar(&addDates, "dates", nil, "specific dates for a one-off commitment (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")
}
