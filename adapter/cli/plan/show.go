package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

var (
	showFrom string
	showTo   string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the schedule",
	Long: `Show the scheduled sessions for a day or a date range.
Defaults to today.

Examples:
  studyflow plan show
  studyflow plan show --from 2025-06-16 --to 2025-06-22`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetPlanHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		from := showFrom
		if from == "" {
			from = domain.DateOf(time.Now())
		}

		days, err := app.GetPlanHandler.Handle(cmd.Context(), queries.GetPlanQuery{
			From: from,
			To:   showTo,
		})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		if len(days) == 0 {
			fmt.Println("Nothing scheduled. Run: studyflow plan generate")
			return nil
		}

		for _, day := range days {
			header := fmt.Sprintf("%s (%s)", day.Date, domain.WeekdayOf(day.Date))
			if day.Locked {
				header += "  [locked]"
			}
			fmt.Println(header)
			fmt.Println(strings.Repeat("-", 60))
			if len(day.Sessions) == 0 {
				fmt.Println("  (free)")
			}
			for _, s := range day.Sessions {
				marker := " "
				if s.Done {
					marker = "x"
				}
				line := fmt.Sprintf("  [%s] %s-%s  %-30s  %.1fh", marker, s.StartTime, s.EndTime, truncate(s.TaskTitle, 30), s.Hours)
				if s.Status != "scheduled" && !s.Done {
					line += "  (" + s.Status + ")"
				}
				if s.MovedFrom != "" {
					line += "  moved from " + s.MovedFrom
				}
				fmt.Println(line)
			}
			fmt.Printf("  %.1fh planned, %.1fh available\n\n", day.TotalStudyHours, day.AvailableHours)
		}

		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showFrom, "from", "", "first date to show (YYYY-MM-DD, default today)")
	showCmd.Flags().StringVar(&showTo, "to", "", "last date to show (YYYY-MM-DD)")
}
