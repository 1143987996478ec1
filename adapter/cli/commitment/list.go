package commitment

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List fixed commitments",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCommitmentsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		commitments, err := app.ListCommitmentsHandler.Handle(cmd.Context(), queries.ListCommitmentsQuery{})
		if err != nil {
			return fmt.Errorf("failed to list commitments: %w", err)
		}

		if len(commitments) == 0 {
			fmt.Println("No commitments. Add one with 'studyflow commitment add'.")
			return nil
		}

		fmt.Printf("%-38s %-20s %-13s %s\n", "ID", "TITLE", "TIME", "WHEN")
		fmt.Println(strings.Repeat("-", 90))
		for _, c := range commitments {
			fmt.Printf("%-38s %-20s %s-%s  %s\n",
				c.ID(), c.Title(), c.StartTime(), c.EndTime(), when(c))
		}
		return nil
	},
}

func when(c *domain.FixedCommitment) string {
	if c.IsRecurring() {
		names := make([]string, 0, len(c.DaysOfWeek()))
		for _, d := range c.DaysOfWeek() {
			names = append(names, d.String()[:3])
		}
		return strings.Join(names, ",")
	}
	return strings.Join(c.SpecificDates(), ",")
}
