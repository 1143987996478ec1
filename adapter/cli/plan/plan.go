// Package plan groups the schedule generation and inspection commands.
package plan

import (
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect the study schedule",
	Long:  `Generate the day-by-day schedule, view it, merge fragmented sessions, and find free slots.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(combineCmd)
	Cmd.AddCommand(slotsCmd)
	Cmd.AddCommand(historyCmd)
}
