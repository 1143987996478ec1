// Package commitment groups the fixed commitment commands for the CLI.
package commitment

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for commitment subcommands.
var Cmd = &cobra.Command{
	Use:   "commitment",
	Short: "Manage fixed commitments",
	Long:  `Add and list fixed busy intervals that planning must schedule around.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
}
