// Package session groups the session outcome commands for the CLI.
package session

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for session subcommands.
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Record session outcomes",
	Long:  `Mark scheduled study sessions as done or skipped.`,
}

func init() {
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(skipCmd)
}
