package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/adapter/cli"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

var (
	markDate   string
	markNumber int
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a session as done",
	Long: `Mark one scheduled session as completed. Works on locked days too,
since it records an outcome rather than changing placement.

Example:
  studyflow session done a1b2c3d4-... --date 2025-06-18 --number 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd, args[0], commands.SessionActionDone)
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <task-id>",
	Short: "Mark a session as skipped",
	Long: `Mark one scheduled session as skipped. Skipped time counts toward a
task's remaining effort again and is picked up by redistribution.

Example:
  studyflow session skip a1b2c3d4-... --date 2025-06-18 --number 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd, args[0], commands.SessionActionSkip)
	},
}

func runMark(cmd *cobra.Command, rawID string, action commands.SessionAction) error {
	app := cli.GetApp()
	if app == nil || app.MarkSessionHandler == nil {
		return fmt.Errorf("no database connection available")
	}

	taskID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid task ID %q: %w", rawID, err)
	}

	date := markDate
	if date == "" {
		date = domain.DateOf(time.Now())
	}

	err = app.MarkSessionHandler.Handle(cmd.Context(), commands.MarkSessionCommand{
		Date:          date,
		TaskID:        taskID,
		SessionNumber: markNumber,
		Action:        action,
	})
	switch {
	case errors.Is(err, commands.ErrNoPlanForDate):
		return fmt.Errorf("no plan exists for %s", date)
	case errors.Is(err, domain.ErrSessionNotFound):
		return fmt.Errorf("no session #%d of task %s on %s", markNumber, rawID, date)
	case err != nil:
		return fmt.Errorf("failed to mark session: %w", err)
	}

	fmt.Printf("Session #%d on %s marked %s.\n", markNumber, date, action)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{doneCmd, skipCmd} {
		c.Flags().StringVar(&markDate, "date", "", "session date (YYYY-MM-DD, default today)")
		c.Flags().IntVar(&markNumber, "number", 1, "session number within the task's sequence")
	}
}
