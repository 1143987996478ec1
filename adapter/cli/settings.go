package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rosalinda-art/studyflow/internal/planner/application/commands"
	"github.com/Rosalinda-art/studyflow/internal/planner/application/queries"
	"github.com/Rosalinda-art/studyflow/internal/planner/domain"
)

var (
	settingsWorkDays    []string
	settingsDailyHours  float64
	settingsBufferDays  int
	settingsWindowStart int
	settingsWindowEnd   int
	settingsMinSession  int
	settingsPlanMode    string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change planning preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current planning preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetSettingsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		s, err := app.GetSettingsHandler.Handle(cmd.Context(), queries.GetSettingsQuery{})
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		printSettings(s)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change planning preferences",
	Long: `Change one or more planning preferences. Flags not passed keep their
current value.

Examples:
  studyflow settings set --daily-hours 6
  studyflow settings set --work-days mon,tue,wed,thu,fri,sat --window-start 9 --window-end 21
  studyflow settings set --plan-mode balanced --buffer-days 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.UpdateSettingsHandler == nil || app.GetSettingsHandler == nil {
			return fmt.Errorf("no database connection available")
		}

		s, err := app.GetSettingsHandler.Handle(cmd.Context(), queries.GetSettingsQuery{})
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		if cmd.Flags().Changed("work-days") {
			days, err := parseWorkDays(settingsWorkDays)
			if err != nil {
				return err
			}
			s.WorkDays = days
		}
		if cmd.Flags().Changed("daily-hours") {
			s.DailyAvailableHours = settingsDailyHours
		}
		if cmd.Flags().Changed("buffer-days") {
			s.BufferDays = settingsBufferDays
		}
		if cmd.Flags().Changed("window-start") {
			s.StudyWindowStartHour = settingsWindowStart
		}
		if cmd.Flags().Changed("window-end") {
			s.StudyWindowEndHour = settingsWindowEnd
		}
		if cmd.Flags().Changed("min-session") {
			s.MinSessionMinutes = settingsMinSession
		}
		if cmd.Flags().Changed("plan-mode") {
			s.PlanMode = domain.ParsePlanMode(settingsPlanMode)
		}

		err = app.UpdateSettingsHandler.Handle(cmd.Context(), commands.UpdateSettingsCommand{Settings: s})
		if errors.Is(err, commands.ErrInvalidSettings) {
			return fmt.Errorf("%w; check that the study window and work days are sensible", err)
		}
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Println("Settings saved.")
		printSettings(s)
		return nil
	},
}

func printSettings(s domain.Settings) {
	names := make([]string, 0, len(s.WorkDays))
	for _, d := range s.WorkDays {
		names = append(names, d.String()[:3])
	}
	fmt.Printf("\n  Work days:     %s\n", strings.Join(names, ","))
	fmt.Printf("  Daily hours:   %.1f\n", s.DailyAvailableHours)
	fmt.Printf("  Buffer days:   %d\n", s.BufferDays)
	fmt.Printf("  Study window:  %02d:00-%02d:00\n", s.StudyWindowStartHour, s.StudyWindowEndHour)
	fmt.Printf("  Min session:   %d min\n", s.MinSessionMinutes)
	fmt.Printf("  Plan mode:     %s\n", s.PlanMode)
}

func parseWorkDays(raw []string) ([]time.Weekday, error) {
	byName := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
		"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
		"sat": time.Saturday,
	}
	days := make([]time.Weekday, 0, len(raw))
	for _, r := range raw {
		key := strings.ToLower(strings.TrimSpace(r))
		if len(key) > 3 {
			key = key[:3]
		}
		d, ok := byName[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", r)
		}
		days = append(days, d)
	}
	return days, nil
}

func init() {
	settingsSetCmd.Flags().StringSliceVar(&settingsWorkDays, "work-days", nil, "weekdays available for study (e.g. mon,tue,wed)")
	settingsSetCmd.Flags().Float64Var(&settingsDailyHours, "daily-hours", 0, "study hours available per work day")
	settingsSetCmd.Flags().IntVar(&settingsBufferDays, "buffer-days", 0, "days before each deadline to leave free")
	settingsSetCmd.Flags().IntVar(&settingsWindowStart, "window-start", 0, "earliest study hour (0-23)")
	settingsSetCmd.Flags().IntVar(&settingsWindowEnd, "window-end", 0, "latest study hour (1-24)")
	settingsSetCmd.Flags().IntVar(&settingsMinSession, "min-session", 0, "minimum session length in minutes")
	settingsSetCmd.Flags().StringVar(&settingsPlanMode, "plan-mode", "", "distribution mode: even, balanced, or eisenhower")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
