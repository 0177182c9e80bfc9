package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generateRoster <month> <year>",
		Short: "Generate the duty roster for a month, replacing any existing assignments in it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			result, err := services.GenerateRoster(app.Ctx, app.Database, notifier, app.Logger, app.TenantID, month, year)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Duty roster generated for %04d-%02d!\n\n", year, month)
			fmt.Printf("Assignments: %d\n", len(result.Assignments))
			for _, assignment := range result.Assignments {
				fmt.Printf("  %s  %-20s -> %s\n", assignment.Date, assignment.Activity, assignment.MemberID)
			}

			if len(result.Skipped) > 0 {
				fmt.Printf("\nSkipped slots: %d\n", len(result.Skipped))
				for _, skipped := range result.Skipped {
					fmt.Printf("  %s  %-20s (%s)\n", skipped.Date, skipped.Activity, skipped.Reason)
				}
			}

			fmt.Printf("\nNotifications sent: %d, failed: %d\n", result.NotificationsSent, result.NotificationsFailed)

			return nil
		},
	}
}
