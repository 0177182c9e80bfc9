package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// UpcomingDutiesCmd creates the upcomingDuties command
func UpcomingDutiesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcomingDuties <member_id>",
		Short: "List a member's duty assignments from today onwards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFlag, _ := cmd.Flags().GetString("from")

			from := time.Now()
			if fromFlag != "" {
				var err error
				from, err = time.Parse(roster.DateLayout, fromFlag)
				if err != nil {
					return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
				}
			}

			assignments, err := services.UpcomingAssignments(app.Ctx, app.Database, app.TenantID, args[0], from)
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Println("No upcoming duties.")
				return nil
			}

			for _, assignment := range assignments {
				fmt.Printf("%s  %-20s (duty %s)\n", assignment.Date, assignment.Activity, assignment.ID)
			}

			return nil
		},
	}

	cmd.Flags().String("from", "", "List duties on or after this date instead of today (YYYY-MM-DD)")

	return cmd
}
