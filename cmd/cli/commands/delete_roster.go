package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// DeleteRosterCmd creates the deleteRoster command
func DeleteRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deleteRoster",
		Short: "Delete the tenant's duty assignments, all of them or a single date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")

			if date != "" {
				if err := services.DeleteOccurrence(app.Ctx, app.Database, app.Logger, app.TenantID, date); err != nil {
					return err
				}
				fmt.Printf("✓ Deleted assignments on %s\n", date)
				return nil
			}

			if err := services.DeleteRoster(app.Ctx, app.Database, app.Logger, app.TenantID); err != nil {
				return err
			}
			fmt.Println("✓ Deleted all assignments")

			return nil
		},
	}

	cmd.Flags().String("date", "", "Delete only assignments on this date (YYYY-MM-DD)")

	return cmd
}
