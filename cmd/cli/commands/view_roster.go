package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ViewRosterCmd creates the viewRoster command
func ViewRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRoster",
		Short: "View the full duty roster grouped by occurrence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			occurrences, err := services.ViewRoster(app.Ctx, app.Database, app.Logger, app.TenantID)
			if err != nil {
				return err
			}

			if len(occurrences) == 0 {
				fmt.Println("No assignments found. Run generateRoster first.")
				return nil
			}

			for _, occurrence := range occurrences {
				fmt.Printf("\n%s (%s) at %s\n", occurrence.Date, occurrence.Day, occurrence.Time)
				for _, entry := range occurrence.Entries {
					fmt.Printf("  %-20s %s\n", entry.Activity, entry.MemberName)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
