package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ReplaceSetupCmd creates the replaceSetup command
func ReplaceSetupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replaceSetup <event>...",
		Short: "Replace the tenant's name, scheduling rules and full event list in one step",
		Long: `Replace the tenant's name, scheduling rules and full recurring event list in one step.

Each event argument is "day|time|activities", for example:
  replaceSetup --name "St Mary" "Sunday|10:00 AM|Ushering, Singing" "Wednesday|7:00 PM|Prayer"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			rules, _ := cmd.Flags().GetString("rules")

			if name == "" {
				return fmt.Errorf("--name is required")
			}

			inputs := make([]services.EventInput, 0, len(args))
			for _, arg := range args {
				parts := strings.SplitN(arg, "|", 3)
				if len(parts) != 3 {
					return fmt.Errorf("event %q must be day|time|activities", arg)
				}
				inputs = append(inputs, services.EventInput{
					Day:        parts[0],
					Time:       parts[1],
					Activities: parts[2],
				})
			}

			if err := services.ReplaceSetup(app.Ctx, app.Database, app.Logger, app.TenantID, name, rules, inputs); err != nil {
				return err
			}

			fmt.Printf("✓ Setup replaced: %d event(s)\n", len(inputs))

			return nil
		},
	}

	cmd.Flags().String("name", "", "Tenant display name")
	cmd.Flags().String("rules", "", "Free-form scheduling rules text")

	return cmd
}
