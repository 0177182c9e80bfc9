package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ListActivitiesCmd creates the listActivities command
func ListActivitiesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listActivities",
		Short: "List every activity named by the tenant's recurring events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := services.ListActivities(app.Ctx, app.Database, app.TenantID)
			if err != nil {
				return err
			}

			if len(activities) == 0 {
				fmt.Println("No activities defined. Add recurring events first.")
				return nil
			}

			for _, activity := range activities {
				fmt.Println(activity)
			}

			return nil
		},
	}
}

// SetEligibilityCmd creates the setEligibility command
func SetEligibilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setEligibility <grant>...",
		Short: "Replace the tenant's eligibility grants",
		Long: `Replace every eligibility grant for the tenant.

Each grant argument is "member_id|activity", for example:
  setEligibility "b2d4…|Ushering" "b2d4…|Singing" "9f31…|Ushering"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grants := make([]services.GrantInput, 0, len(args))
			for _, arg := range args {
				parts := strings.SplitN(arg, "|", 2)
				if len(parts) != 2 {
					return fmt.Errorf("grant %q must be member_id|activity", arg)
				}
				grants = append(grants, services.GrantInput{
					MemberID: parts[0],
					Activity: parts[1],
				})
			}

			if err := services.ReplaceEligibility(app.Ctx, app.Database, app.Logger, app.TenantID, grants); err != nil {
				return err
			}

			fmt.Printf("✓ Eligibility replaced: %d grant(s)\n", len(grants))

			return nil
		},
	}
}
