package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListMembersCmd creates the listMembers command
func ListMembersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listMembers",
		Short: "List the tenant's members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := services.ListMembers(app.Ctx, app.Database, app.TenantID)
			if err != nil {
				return err
			}

			if len(members) == 0 {
				fmt.Println("No members found.")
				return nil
			}

			for _, member := range members {
				fmt.Printf("%s  %-7s %-25s %s\n", member.ID, member.Role, member.Name, member.Email)
			}

			return nil
		},
	}
}

// AddMemberCmd creates the addMember command
func AddMemberCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addMember <name> <email> <password>",
		Short: "Add a member to the tenant",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roleFlag, _ := cmd.Flags().GetString("role")

			member, err := services.CreateMember(app.Ctx, app.Database, app.Logger, app.TenantID,
				args[0], args[1], args[2], db.Role(roleFlag))
			if err != nil {
				return err
			}

			fmt.Printf("✓ Member created: %s  %s <%s>\n", member.ID, member.Name, member.Email)

			return nil
		},
	}

	cmd.Flags().String("role", string(db.RoleMember), "Member role (admin or member)")

	return cmd
}

// SeedMembersCmd creates the seedMembers command
func SeedMembersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seedMembers [count]",
		Short: "Replace the tenant's non-admin members with generated test members",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 10
			if len(args) == 1 {
				var err error
				count, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
			}

			members, err := services.SeedMembers(app.Ctx, app.Database, app.Logger, app.TenantID, count)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Seeded %d member(s)\n", len(members))
			for _, member := range members {
				fmt.Printf("  %s  %-25s %s\n", member.ID, member.Name, member.Email)
			}

			return nil
		},
	}
}
