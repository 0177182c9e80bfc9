package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// RequestSubstitutionCmd creates the requestSubstitution command
func RequestSubstitutionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requestSubstitution <duty_id> <substitute_email>",
		Short: "Request that another member take over a duty assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requesterID, _ := cmd.Flags().GetString("requester")
			message, _ := cmd.Flags().GetString("message")

			if requesterID == "" {
				return fmt.Errorf("--requester is required")
			}

			request, err := services.RequestSubstitution(app.Ctx, app.Database, app.Logger,
				app.TenantID, requesterID, args[0], args[1], message)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Substitution requested: %s (status: %s)\n", request.ID, request.Status)

			return nil
		},
	}

	cmd.Flags().String("requester", "", "Member ID of the assignee requesting the substitution")
	cmd.Flags().String("message", "", "Optional message for the reviewing admin")

	return cmd
}

// ListSubstitutionsCmd creates the listSubstitutions command
func ListSubstitutionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSubstitutions",
		Short: "List the tenant's substitution requests, pending first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := services.ListSubstitutions(app.Ctx, app.Database, app.TenantID)
			if err != nil {
				return err
			}

			if len(details) == 0 {
				fmt.Println("No substitution requests found.")
				return nil
			}

			for _, detail := range details {
				fmt.Printf("%s  %-8s %s %-20s %s -> %s\n",
					detail.Request.ID, detail.Request.Status,
					detail.DutyDate, detail.DutyActivity,
					detail.RequesterName, detail.SubstituteName)
				if detail.Request.Message != "" {
					fmt.Printf("    message: %s\n", detail.Request.Message)
				}
			}

			return nil
		},
	}
}

// ResolveSubstitutionCmd creates the resolveSubstitution command
func ResolveSubstitutionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolveSubstitution <request_id> <approve|deny>",
		Short: "Approve or deny a pending substitution request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, _ := cmd.Flags().GetString("actor")
			if actorID == "" {
				return fmt.Errorf("--actor is required")
			}

			var approve bool
			switch args[1] {
			case "approve":
				approve = true
			case "deny":
				approve = false
			default:
				return fmt.Errorf("decision must be approve or deny, got %q", args[1])
			}

			actor, err := app.Database.GetMember(app.Ctx, app.TenantID, actorID)
			if err != nil {
				return err
			}
			if actor == nil {
				return fmt.Errorf("no member with ID %s", actorID)
			}

			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			request, err := services.ResolveSubstitution(app.Ctx, app.Database, notifier, app.Logger,
				app.TenantID, *actor, args[0], approve)
			if err != nil {
				return err
			}

			if request.Status == db.SubstitutionApproved {
				fmt.Printf("✓ Substitution approved, duty %s reassigned\n", request.DutyID)
			} else {
				fmt.Printf("✓ Substitution denied\n")
			}

			return nil
		},
	}

	cmd.Flags().String("actor", "", "Member ID of the admin resolving the request")

	return cmd
}
