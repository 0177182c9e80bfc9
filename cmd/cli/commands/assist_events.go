package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// AssistEventsCmd creates the assistEvents command
func AssistEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assistEvents <instruction>...",
		Short: "Edit the recurring event schedule with a natural-language instruction",
		Long: `Edit the recurring event schedule with a natural-language instruction, for example:

  assistEvents move the Sunday morning service to 11:00 AM
  assistEvents delete the Wednesday evening event`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := app.Assistant()
			if err != nil {
				return err
			}
			defer assistant.Close()

			instruction := strings.Join(args, " ")

			events, err := services.ApplyAssistantEdits(app.Ctx, app.Database, assistant, app.Logger,
				app.TenantID, instruction)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Schedule updated, %d event(s):\n", len(events))
			for _, event := range events {
				fmt.Printf("  %s  %-10s %-9s %s\n", event.ID, event.Day, event.Time, event.Activities)
			}

			return nil
		},
	}
}
