package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ListEventsCmd creates the listEvents command
func ListEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEvents",
		Short: "List the tenant's recurring events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := services.ListEvents(app.Ctx, app.Database, app.TenantID)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No recurring events defined.")
				return nil
			}

			for _, event := range events {
				fmt.Printf("%s  %-10s %-9s %s\n", event.ID, event.Day, event.Time, event.Activities)
			}

			return nil
		},
	}
}

// AddEventCmd creates the addEvent command
func AddEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addEvent <day> <time> <activities>",
		Short: "Add a recurring event (e.g. addEvent Sunday \"10:00 AM\" \"Ushering, Singing\")",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := services.AddEvent(app.Ctx, app.Database, app.Logger, app.TenantID, services.EventInput{
				Day:        args[0],
				Time:       args[1],
				Activities: args[2],
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Event created: %s  %s %s  %s\n", event.ID, event.Day, event.Time, event.Activities)

			return nil
		},
	}
}

// UpdateEventCmd creates the updateEvent command
func UpdateEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "updateEvent <event_id> <day> <time> <activities>",
		Short: "Update a recurring event's day, time and activities",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := services.UpdateEvent(app.Ctx, app.Database, app.Logger, app.TenantID, args[0], services.EventInput{
				Day:        args[1],
				Time:       args[2],
				Activities: args[3],
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Event updated: %s  %s %s  %s\n", event.ID, event.Day, event.Time, event.Activities)

			return nil
		},
	}
}

// DeleteEventCmd creates the deleteEvent command
func DeleteEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteEvent <event_id>",
		Short: "Delete a recurring event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteEvent(app.Ctx, app.Database, app.Logger, app.TenantID, args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Event deleted: %s\n", args[0])

			return nil
		},
	}
}
