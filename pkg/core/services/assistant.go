package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/clients/assistantclient"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// EventEditor proposes schedule edits from a natural-language instruction
type EventEditor interface {
	ProposeEventEdits(ctx context.Context, instruction string, current []assistantclient.EventEdit) ([]assistantclient.EventEdit, error)
}

// ApplyAssistantEdits sends the tenant's current recurring events and the
// given instruction to the editor and applies the proposed edits. Edits are
// keyed by (day, time): deletes run first, then creates and updates. An
// upsert that omits activities keeps the activities already stored for that
// slot. If the editor fails nothing is changed.
func ApplyAssistantEdits(ctx context.Context, database db.Database, editor EventEditor, logger *zap.Logger, tenantID, instruction string) ([]db.RecurringEvent, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, fmt.Errorf("%w: instruction is required", ErrValidation)
	}

	events, err := database.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	current := make([]assistantclient.EventEdit, 0, len(events))
	for _, event := range events {
		current = append(current, assistantclient.EventEdit{
			Day:        event.Day,
			Time:       event.Time,
			Activities: roster.NormalizeActivities(event.Activities),
		})
	}

	edits, err := editor.ProposeEventEdits(ctx, instruction, current)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistant, err)
	}

	logger.Info("applying assistant edits",
		zap.String("tenantID", tenantID),
		zap.Int("editCount", len(edits)),
	)

	err = database.WithTx(ctx, func(tx db.Database) error {
		existing := make(map[[2]string]db.RecurringEvent, len(events))
		for _, event := range events {
			existing[slotKey(event.Day, event.Time)] = event
		}

		// Deletes first so an instruction that moves an event to an
		// occupied slot does not collide with the event it replaces.
		for _, edit := range edits {
			if !edit.Delete {
				continue
			}
			event, ok := existing[slotKey(edit.Day, edit.Time)]
			if !ok {
				continue
			}
			if err := tx.DeleteEvent(ctx, tenantID, event.ID); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
			delete(existing, slotKey(edit.Day, edit.Time))
		}

		for _, edit := range edits {
			if edit.Delete {
				continue
			}

			key := slotKey(edit.Day, edit.Time)
			event, exists := existing[key]

			activities := roster.JoinActivities(edit.Activities)
			if len(edit.Activities) == 0 && exists {
				activities = event.Activities
			}

			if exists {
				updated := event
				updated.Day = edit.Day
				updated.Time = edit.Time
				updated.Activities = activities
				if err := tx.UpdateEvent(ctx, updated); err != nil {
					return fmt.Errorf("failed to update event: %w", err)
				}
				existing[key] = updated
				continue
			}

			created := db.RecurringEvent{
				ID:         uuid.New().String(),
				TenantID:   tenantID,
				Day:        edit.Day,
				Time:       edit.Time,
				Activities: activities,
			}
			if err := tx.InsertEvent(ctx, created); err != nil {
				return fmt.Errorf("failed to insert event: %w", err)
			}
			existing[key] = created
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := database.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	sort.Slice(updated, func(i, j int) bool {
		orderI, orderJ := roster.WeekdayOrder(updated[i].Day), roster.WeekdayOrder(updated[j].Day)
		if orderI != orderJ {
			return orderI < orderJ
		}
		return eventClock(updated[i].Time).Before(eventClock(updated[j].Time))
	})

	return updated, nil
}

func slotKey(day, clock string) [2]string {
	return [2]string{strings.TrimSpace(day), strings.TrimSpace(clock)}
}
