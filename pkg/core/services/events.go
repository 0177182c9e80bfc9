package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

var validate = validator.New()

// EventInput carries the fields of a recurring event being created or
// updated
type EventInput struct {
	Day        string `validate:"required"`
	Time       string `validate:"required"`
	Activities string `validate:"required"`
}

// validateEventInput rejects inputs whose day or time would never expand to
// an occurrence. Runs before any mutation.
func validateEventInput(input EventInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, ok := roster.ParseWeekday(input.Day); !ok {
		return fmt.Errorf("%w: %q is not a weekday name", ErrValidation, input.Day)
	}
	if _, err := roster.ParseClock(input.Time); err != nil {
		return fmt.Errorf("%w: %q is not a 12-hour time like \"10:00 AM\"", ErrValidation, input.Time)
	}
	return nil
}

// ListEvents returns the tenant's recurring events sorted by day of week
// (Sunday first) and then by time of day
func ListEvents(ctx context.Context, store db.EventStore, tenantID string) ([]db.RecurringEvent, error) {
	events, err := store.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	sortEvents(events)
	return events, nil
}

func sortEvents(events []db.RecurringEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		oi, oj := roster.WeekdayOrder(events[i].Day), roster.WeekdayOrder(events[j].Day)
		if oi != oj {
			return oi < oj
		}
		ti, tj := eventClock(events[i].Time), eventClock(events[j].Time)
		return ti.Before(tj)
	})
}

// eventClock parses an event time for sorting, treating malformed values as
// midnight so they group first instead of failing the listing
func eventClock(value string) time.Time {
	t, err := roster.ParseClock(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddEvent creates a recurring event for the tenant. The activity list is
// normalized (trimmed, de-duplicated) before storage so that eligibility
// indexing and allocation see the same names.
func AddEvent(ctx context.Context, store db.EventStore, logger *zap.Logger, tenantID string, input EventInput) (*db.RecurringEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := db.RecurringEvent{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Day:        input.Day,
		Time:       input.Time,
		Activities: roster.JoinActivities(roster.NormalizeActivities(input.Activities)),
	}
	if err := store.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	logger.Info("Added recurring event",
		zap.String("tenant_id", tenantID),
		zap.String("event_id", event.ID),
		zap.String("day", event.Day),
		zap.String("time", event.Time))

	return &event, nil
}

// UpdateEvent replaces an event's day, time, and activities. Events
// belonging to another tenant are reported as not found.
func UpdateEvent(ctx context.Context, store db.EventStore, logger *zap.Logger, tenantID, eventID string, input EventInput) (*db.RecurringEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	existing, err := store.GetEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	event := db.RecurringEvent{
		ID:         eventID,
		TenantID:   tenantID,
		Day:        input.Day,
		Time:       input.Time,
		Activities: roster.JoinActivities(roster.NormalizeActivities(input.Activities)),
	}
	if err := store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	logger.Info("Updated recurring event",
		zap.String("tenant_id", tenantID),
		zap.String("event_id", eventID))

	return &event, nil
}

// DeleteEvent removes one recurring event
func DeleteEvent(ctx context.Context, store db.EventStore, logger *zap.Logger, tenantID, eventID string) error {
	existing, err := store.GetEvent(ctx, tenantID, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := store.DeleteEvent(ctx, tenantID, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	logger.Info("Deleted recurring event",
		zap.String("tenant_id", tenantID),
		zap.String("event_id", eventID))

	return nil
}

// ReplaceSetup updates the tenant's display name and scheduling-rules note
// and replaces its full event list in one transaction. Rows with all fields
// blank are ignored; anything else must validate before the transaction
// starts.
func ReplaceSetup(ctx context.Context, database db.Database, logger *zap.Logger, tenantID, name, schedulingRules string, inputs []EventInput) error {
	tenant, err := database.GetTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to fetch tenant: %w", err)
	}
	if tenant == nil {
		return ErrNotFound
	}

	var kept []EventInput
	for _, input := range inputs {
		if input.Day == "" && input.Time == "" && input.Activities == "" {
			continue
		}
		if err := validateEventInput(input); err != nil {
			return err
		}
		kept = append(kept, input)
	}

	err = database.WithTx(ctx, func(tx db.Database) error {
		if err := tx.UpdateTenant(ctx, db.Tenant{
			ID:              tenantID,
			Name:            name,
			SchedulingRules: schedulingRules,
		}); err != nil {
			return fmt.Errorf("failed to update tenant: %w", err)
		}

		if err := tx.DeleteEvents(ctx, tenantID); err != nil {
			return fmt.Errorf("failed to clear events: %w", err)
		}

		for _, input := range kept {
			if err := tx.InsertEvent(ctx, db.RecurringEvent{
				ID:         uuid.New().String(),
				TenantID:   tenantID,
				Day:        input.Day,
				Time:       input.Time,
				Activities: roster.JoinActivities(roster.NormalizeActivities(input.Activities)),
			}); err != nil {
				return fmt.Errorf("failed to insert event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Replaced tenant setup",
		zap.String("tenant_id", tenantID),
		zap.Int("events", len(kept)))

	return nil
}
