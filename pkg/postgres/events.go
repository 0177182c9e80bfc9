package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListEvents retrieves all recurring events for a tenant
func (d *DB) ListEvents(ctx context.Context, tenantID string) ([]db.RecurringEvent, error) {
	rows, err := d.q.Query(ctx, `
		SELECT id, church_id, day_of_week, time_of_day, activities
		FROM worship_services
		WHERE church_id = $1
		ORDER BY id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.RecurringEvent
	for rows.Next() {
		var event db.RecurringEvent
		if err := rows.Scan(&event.ID, &event.TenantID, &event.Day, &event.Time, &event.Activities); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetEvent retrieves a recurring event by ID within a tenant
func (d *DB) GetEvent(ctx context.Context, tenantID, eventID string) (*db.RecurringEvent, error) {
	var event db.RecurringEvent
	err := d.q.QueryRow(ctx, `
		SELECT id, church_id, day_of_week, time_of_day, activities
		FROM worship_services
		WHERE church_id = $1 AND id = $2
	`, tenantID, eventID).Scan(&event.ID, &event.TenantID, &event.Day, &event.Time, &event.Activities)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return &event, nil
}

// InsertEvent inserts a recurring event record
func (d *DB) InsertEvent(ctx context.Context, event db.RecurringEvent) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO worship_services (id, church_id, day_of_week, time_of_day, activities)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.TenantID, event.Day, event.Time, event.Activities)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// UpdateEvent updates a recurring event's day, time and activities
func (d *DB) UpdateEvent(ctx context.Context, event db.RecurringEvent) error {
	_, err := d.q.Exec(ctx, `
		UPDATE worship_services
		SET day_of_week = $3, time_of_day = $4, activities = $5
		WHERE church_id = $1 AND id = $2
	`, event.TenantID, event.ID, event.Day, event.Time, event.Activities)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// DeleteEvent deletes a recurring event by ID within a tenant
func (d *DB) DeleteEvent(ctx context.Context, tenantID, eventID string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM worship_services
		WHERE church_id = $1 AND id = $2
	`, tenantID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// DeleteEvents deletes all of a tenant's recurring events
func (d *DB) DeleteEvents(ctx context.Context, tenantID string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM worship_services
		WHERE church_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	return nil
}
