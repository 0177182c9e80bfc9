package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// RosterEntry is one assignment within an occurrence group
type RosterEntry struct {
	AssignmentID string
	Activity     string
	MemberID     string
	MemberName   string
}

// OccurrenceRoster groups a tenant's assignments under one concrete
// occurrence (date plus event time)
type OccurrenceRoster struct {
	Date    string
	Day     string
	Time    string
	Entries []RosterEntry
}

// RosterViewStore defines the database operations needed to view a roster
type RosterViewStore interface {
	ListEvents(ctx context.Context, tenantID string) ([]db.RecurringEvent, error)
	ListByTenant(ctx context.Context, tenantID string) ([]db.DutyAssignment, error)
	ListMembers(ctx context.Context, tenantID string) ([]db.Member, error)
}

// ViewRoster returns the tenant's full roster grouped by occurrence, in
// chronological order. Assignments whose date no longer matches any defined
// event's weekday (the event was edited or removed after generation) are
// omitted, matching the grouping's derivation from current event
// definitions.
func ViewRoster(ctx context.Context, store RosterViewStore, logger *zap.Logger, tenantID string) ([]OccurrenceRoster, error) {
	events, err := store.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEventsDefined
	}

	assignments, err := store.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	members, err := store.ListMembers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	namesByID := make(map[string]string, len(members))
	for _, member := range members {
		namesByID[member.ID] = member.Name
	}

	groups := make(map[string]*OccurrenceRoster)
	for _, assignment := range assignments {
		date, err := time.Parse(roster.DateLayout, assignment.Date)
		if err != nil {
			logger.Warn("Skipping assignment with unparseable date",
				zap.String("assignment_id", assignment.ID),
				zap.String("date", assignment.Date))
			continue
		}

		for _, event := range events {
			weekday, ok := roster.TimeWeekday(event.Day)
			if !ok || weekday != date.Weekday() {
				continue
			}

			key := assignment.Date + "|" + event.Time
			group, exists := groups[key]
			if !exists {
				group = &OccurrenceRoster{
					Date: assignment.Date,
					Day:  event.Day,
					Time: event.Time,
				}
				groups[key] = group
			}
			group.Entries = append(group.Entries, RosterEntry{
				AssignmentID: assignment.ID,
				Activity:     assignment.Activity,
				MemberID:     assignment.MemberID,
				MemberName:   namesByID[assignment.MemberID],
			})
		}
	}

	result := make([]OccurrenceRoster, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		ti, _ := roster.ParseClock(result[i].Time)
		tj, _ := roster.ParseClock(result[j].Time)
		return ti.Before(tj)
	})

	return result, nil
}

// DeleteRoster removes every assignment belonging to the tenant
func DeleteRoster(ctx context.Context, store db.RosterStore, logger *zap.Logger, tenantID string) error {
	if err := store.DeleteAll(ctx, tenantID); err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	logger.Info("Deleted all roster assignments", zap.String("tenant_id", tenantID))
	return nil
}

// DeleteOccurrence removes every assignment on one date. All of the date's
// assignments go, even when multiple events share the date.
func DeleteOccurrence(ctx context.Context, store db.RosterStore, logger *zap.Logger, tenantID, date string) error {
	if _, err := time.Parse(roster.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, date)
	}

	if err := store.DeleteByDate(ctx, tenantID, date); err != nil {
		return fmt.Errorf("failed to delete occurrence roster: %w", err)
	}
	logger.Info("Deleted roster assignments for date",
		zap.String("tenant_id", tenantID),
		zap.String("date", date))
	return nil
}

// UpcomingAssignments returns a member's assignments on or after the given
// date, ascending
func UpcomingAssignments(ctx context.Context, store db.RosterStore, tenantID, memberID string, from time.Time) ([]db.DutyAssignment, error) {
	assignments, err := store.ListByMember(ctx, tenantID, memberID, from.Format(roster.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member assignments: %w", err)
	}
	return assignments, nil
}
