package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GrantInput names one (member, activity) eligibility pair
type GrantInput struct {
	MemberID string
	Activity string
}

// ListActivities derives the tenant's activity names from its event
// definitions, using the shared normalization, sorted alphabetically.
// Eligibility is granted against these names.
func ListActivities(ctx context.Context, store db.EventStore, tenantID string) ([]string, error) {
	events, err := store.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	seen := make(map[string]bool)
	var activities []string
	for _, event := range events {
		for _, activity := range roster.NormalizeActivities(event.Activities) {
			if !seen[activity] {
				seen[activity] = true
				activities = append(activities, activity)
			}
		}
	}
	sort.Strings(activities)

	return activities, nil
}

// ReplaceEligibility replaces the tenant's whole grant set in one
// transaction. Every grant must reference a member of the tenant; grants
// for unknown members are rejected before anything is deleted.
func ReplaceEligibility(ctx context.Context, database db.Database, logger *zap.Logger, tenantID string, grants []GrantInput) error {
	members, err := database.ListMembersByRole(ctx, tenantID, db.RoleMember)
	if err != nil {
		return fmt.Errorf("failed to fetch members: %w", err)
	}
	known := make(map[string]bool, len(members))
	for _, member := range members {
		known[member.ID] = true
	}

	for _, grant := range grants {
		if strings.TrimSpace(grant.Activity) == "" {
			return fmt.Errorf("%w: grant activity must not be empty", ErrValidation)
		}
		if !known[grant.MemberID] {
			return fmt.Errorf("%w: member %s", ErrNotFound, grant.MemberID)
		}
	}

	err = database.WithTx(ctx, func(tx db.Database) error {
		if err := tx.DeleteGrants(ctx, tenantID); err != nil {
			return fmt.Errorf("failed to clear eligibility grants: %w", err)
		}
		for _, grant := range grants {
			if err := tx.InsertGrant(ctx, db.EligibilityGrant{
				TenantID: tenantID,
				MemberID: grant.MemberID,
				Activity: strings.TrimSpace(grant.Activity),
			}); err != nil {
				return fmt.Errorf("failed to insert eligibility grant: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Replaced eligibility grants",
		zap.String("tenant_id", tenantID),
		zap.Int("grants", len(grants)))

	return nil
}
