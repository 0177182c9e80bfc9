package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListGrants retrieves all eligibility grants for a tenant
func (d *DB) ListGrants(ctx context.Context, tenantID string) ([]db.EligibilityGrant, error) {
	rows, err := d.q.Query(ctx, `
		SELECT church_id, user_id, activity
		FROM activity_eligibility
		WHERE church_id = $1
		ORDER BY activity, user_id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	var grants []db.EligibilityGrant
	for rows.Next() {
		var grant db.EligibilityGrant
		if err := rows.Scan(&grant.TenantID, &grant.MemberID, &grant.Activity); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grants: %w", err)
	}

	return grants, nil
}

// InsertGrant inserts an eligibility grant, ignoring duplicates
func (d *DB) InsertGrant(ctx context.Context, grant db.EligibilityGrant) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO activity_eligibility (church_id, user_id, activity)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, grant.TenantID, grant.MemberID, grant.Activity)
	if err != nil {
		return fmt.Errorf("failed to insert grant: %w", err)
	}

	return nil
}

// DeleteGrants deletes all of a tenant's eligibility grants
func (d *DB) DeleteGrants(ctx context.Context, tenantID string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM activity_eligibility
		WHERE church_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete grants: %w", err)
	}

	return nil
}
