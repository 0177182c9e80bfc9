package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// GetTenant retrieves a tenant record by ID
func (d *DB) GetTenant(ctx context.Context, tenantID string) (*db.Tenant, error) {
	var tenant db.Tenant
	err := d.q.QueryRow(ctx, `
		SELECT id, name, scheduling_rules
		FROM churches
		WHERE id = $1
	`, tenantID).Scan(&tenant.ID, &tenant.Name, &tenant.SchedulingRules)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}

	return &tenant, nil
}

// UpdateTenant updates a tenant's name and scheduling rules, inserting the
// record if it does not exist yet
func (d *DB) UpdateTenant(ctx context.Context, tenant db.Tenant) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO churches (id, name, scheduling_rules)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, scheduling_rules = EXCLUDED.scheduling_rules
	`, tenant.ID, tenant.Name, tenant.SchedulingRules)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	return nil
}
