package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// InsertSubstitution inserts a substitution request record
func (d *DB) InsertSubstitution(ctx context.Context, request db.SubstitutionRequest) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO substitution_requests (id, duty_id, requester_id, substitute_id, status, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, request.ID, request.DutyID, request.RequesterID, request.SubstituteID, string(request.Status), request.Message)
	if err != nil {
		return fmt.Errorf("failed to insert substitution request: %w", err)
	}

	return nil
}

// GetSubstitutionForTenant retrieves a substitution request by ID, scoped to
// the tenant by joining through the referenced duty row
func (d *DB) GetSubstitutionForTenant(ctx context.Context, tenantID, requestID string) (*db.SubstitutionRequest, error) {
	var request db.SubstitutionRequest
	var status string
	err := d.q.QueryRow(ctx, `
		SELECT sr.id, sr.duty_id, sr.requester_id, sr.substitute_id, sr.status, sr.message
		FROM substitution_requests sr
		JOIN duty_roster dr ON dr.id = sr.duty_id
		WHERE sr.id = $1 AND dr.church_id = $2
	`, requestID, tenantID).Scan(
		&request.ID, &request.DutyID, &request.RequesterID, &request.SubstituteID, &status, &request.Message,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query substitution request: %w", err)
	}
	request.Status = db.SubstitutionStatus(status)

	return &request, nil
}

// ListSubstitutionsByTenant retrieves all of a tenant's substitution requests
// joined with duty details and party names, pending first then newest duty first
func (d *DB) ListSubstitutionsByTenant(ctx context.Context, tenantID string) ([]db.SubstitutionDetail, error) {
	rows, err := d.q.Query(ctx, `
		SELECT sr.id, sr.duty_id, sr.requester_id, sr.substitute_id, sr.status, sr.message,
			to_char(dr.duty_date, 'YYYY-MM-DD'), dr.activity,
			requester.name, substitute.name
		FROM substitution_requests sr
		JOIN duty_roster dr ON dr.id = sr.duty_id
		JOIN users requester ON requester.id = sr.requester_id
		JOIN users substitute ON substitute.id = sr.substitute_id
		WHERE dr.church_id = $1
		ORDER BY (sr.status = 'pending') DESC, dr.duty_date DESC, sr.id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query substitution requests: %w", err)
	}
	defer rows.Close()

	var details []db.SubstitutionDetail
	for rows.Next() {
		var detail db.SubstitutionDetail
		var status string
		if err := rows.Scan(
			&detail.Request.ID, &detail.Request.DutyID, &detail.Request.RequesterID,
			&detail.Request.SubstituteID, &status, &detail.Request.Message,
			&detail.DutyDate, &detail.DutyActivity,
			&detail.RequesterName, &detail.SubstituteName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan substitution request: %w", err)
		}
		detail.Request.Status = db.SubstitutionStatus(status)
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating substitution requests: %w", err)
	}

	return details, nil
}

// UpdateSubstitutionStatus sets a substitution request's status, scoped to
// the tenant by joining through the referenced duty row
func (d *DB) UpdateSubstitutionStatus(ctx context.Context, tenantID, requestID string, status db.SubstitutionStatus) error {
	_, err := d.q.Exec(ctx, `
		UPDATE substitution_requests sr
		SET status = $3
		FROM duty_roster dr
		WHERE sr.id = $1 AND dr.id = sr.duty_id AND dr.church_id = $2
	`, requestID, tenantID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update substitution status: %w", err)
	}

	return nil
}
