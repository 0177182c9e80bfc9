package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// Duty dates are stored as DATE and exchanged as ISO strings, so selects
// format the column and parameters are cast on the way in.
const assignmentColumns = `id, church_id, to_char(duty_date, 'YYYY-MM-DD'), activity, user_id`

// DeleteRange deletes a tenant's assignments with startDate <= date < endDate
func (d *DB) DeleteRange(ctx context.Context, tenantID, startDate, endDate string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM duty_roster
		WHERE church_id = $1 AND duty_date >= $2::date AND duty_date < $3::date
	`, tenantID, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to delete assignment range: %w", err)
	}

	return nil
}

// DeleteAll deletes all of a tenant's assignments
func (d *DB) DeleteAll(ctx context.Context, tenantID string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM duty_roster
		WHERE church_id = $1
	`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	return nil
}

// DeleteByDate deletes a tenant's assignments on a single date
func (d *DB) DeleteByDate(ctx context.Context, tenantID, date string) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM duty_roster
		WHERE church_id = $1 AND duty_date = $2::date
	`, tenantID, date)
	if err != nil {
		return fmt.Errorf("failed to delete assignments by date: %w", err)
	}

	return nil
}

// Exists reports whether an assignment exists for the given date and activity
func (d *DB) Exists(ctx context.Context, tenantID, date, activity string) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM duty_roster
			WHERE church_id = $1 AND duty_date = $2::date AND activity = $3
		)
	`, tenantID, date, activity).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment existence: %w", err)
	}

	return exists, nil
}

// InsertAssignment inserts a duty assignment record
func (d *DB) InsertAssignment(ctx context.Context, assignment db.DutyAssignment) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO duty_roster (id, church_id, duty_date, activity, user_id)
		VALUES ($1, $2, $3::date, $4, $5)
	`, assignment.ID, assignment.TenantID, assignment.Date, assignment.Activity, assignment.MemberID)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	return nil
}

// ListByTenant retrieves all of a tenant's assignments ordered by date
func (d *DB) ListByTenant(ctx context.Context, tenantID string) ([]db.DutyAssignment, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM duty_roster
		WHERE church_id = $1
		ORDER BY duty_date, activity
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListByMember retrieves a member's assignments on or after fromDate ordered by date
func (d *DB) ListByMember(ctx context.Context, tenantID, memberID, fromDate string) ([]db.DutyAssignment, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM duty_roster
		WHERE church_id = $1 AND user_id = $2 AND duty_date >= $3::date
		ORDER BY duty_date, activity
	`, tenantID, memberID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query member assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetAssignmentForMember retrieves an assignment by ID only if it belongs to
// the tenant and is assigned to the given member
func (d *DB) GetAssignmentForMember(ctx context.Context, tenantID, dutyID, memberID string) (*db.DutyAssignment, error) {
	var assignment db.DutyAssignment
	err := d.q.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM duty_roster
		WHERE church_id = $1 AND id = $2 AND user_id = $3
	`, tenantID, dutyID, memberID).Scan(
		&assignment.ID, &assignment.TenantID, &assignment.Date, &assignment.Activity, &assignment.MemberID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}

	return &assignment, nil
}

// UpdateAssignmentMember reassigns a duty to a different member
func (d *DB) UpdateAssignmentMember(ctx context.Context, tenantID, dutyID, memberID string) error {
	_, err := d.q.Exec(ctx, `
		UPDATE duty_roster
		SET user_id = $3
		WHERE church_id = $1 AND id = $2
	`, tenantID, dutyID, memberID)
	if err != nil {
		return fmt.Errorf("failed to update assignment member: %w", err)
	}

	return nil
}

func scanAssignments(rows pgx.Rows) ([]db.DutyAssignment, error) {
	var assignments []db.DutyAssignment
	for rows.Next() {
		var a db.DutyAssignment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Date, &a.Activity, &a.MemberID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
