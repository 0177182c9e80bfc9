package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

const memberColumns = `id, church_id, name, email, role, password_hash`

// ListMembers retrieves all members of a tenant ordered by name
func (d *DB) ListMembers(ctx context.Context, tenantID string) ([]db.Member, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+memberColumns+`
		FROM users
		WHERE church_id = $1
		ORDER BY name, id
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// ListMembersByRole retrieves a tenant's members with the given role ordered by name
func (d *DB) ListMembersByRole(ctx context.Context, tenantID string, role db.Role) ([]db.Member, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+memberColumns+`
		FROM users
		WHERE church_id = $1 AND role = $2
		ORDER BY name, id
	`, tenantID, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query members by role: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// GetMember retrieves a member by ID within a tenant
func (d *DB) GetMember(ctx context.Context, tenantID, memberID string) (*db.Member, error) {
	return d.getMember(ctx, `
		SELECT `+memberColumns+`
		FROM users
		WHERE church_id = $1 AND id = $2
	`, tenantID, memberID)
}

// GetMemberByEmail retrieves a member by email within a tenant
func (d *DB) GetMemberByEmail(ctx context.Context, tenantID, email string) (*db.Member, error) {
	return d.getMember(ctx, `
		SELECT `+memberColumns+`
		FROM users
		WHERE church_id = $1 AND email = $2
	`, tenantID, email)
}

func (d *DB) getMember(ctx context.Context, query string, args ...any) (*db.Member, error) {
	var member db.Member
	var role string
	err := d.q.QueryRow(ctx, query, args...).Scan(
		&member.ID, &member.TenantID, &member.Name, &member.Email, &role, &member.PasswordHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query member: %w", err)
	}
	member.Role = db.Role(role)

	return &member, nil
}

// InsertMember inserts a member record
func (d *DB) InsertMember(ctx context.Context, member db.Member) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO users (id, church_id, name, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, member.ID, member.TenantID, member.Name, member.Email, string(member.Role), member.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// DeleteMembersByRole deletes all of a tenant's members with the given role
func (d *DB) DeleteMembersByRole(ctx context.Context, tenantID string, role db.Role) error {
	_, err := d.q.Exec(ctx, `
		DELETE FROM users
		WHERE church_id = $1 AND role = $2
	`, tenantID, string(role))
	if err != nil {
		return fmt.Errorf("failed to delete members by role: %w", err)
	}

	return nil
}

func scanMembers(rows pgx.Rows) ([]db.Member, error) {
	var members []db.Member
	for rows.Next() {
		var member db.Member
		var role string
		if err := rows.Scan(&member.ID, &member.TenantID, &member.Name, &member.Email, &role, &member.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.Role = db.Role(role)
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
