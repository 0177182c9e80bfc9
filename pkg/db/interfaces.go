package db

import "context"

// Every store operation takes the owning tenant's ID as an explicit
// parameter. Tenant isolation is a type-level contract here, not a per-query
// discipline: there is no way to call a mutating operation without naming
// the tenant it is scoped to.
//
// Lookup methods return (nil, nil) when no row matches; callers decide
// whether absence is an error.

// TenantStore defines tenant record operations
type TenantStore interface {
	GetTenant(ctx context.Context, tenantID string) (*Tenant, error)
	UpdateTenant(ctx context.Context, tenant Tenant) error
}

// MemberStore defines member record operations
type MemberStore interface {
	ListMembers(ctx context.Context, tenantID string) ([]Member, error)
	ListMembersByRole(ctx context.Context, tenantID string, role Role) ([]Member, error)
	GetMember(ctx context.Context, tenantID, memberID string) (*Member, error)
	GetMemberByEmail(ctx context.Context, tenantID, email string) (*Member, error)
	InsertMember(ctx context.Context, member Member) error
	DeleteMembersByRole(ctx context.Context, tenantID string, role Role) error
}

// EventStore defines recurring event operations
type EventStore interface {
	ListEvents(ctx context.Context, tenantID string) ([]RecurringEvent, error)
	GetEvent(ctx context.Context, tenantID, eventID string) (*RecurringEvent, error)
	InsertEvent(ctx context.Context, event RecurringEvent) error
	UpdateEvent(ctx context.Context, event RecurringEvent) error
	DeleteEvent(ctx context.Context, tenantID, eventID string) error
	DeleteEvents(ctx context.Context, tenantID string) error
}

// EligibilityStore defines eligibility grant operations
type EligibilityStore interface {
	ListGrants(ctx context.Context, tenantID string) ([]EligibilityGrant, error)
	InsertGrant(ctx context.Context, grant EligibilityGrant) error
	DeleteGrants(ctx context.Context, tenantID string) error
}

// RosterStore defines duty assignment operations. Date parameters are ISO
// date strings; range deletes treat the end date as exclusive.
type RosterStore interface {
	DeleteRange(ctx context.Context, tenantID, startDate, endDate string) error
	DeleteAll(ctx context.Context, tenantID string) error
	DeleteByDate(ctx context.Context, tenantID, date string) error
	Exists(ctx context.Context, tenantID, date, activity string) (bool, error)
	InsertAssignment(ctx context.Context, assignment DutyAssignment) error
	ListByTenant(ctx context.Context, tenantID string) ([]DutyAssignment, error)
	ListByMember(ctx context.Context, tenantID, memberID, fromDate string) ([]DutyAssignment, error)
	GetAssignmentForMember(ctx context.Context, tenantID, dutyID, memberID string) (*DutyAssignment, error)
	UpdateAssignmentMember(ctx context.Context, tenantID, dutyID, memberID string) error
}

// SubstitutionStore defines substitution request operations. Tenant scoping
// is enforced by joining through the referenced duty row, so a request whose
// duty belongs to another tenant is indistinguishable from a nonexistent one.
type SubstitutionStore interface {
	InsertSubstitution(ctx context.Context, request SubstitutionRequest) error
	GetSubstitutionForTenant(ctx context.Context, tenantID, requestID string) (*SubstitutionRequest, error)
	ListSubstitutionsByTenant(ctx context.Context, tenantID string) ([]SubstitutionDetail, error)
	UpdateSubstitutionStatus(ctx context.Context, tenantID, requestID string, status SubstitutionStatus) error
}

// Database is the full set of storage operations. WithTx runs fn against a
// Database whose operations all execute in a single transaction; the
// transaction commits when fn returns nil and rolls back otherwise. Multi-
// write sequences (month regeneration, setup replacement, substitution
// approval) must run inside WithTx so a failure partway leaves prior state
// intact.
type Database interface {
	TenantStore
	MemberStore
	EventStore
	EligibilityStore
	RosterStore
	SubstitutionStore

	WithTx(ctx context.Context, fn func(tx Database) error) error
}
