package db

// Role is the closed set of member roles. Capability checks go through the
// methods below rather than string comparison at call sites.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsAdmin reports whether the role grants administrative capabilities
// (roster generation, substitution resolution, event and eligibility setup).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the recognized values
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// SubstitutionStatus is the state of a substitution request.
// pending transitions to approved or denied; both are terminal.
type SubstitutionStatus string

const (
	SubstitutionPending  SubstitutionStatus = "pending"
	SubstitutionApproved SubstitutionStatus = "approved"
	SubstitutionDenied   SubstitutionStatus = "denied"
)

// Terminal reports whether the status can no longer change
func (s SubstitutionStatus) Terminal() bool {
	return s == SubstitutionApproved || s == SubstitutionDenied
}

// Tenant represents an organization. Every other record is owned by exactly
// one tenant and must never be visible to another.
type Tenant struct {
	ID              string
	Name            string
	SchedulingRules string
}

// Member represents a person belonging to exactly one tenant
type Member struct {
	ID           string
	TenantID     string
	Name         string
	Email        string
	Role         Role
	PasswordHash string
}

// RecurringEvent is a template for a repeating occurrence. Day is a weekday
// name (matched case- and whitespace-insensitively), Time is a 12-hour clock
// value such as "10:00 AM", and Activities is a comma-separated list of
// activity names.
type RecurringEvent struct {
	ID         string
	TenantID   string
	Day        string
	Time       string
	Activities string
}

// EligibilityGrant states that a member may be assigned an activity.
// Activity is free-form text matched by exact string equality.
type EligibilityGrant struct {
	TenantID string
	MemberID string
	Activity string
}

// DutyAssignment is one concrete assignment. Date is an ISO date string
// ("2006-01-02"). At most one assignment exists per (tenant, date, activity).
type DutyAssignment struct {
	ID       string
	TenantID string
	Date     string
	Activity string
	MemberID string
}

// SubstitutionRequest references a DutyAssignment whose assignee wants to
// hand the duty to another member. The owning tenant is derived through the
// duty row, never stored redundantly.
type SubstitutionRequest struct {
	ID           string
	DutyID       string
	RequesterID  string
	SubstituteID string
	Status       SubstitutionStatus
	Message      string
}

// SubstitutionDetail is a substitution request joined with its duty and the
// names of both parties, as presented to an admin reviewing requests.
type SubstitutionDetail struct {
	Request        SubstitutionRequest
	DutyDate       string
	DutyActivity   string
	RequesterName  string
	SubstituteName string
}
