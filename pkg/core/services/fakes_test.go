package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// fakeDatabase is an in-memory db.Database for service tests. WithTx runs
// fn against the same instance; tests that need rollback behavior assert on
// the error path not on partial state.
type fakeDatabase struct {
	mu sync.Mutex

	tenants       map[string]db.Tenant
	members       []db.Member
	events        []db.RecurringEvent
	grants        []db.EligibilityGrant
	assignments   []db.DutyAssignment
	substitutions []db.SubstitutionRequest
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{tenants: make(map[string]db.Tenant)}
}

var _ db.Database = (*fakeDatabase)(nil)

func (f *fakeDatabase) WithTx(ctx context.Context, fn func(tx db.Database) error) error {
	return fn(f)
}

func (f *fakeDatabase) GetTenant(ctx context.Context, tenantID string) (*db.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tenant, ok := f.tenants[tenantID]; ok {
		return &tenant, nil
	}
	return nil, nil
}

func (f *fakeDatabase) UpdateTenant(ctx context.Context, tenant db.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenants[tenant.ID] = tenant
	return nil
}

func (f *fakeDatabase) ListMembers(ctx context.Context, tenantID string) ([]db.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Member
	for _, m := range f.members {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDatabase) ListMembersByRole(ctx context.Context, tenantID string, role db.Role) ([]db.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Member
	for _, m := range f.members {
		if m.TenantID == tenantID && m.Role == role {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDatabase) GetMember(ctx context.Context, tenantID, memberID string) (*db.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.TenantID == tenantID && m.ID == memberID {
			member := m
			return &member, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) GetMemberByEmail(ctx context.Context, tenantID, email string) (*db.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.TenantID == tenantID && m.Email == email {
			member := m
			return &member, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) InsertMember(ctx context.Context, member db.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, member)
	return nil
}

func (f *fakeDatabase) DeleteMembersByRole(ctx context.Context, tenantID string, role db.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.members[:0]
	for _, m := range f.members {
		if m.TenantID == tenantID && m.Role == role {
			continue
		}
		kept = append(kept, m)
	}
	f.members = kept
	return nil
}

func (f *fakeDatabase) ListEvents(ctx context.Context, tenantID string) ([]db.RecurringEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.RecurringEvent
	for _, e := range f.events {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeDatabase) GetEvent(ctx context.Context, tenantID, eventID string) (*db.RecurringEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.TenantID == tenantID && e.ID == eventID {
			event := e
			return &event, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) InsertEvent(ctx context.Context, event db.RecurringEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDatabase) UpdateEvent(ctx context.Context, event db.RecurringEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.events {
		if e.TenantID == event.TenantID && e.ID == event.ID {
			f.events[i] = event
			return nil
		}
	}
	return fmt.Errorf("event %s not found", event.ID)
}

func (f *fakeDatabase) DeleteEvent(ctx context.Context, tenantID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.events[:0]
	for _, e := range f.events {
		if e.TenantID == tenantID && e.ID == eventID {
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return nil
}

func (f *fakeDatabase) DeleteEvents(ctx context.Context, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.events[:0]
	for _, e := range f.events {
		if e.TenantID == tenantID {
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return nil
}

func (f *fakeDatabase) ListGrants(ctx context.Context, tenantID string) ([]db.EligibilityGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.EligibilityGrant
	for _, g := range f.grants {
		if g.TenantID == tenantID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeDatabase) InsertGrant(ctx context.Context, grant db.EligibilityGrant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.grants {
		if g == grant {
			return nil
		}
	}
	f.grants = append(f.grants, grant)
	return nil
}

func (f *fakeDatabase) DeleteGrants(ctx context.Context, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.grants[:0]
	for _, g := range f.grants {
		if g.TenantID == tenantID {
			continue
		}
		kept = append(kept, g)
	}
	f.grants = kept
	return nil
}

func (f *fakeDatabase) DeleteRange(ctx context.Context, tenantID, startDate, endDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.TenantID == tenantID && a.Date >= startDate && a.Date < endDate {
			continue
		}
		kept = append(kept, a)
	}
	f.assignments = kept
	return nil
}

func (f *fakeDatabase) DeleteAll(ctx context.Context, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.TenantID == tenantID {
			continue
		}
		kept = append(kept, a)
	}
	f.assignments = kept
	return nil
}

func (f *fakeDatabase) DeleteByDate(ctx context.Context, tenantID, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.TenantID == tenantID && a.Date == date {
			continue
		}
		kept = append(kept, a)
	}
	f.assignments = kept
	return nil
}

func (f *fakeDatabase) Exists(ctx context.Context, tenantID, date, activity string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.TenantID == tenantID && a.Date == date && a.Activity == activity {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDatabase) InsertAssignment(ctx context.Context, assignment db.DutyAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.TenantID == assignment.TenantID && a.Date == assignment.Date && a.Activity == assignment.Activity {
			return fmt.Errorf("duplicate assignment for %s %s", assignment.Date, assignment.Activity)
		}
	}
	f.assignments = append(f.assignments, assignment)
	return nil
}

func (f *fakeDatabase) ListByTenant(ctx context.Context, tenantID string) ([]db.DutyAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.DutyAssignment
	for _, a := range f.assignments {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDatabase) ListByMember(ctx context.Context, tenantID, memberID, fromDate string) ([]db.DutyAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.DutyAssignment
	for _, a := range f.assignments {
		if a.TenantID == tenantID && a.MemberID == memberID && a.Date >= fromDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDatabase) GetAssignmentForMember(ctx context.Context, tenantID, dutyID, memberID string) (*db.DutyAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.TenantID == tenantID && a.ID == dutyID && a.MemberID == memberID {
			assignment := a
			return &assignment, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) UpdateAssignmentMember(ctx context.Context, tenantID, dutyID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.assignments {
		if a.TenantID == tenantID && a.ID == dutyID {
			f.assignments[i].MemberID = memberID
			return nil
		}
	}
	return nil
}

func (f *fakeDatabase) InsertSubstitution(ctx context.Context, request db.SubstitutionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.substitutions = append(f.substitutions, request)
	return nil
}

func (f *fakeDatabase) GetSubstitutionForTenant(ctx context.Context, tenantID, requestID string) (*db.SubstitutionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.substitutions {
		if s.ID != requestID {
			continue
		}
		// Tenant scoping goes through the duty row
		for _, a := range f.assignments {
			if a.ID == s.DutyID && a.TenantID == tenantID {
				request := s
				return &request, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeDatabase) ListSubstitutionsByTenant(ctx context.Context, tenantID string) ([]db.SubstitutionDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	namesByID := make(map[string]string)
	for _, m := range f.members {
		namesByID[m.ID] = m.Name
	}

	var out []db.SubstitutionDetail
	for _, s := range f.substitutions {
		for _, a := range f.assignments {
			if a.ID == s.DutyID && a.TenantID == tenantID {
				out = append(out, db.SubstitutionDetail{
					Request:        s,
					DutyDate:       a.Date,
					DutyActivity:   a.Activity,
					RequesterName:  namesByID[s.RequesterID],
					SubstituteName: namesByID[s.SubstituteID],
				})
			}
		}
	}
	return out, nil
}

func (f *fakeDatabase) UpdateSubstitutionStatus(ctx context.Context, tenantID, requestID string, status db.SubstitutionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.substitutions {
		if s.ID != requestID {
			continue
		}
		for _, a := range f.assignments {
			if a.ID == s.DutyID && a.TenantID == tenantID {
				f.substitutions[i].Status = status
				return nil
			}
		}
	}
	return nil
}

// fakeNotifier records outgoing mail; addresses in failFor error instead
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentEmail
	failFor map[string]bool
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (n *fakeNotifier) SendEmail(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[to] {
		return fmt.Errorf("delivery to %s refused", to)
	}
	n.sent = append(n.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (n *fakeNotifier) sentTo(to string) []sentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentEmail
	for _, email := range n.sent {
		if strings.EqualFold(email.to, to) {
			out = append(out, email)
		}
	}
	return out
}
