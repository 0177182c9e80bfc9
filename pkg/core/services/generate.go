package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GenerateResult contains the outcome of one roster generation run
type GenerateResult struct {
	StartDate string
	EndDate   string

	// Assignments actually inserted
	Assignments []roster.Assignment

	// Skipped slots (no eligible members, or already filled within the
	// run); non-fatal
	Skipped []roster.SkippedSlot

	NotificationsSent   int
	NotificationsFailed int
}

// Two concurrent generations for the same tenant and month would interleave
// their delete and insert phases, so runs are serialized per (tenant, month)
// in-process. Cross-process callers still race; see the package docs.
// Mutexes are kept for the life of the process, one per (tenant, month) ever
// generated; a long-lived server embedding this package would want eviction.
var generationLocks sync.Map

func lockGeneration(tenantID string, year, month int) func() {
	key := fmt.Sprintf("%s|%04d-%02d", tenantID, year, month)
	value, _ := generationLocks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GenerateRoster produces one duty assignment per (occurrence, activity)
// pair for the given tenant and month, replacing any assignments already in
// that month. The delete and insert sequence runs in a single transaction,
// so a failure partway leaves the previous roster intact. Notifications are
// sent after commit, best-effort; failures are logged and counted but never
// fail the generation.
//
// Rotation cursors are local to the run (see roster.Allocate), so
// regenerating the same month restarts the rotation from scratch.
func GenerateRoster(ctx context.Context, database db.Database, notifier Notifier, logger *zap.Logger, tenantID string, month, year int) (*GenerateResult, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}

	unlock := lockGeneration(tenantID, year, month)
	defer unlock()

	logger.Info("Generating duty roster",
		zap.String("tenant_id", tenantID),
		zap.Int("month", month),
		zap.Int("year", year))

	events, err := database.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEventsDefined
	}

	members, err := database.ListMembersByRole(ctx, tenantID, db.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	grants, err := database.ListGrants(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligibility grants: %w", err)
	}

	occurrences := roster.ExpandMonth(events, year, month)
	index := roster.BuildEligibilityIndex(grants)
	plan := roster.Allocate(occurrences, index, members)

	logger.Debug("Allocation plan computed",
		zap.Int("occurrences", len(occurrences)),
		zap.Int("assignments", len(plan.Assignments)),
		zap.Int("skipped", len(plan.Skipped)))

	start, end := roster.MonthBounds(year, month)
	startDate := start.Format(roster.DateLayout)
	endDate := end.Format(roster.DateLayout)

	var inserted []roster.Assignment
	err = database.WithTx(ctx, func(tx db.Database) error {
		if err := tx.DeleteRange(ctx, tenantID, startDate, endDate); err != nil {
			return fmt.Errorf("failed to clear existing roster: %w", err)
		}

		for _, assignment := range plan.Assignments {
			exists, err := tx.Exists(ctx, tenantID, assignment.Date, assignment.Activity)
			if err != nil {
				return fmt.Errorf("failed to check existing assignment: %w", err)
			}
			if exists {
				continue
			}

			if err := tx.InsertAssignment(ctx, db.DutyAssignment{
				ID:       uuid.New().String(),
				TenantID: tenantID,
				Date:     assignment.Date,
				Activity: assignment.Activity,
				MemberID: assignment.MemberID,
			}); err != nil {
				return fmt.Errorf("failed to insert assignment: %w", err)
			}
			inserted = append(inserted, assignment)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		StartDate:   startDate,
		EndDate:     endDate,
		Assignments: inserted,
		Skipped:     plan.Skipped,
	}

	emailsByID := make(map[string]string, len(members))
	for _, member := range members {
		emailsByID[member.ID] = member.Email
	}

	for _, assignment := range inserted {
		body := fmt.Sprintf("You are assigned to %s on %s at %s.",
			assignment.Activity, assignment.Date, assignment.EventTime)
		if err := notifier.SendEmail(emailsByID[assignment.MemberID], "Duty Roster Assignment", body); err != nil {
			logger.Warn("Failed to send assignment notification",
				zap.String("member_id", assignment.MemberID),
				zap.String("date", assignment.Date),
				zap.Error(err))
			result.NotificationsFailed++
			continue
		}
		result.NotificationsSent++
	}

	logger.Info("Duty roster generated",
		zap.String("tenant_id", tenantID),
		zap.Int("assignments", len(inserted)),
		zap.Int("skipped", len(plan.Skipped)),
		zap.Int("notifications_failed", result.NotificationsFailed))

	return result, nil
}
