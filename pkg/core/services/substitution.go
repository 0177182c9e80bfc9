package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// SubstitutionRequestStore defines the database operations needed to create
// a substitution request
type SubstitutionRequestStore interface {
	GetAssignmentForMember(ctx context.Context, tenantID, dutyID, memberID string) (*db.DutyAssignment, error)
	GetMemberByEmail(ctx context.Context, tenantID, email string) (*db.Member, error)
	InsertSubstitution(ctx context.Context, request db.SubstitutionRequest) error
}

// RequestSubstitution creates a pending substitution request for one of the
// requester's own duties. The duty is looked up by ID, requester, and
// tenant together, so a duty assigned to someone else — or to another
// tenant — is reported as not found and no request row is created. The
// substitute is resolved by email within the same tenant.
func RequestSubstitution(ctx context.Context, store SubstitutionRequestStore, logger *zap.Logger, tenantID, requesterID, dutyID, substituteEmail, message string) (*db.SubstitutionRequest, error) {
	duty, err := store.GetAssignmentForMember(ctx, tenantID, dutyID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch duty assignment: %w", err)
	}
	if duty == nil {
		return nil, ErrNotFound
	}

	substitute, err := store.GetMemberByEmail(ctx, tenantID, strings.ToLower(strings.TrimSpace(substituteEmail)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up substitute: %w", err)
	}
	if substitute == nil {
		return nil, ErrSubstituteNotFound
	}

	request := db.SubstitutionRequest{
		ID:           uuid.New().String(),
		DutyID:       dutyID,
		RequesterID:  requesterID,
		SubstituteID: substitute.ID,
		Status:       db.SubstitutionPending,
		Message:      message,
	}
	if err := store.InsertSubstitution(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to insert substitution request: %w", err)
	}

	logger.Info("Substitution request created",
		zap.String("tenant_id", tenantID),
		zap.String("request_id", request.ID),
		zap.String("duty_id", dutyID),
		zap.String("substitute_id", substitute.ID))

	return &request, nil
}

// ListSubstitutions returns the tenant's substitution requests with duty
// and party details, scoped through each request's duty row
func ListSubstitutions(ctx context.Context, store db.SubstitutionStore, tenantID string) ([]db.SubstitutionDetail, error) {
	details, err := store.ListSubstitutionsByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch substitution requests: %w", err)
	}
	return details, nil
}

// ResolveSubstitution approves or denies a pending request. Only an admin
// of the tenant owning the underlying duty may act; a request reached
// through another tenant — or by a non-admin — is reported as not found.
//
// Approval flips the request's status and overwrites the duty's member in
// the same transaction: never one without the other. Denial leaves the duty
// untouched. Terminal requests are immutable. On approval both the
// requester and the substitute are notified after commit, best-effort.
func ResolveSubstitution(ctx context.Context, database db.Database, notifier Notifier, logger *zap.Logger, tenantID string, actor db.Member, requestID string, approve bool) (*db.SubstitutionRequest, error) {
	if !actor.Role.IsAdmin() || actor.TenantID != tenantID {
		return nil, ErrNotFound
	}

	var request *db.SubstitutionRequest
	err := database.WithTx(ctx, func(tx db.Database) error {
		var err error
		request, err = tx.GetSubstitutionForTenant(ctx, tenantID, requestID)
		if err != nil {
			return fmt.Errorf("failed to fetch substitution request: %w", err)
		}
		if request == nil {
			return ErrNotFound
		}
		if request.Status.Terminal() {
			return ErrAlreadyResolved
		}

		if !approve {
			request.Status = db.SubstitutionDenied
			return tx.UpdateSubstitutionStatus(ctx, tenantID, requestID, db.SubstitutionDenied)
		}

		request.Status = db.SubstitutionApproved
		if err := tx.UpdateSubstitutionStatus(ctx, tenantID, requestID, db.SubstitutionApproved); err != nil {
			return err
		}
		return tx.UpdateAssignmentMember(ctx, tenantID, request.DutyID, request.SubstituteID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Substitution request resolved",
		zap.String("tenant_id", tenantID),
		zap.String("request_id", requestID),
		zap.String("status", string(request.Status)))

	if approve {
		notifySubstitutionParties(ctx, database, notifier, logger, tenantID, request)
	}

	return request, nil
}

// notifySubstitutionParties emails the requester and substitute about an
// approved handoff. Failures are logged only.
func notifySubstitutionParties(ctx context.Context, store db.MemberStore, notifier Notifier, logger *zap.Logger, tenantID string, request *db.SubstitutionRequest) {
	if requester, err := store.GetMember(ctx, tenantID, request.RequesterID); err == nil && requester != nil {
		if err := notifier.SendEmail(requester.Email, "Substitution Approved",
			"Your substitution request has been approved."); err != nil {
			logger.Warn("Failed to notify requester", zap.String("request_id", request.ID), zap.Error(err))
		}
	}
	if substitute, err := store.GetMember(ctx, tenantID, request.SubstituteID); err == nil && substitute != nil {
		if err := notifier.SendEmail(substitute.Email, "New Duty Assignment",
			"You have been assigned a new duty."); err != nil {
			logger.Warn("Failed to notify substitute", zap.String("request_id", request.ID), zap.Error(err))
		}
	}
}
