package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// Sample names used by SeedMembers
var (
	seedFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph", "Thomas", "Charles",
		"Christopher", "Daniel", "Matthew", "Anthony", "Donald", "Mark", "Paul", "Steven", "Andrew", "Kenneth",
		"Joshua", "Kevin", "Brian", "George", "Timothy", "Ronald", "Edward", "Jason", "Jeffrey", "Ryan",
		"Jacob", "Gary", "Nicholas", "Eric", "Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon",
	}
	seedLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
		"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	}
)

const seedMemberPassword = "memberpass"

// ListMembers returns all of a tenant's members
func ListMembers(ctx context.Context, store db.MemberStore, tenantID string) ([]db.Member, error) {
	members, err := store.ListMembers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	return members, nil
}

// CreateMember adds a member to the tenant with a bcrypt credential hash.
// Emails must be unique within the tenant since substitution requests
// resolve substitutes by email lookup.
func CreateMember(ctx context.Context, store db.MemberStore, logger *zap.Logger, tenantID, name, email, password string, role db.Role) (*db.Member, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	existing, err := store.GetMemberByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing member: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already in use", ErrValidation, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := db.Member{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := store.InsertMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}

	logger.Info("Created member",
		zap.String("tenant_id", tenantID),
		zap.String("member_id", member.ID),
		zap.String("role", string(role)))

	return &member, nil
}

// SeedMembers replaces the tenant's member-role users with count generated
// sample members, all sharing a known password. Admin accounts are left
// untouched. Name selection is deterministic so repeated seeding produces
// the same set; email local parts are suffixed once the name lists cycle to
// keep emails unique within the tenant.
func SeedMembers(ctx context.Context, database db.Database, logger *zap.Logger, tenantID string, count int) ([]db.Member, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrValidation, count)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedMemberPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	members := make([]db.Member, 0, count)
	for i := 0; i < count; i++ {
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[i%len(seedLastNames)]
		email := fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))
		if i >= len(seedFirstNames) {
			email = fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i)
		}
		members = append(members, db.Member{
			ID:           uuid.New().String(),
			TenantID:     tenantID,
			Name:         first + " " + last,
			Email:        email,
			Role:         db.RoleMember,
			PasswordHash: string(hash),
		})
	}

	err = database.WithTx(ctx, func(tx db.Database) error {
		if err := tx.DeleteMembersByRole(ctx, tenantID, db.RoleMember); err != nil {
			return fmt.Errorf("failed to clear existing members: %w", err)
		}
		for _, member := range members {
			if err := tx.InsertMember(ctx, member); err != nil {
				return fmt.Errorf("failed to insert member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Seeded sample members",
		zap.String("tenant_id", tenantID),
		zap.Int("count", count))

	return members, nil
}
