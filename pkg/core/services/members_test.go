package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestCreateMember_HashesPasswordAndLowercasesEmail(t *testing.T) {
	store := newFakeDatabase()

	member, err := CreateMember(context.Background(), store, zap.NewNop(), "t1",
		" Ada Lovelace ", " Ada@Example.COM ", "secret", db.RoleMember)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", member.Name)
	assert.Equal(t, "ada@example.com", member.Email)
	assert.Equal(t, db.RoleMember, member.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte("secret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte("wrong")))
}

func TestCreateMember_RejectsDuplicateEmail(t *testing.T) {
	store := newFakeDatabase()

	_, err := CreateMember(context.Background(), store, zap.NewNop(), "t1",
		"Ada", "ada@example.com", "secret", db.RoleMember)
	require.NoError(t, err)

	_, err = CreateMember(context.Background(), store, zap.NewNop(), "t1",
		"Other Ada", "ADA@example.com", "secret", db.RoleMember)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, store.members, 1)
}

func TestCreateMember_SameEmailDifferentTenantAllowed(t *testing.T) {
	store := newFakeDatabase()

	_, err := CreateMember(context.Background(), store, zap.NewNop(), "t1",
		"Ada", "ada@example.com", "secret", db.RoleMember)
	require.NoError(t, err)

	_, err = CreateMember(context.Background(), store, zap.NewNop(), "t2",
		"Ada", "ada@example.com", "secret", db.RoleMember)
	assert.NoError(t, err, "email uniqueness is per tenant")
}

func TestCreateMember_RejectsBadInput(t *testing.T) {
	store := newFakeDatabase()

	_, err := CreateMember(context.Background(), store, zap.NewNop(), "t1", "", "ada@example.com", "secret", db.RoleMember)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateMember(context.Background(), store, zap.NewNop(), "t1", "Ada", "ada@example.com", "secret", db.Role("owner"))
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, store.members)
}

func TestSeedMembers_ReplacesMemberRoleOnly(t *testing.T) {
	store := newFakeDatabase()
	store.members = []db.Member{
		{ID: "a1", TenantID: "t1", Name: "Admin", Email: "admin@example.com", Role: db.RoleAdmin},
		{ID: "m1", TenantID: "t1", Name: "Old Member", Email: "old@example.com", Role: db.RoleMember},
		{ID: "x1", TenantID: "t2", Name: "Other", Email: "other@example.com", Role: db.RoleMember},
	}

	seeded, err := SeedMembers(context.Background(), store, zap.NewNop(), "t1", 3)
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	members, err := store.ListMembers(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, members, 4, "admin plus three seeded members")

	var admins int
	for _, member := range members {
		if member.Role == db.RoleAdmin {
			admins++
		}
		assert.NotEqual(t, "old@example.com", member.Email, "previous members are replaced")
	}
	assert.Equal(t, 1, admins)

	otherTenant, err := store.ListMembers(context.Background(), "t2")
	require.NoError(t, err)
	assert.Len(t, otherTenant, 1, "other tenant's members must survive")
}

func TestSeedMembers_DeterministicNamesAndUniqueEmails(t *testing.T) {
	store := newFakeDatabase()

	seeded, err := SeedMembers(context.Background(), store, zap.NewNop(), "t1", 45)
	require.NoError(t, err)
	require.Len(t, seeded, 45)

	assert.Equal(t, "James Smith", seeded[0].Name)
	assert.Equal(t, "james.smith@example.com", seeded[0].Email)

	// Past the name lists the cycle repeats with a suffixed email
	assert.Equal(t, "James Smith", seeded[40].Name)
	assert.Equal(t, "james.smith.40@example.com", seeded[40].Email)

	emails := make(map[string]bool)
	for _, member := range seeded {
		assert.False(t, emails[member.Email], "duplicate email %s", member.Email)
		emails[member.Email] = true
	}
}

func TestSeedMembers_RejectsNonPositiveCount(t *testing.T) {
	store := newFakeDatabase()

	_, err := SeedMembers(context.Background(), store, zap.NewNop(), "t1", 0)
	assert.ErrorIs(t, err, ErrValidation)
}
