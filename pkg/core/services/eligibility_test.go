package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestListActivities_UnionOfEventActivities(t *testing.T) {
	store := newFakeDatabase()
	store.events = []db.RecurringEvent{
		{ID: "e1", TenantID: "t1", Day: "Sunday", Time: "10:00 AM", Activities: "Ushering, Singing"},
		{ID: "e2", TenantID: "t1", Day: "Wednesday", Time: "7:00 PM", Activities: "Singing,Prayer"},
		{ID: "e3", TenantID: "t2", Day: "Sunday", Time: "10:00 AM", Activities: "Cleaning"},
	}

	activities, err := ListActivities(context.Background(), store, "t1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Prayer", "Singing", "Ushering"}, activities)
}

func TestReplaceEligibility_ReplacesGrantSet(t *testing.T) {
	store := newFakeDatabase()
	store.members = []db.Member{
		{ID: "m1", TenantID: "t1", Role: db.RoleMember},
		{ID: "m2", TenantID: "t1", Role: db.RoleMember},
	}
	store.grants = []db.EligibilityGrant{
		{TenantID: "t1", MemberID: "m1", Activity: "Cleaning"},
		{TenantID: "t2", MemberID: "x1", Activity: "Cleaning"},
	}

	err := ReplaceEligibility(context.Background(), store, zap.NewNop(), "t1", []GrantInput{
		{MemberID: "m1", Activity: "Ushering"},
		{MemberID: "m2", Activity: " Singing "},
	})
	require.NoError(t, err)

	grants, err := store.ListGrants(context.Background(), "t1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []db.EligibilityGrant{
		{TenantID: "t1", MemberID: "m1", Activity: "Ushering"},
		{TenantID: "t1", MemberID: "m2", Activity: "Singing"},
	}, grants)

	otherTenant, err := store.ListGrants(context.Background(), "t2")
	require.NoError(t, err)
	assert.Len(t, otherTenant, 1, "other tenant's grants must survive")
}

func TestReplaceEligibility_UnknownMemberRejectedBeforeMutation(t *testing.T) {
	store := newFakeDatabase()
	store.members = []db.Member{
		{ID: "m1", TenantID: "t1", Role: db.RoleMember},
	}
	store.grants = []db.EligibilityGrant{
		{TenantID: "t1", MemberID: "m1", Activity: "Cleaning"},
	}

	err := ReplaceEligibility(context.Background(), store, zap.NewNop(), "t1", []GrantInput{
		{MemberID: "m1", Activity: "Ushering"},
		{MemberID: "ghost", Activity: "Ushering"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, store.grants, 1, "existing grants must survive a rejected replacement")
}

func TestReplaceEligibility_BlankActivityRejected(t *testing.T) {
	store := newFakeDatabase()
	store.members = []db.Member{
		{ID: "m1", TenantID: "t1", Role: db.RoleMember},
	}

	err := ReplaceEligibility(context.Background(), store, zap.NewNop(), "t1", []GrantInput{
		{MemberID: "m1", Activity: "   "},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
