package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/clients/assistantclient"
	"github.com/jakechorley/duty-roster/pkg/db"
)

type fakeEditor struct {
	edits   []assistantclient.EventEdit
	err     error
	current []assistantclient.EventEdit
}

func (e *fakeEditor) ProposeEventEdits(ctx context.Context, instruction string, current []assistantclient.EventEdit) ([]assistantclient.EventEdit, error) {
	e.current = current
	if e.err != nil {
		return nil, e.err
	}
	return e.edits, nil
}

func setupAssistantFixture() *fakeDatabase {
	store := newFakeDatabase()
	store.events = []db.RecurringEvent{
		{ID: "e1", TenantID: "t1", Day: "Sunday", Time: "10:00 AM", Activities: "Singing, Ushering"},
		{ID: "e2", TenantID: "t1", Day: "Wednesday", Time: "7:00 PM", Activities: "Prayer"},
	}
	return store
}

func TestApplyAssistantEdits_RequiresInstruction(t *testing.T) {
	store := setupAssistantFixture()

	_, err := ApplyAssistantEdits(context.Background(), store, &fakeEditor{}, zap.NewNop(), "t1", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplyAssistantEdits_EditorFailureLeavesEventsUntouched(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{err: errors.New("model unavailable")}

	_, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "do things")
	assert.ErrorIs(t, err, ErrAssistant)
	assert.Len(t, store.events, 2)
}

func TestApplyAssistantEdits_SendsCurrentScheduleToEditor(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{}

	_, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "no changes")
	require.NoError(t, err)

	require.Len(t, editor.current, 2)
	assert.Equal(t, "Sunday", editor.current[0].Day)
	assert.Equal(t, []string{"Singing", "Ushering"}, editor.current[0].Activities)
}

func TestApplyAssistantEdits_DeleteRemovesMatchingSlot(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Wednesday", Time: "7:00 PM", Delete: true},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "drop wednesday")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}

func TestApplyAssistantEdits_DeleteOfUnknownSlotIsIgnored(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Friday", Time: "9:00 PM", Delete: true},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "drop friday")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestApplyAssistantEdits_UpsertUpdatesExistingSlot(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Sunday", Time: "10:00 AM", Activities: []string{"Cleaning"}},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "sunday cleaning only")
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID, "updated in place, not recreated")
	assert.Equal(t, "Cleaning", events[0].Activities)
}

func TestApplyAssistantEdits_OmittedActivitiesArePreserved(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Sunday", Time: "10:00 AM"},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "touch sunday")
	require.NoError(t, err)

	assert.Equal(t, "Singing, Ushering", events[0].Activities)
}

func TestApplyAssistantEdits_CreatesNewSlot(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Friday", Time: "6:30 PM", Activities: []string{"Youth"}},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "add friday youth")
	require.NoError(t, err)

	require.Len(t, events, 3)
	// Sorted Sunday first, Friday last
	assert.Equal(t, "Friday", events[2].Day)
	assert.Equal(t, "Youth", events[2].Activities)
	assert.NotEmpty(t, events[2].ID)
}

func TestApplyAssistantEdits_SortsSameDayByTime(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Sunday", Time: "8:30 AM", Activities: []string{"Setup"}},
	}}

	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "add early sunday setup")
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, "8:30 AM", events[0].Time)
	assert.Equal(t, "10:00 AM", events[1].Time)
	assert.Equal(t, "Wednesday", events[2].Day)
}

func TestApplyAssistantEdits_DeleteThenCreateSameSlot(t *testing.T) {
	store := setupAssistantFixture()
	editor := &fakeEditor{edits: []assistantclient.EventEdit{
		{Day: "Sunday", Time: "10:00 AM", Activities: []string{"Communion"}},
		{Day: "Sunday", Time: "10:00 AM", Delete: true},
	}}

	// Deletes run before upserts regardless of edit order, so the slot is
	// recreated rather than updated.
	events, err := ApplyAssistantEdits(context.Background(), store, editor, zap.NewNop(), "t1", "rebuild sunday")
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Communion", events[0].Activities)
	assert.NotEqual(t, "e1", events[0].ID, "slot was deleted and recreated")
}
