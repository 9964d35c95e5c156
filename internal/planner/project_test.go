package planner_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/planner"
)

var (
	t1 = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	p1 = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	s1 = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	g1 = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
)

func sampleLists() planner.Lists {
	return planner.Lists{
		Todo:     []domain.Item{{ID: t1, Kind: domain.KindTodo, Text: "Book flight", Completed: false}},
		Packing:  []domain.Item{{ID: p1, Kind: domain.KindPacking, Text: "Passport", Completed: true, Person: "Alex"}},
		Shop:     []domain.Item{{ID: s1, Kind: domain.KindShop, Text: "Sunscreen", Completed: false}},
		Planning: []domain.Item{{ID: g1, Kind: domain.KindPlanning, Text: "Day 1", Completed: false}},
	}
}

func TestProject(t *testing.T) {
	rows := planner.Project(sampleLists())

	assert.Equal(t, []planner.Row{
		{ID: t1, Kind: domain.KindTodo, Task: "Book flight", Person: "-", Status: "Incomplete"},
		{ID: p1, Kind: domain.KindPacking, Task: "Passport", Person: "Alex", Status: "Complete", Completed: true},
		{ID: s1, Kind: domain.KindShop, Task: "Sunscreen", Person: "-", Status: "Incomplete"},
	}, rows)
}

func TestProject_withPlanning(t *testing.T) {
	rows := planner.Project(sampleLists(), planner.WithPlanning())

	require.Len(t, rows, 4)
	assert.Equal(t, g1, rows[3].ID)
	assert.Equal(t, domain.KindPlanning, rows[3].Kind)
	assert.Equal(t, planner.NoPerson, rows[3].Person)
}

func TestProject_packingWithoutPerson(t *testing.T) {
	rows := planner.Project(planner.Lists{Packing: []domain.Item{{ID: p1, Text: "Towel"}}})

	require.Len(t, rows, 1)
	assert.Equal(t, "-", rows[0].Person)
}

func TestProject_empty(t *testing.T) {
	rows := planner.Project(planner.Lists{})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestOverview_toggleStatusPatchesOnlyThatRow(t *testing.T) {
	fb := newFakeBackend()
	trip := fb.addTrip("Travel 1")
	fb.addItem(trip.ID, domain.KindTodo, "Book flight", "", false)
	pack := fb.addItem(trip.ID, domain.KindPacking, "Passport", "Alex", true)
	fb.addItem(trip.ID, domain.KindShop, "Sunscreen", "", false)
	p := planner.New(fb)
	ctx := context.Background()
	require.NoError(t, p.LoadTrips(ctx))
	ov := planner.NewOverview(fb, p.Lists())
	before := ov.Rows()
	listCalls := fb.count("ListItems")

	row, err := ov.ToggleStatus(ctx, pack.ID)

	require.NoError(t, err)
	assert.False(t, row.Completed)
	assert.Equal(t, planner.StatusIncomplete, row.Status)

	after := ov.Rows()
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, planner.StatusIncomplete, after[1].Status)
	assert.Equal(t, listCalls, fb.count("ListItems"), "no refetch")

	// The write went to the packing collection.
	assert.False(t, fb.itemsOf(trip.ID, domain.KindPacking)[0].Completed)
	assert.False(t, fb.itemsOf(trip.ID, domain.KindTodo)[0].Completed)
}

func TestOverview_toggleUnknownRow(t *testing.T) {
	ov := planner.NewOverview(newFakeBackend(), sampleLists())

	_, err := ov.ToggleStatus(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverview_failedWriteKeepsRow(t *testing.T) {
	fb := newFakeBackend()
	fb.down = true
	ov := planner.NewOverview(fb, sampleLists())

	_, err := ov.ToggleStatus(context.Background(), t1)

	require.ErrorIs(t, err, errConnectionLost)
	assert.Equal(t, planner.StatusIncomplete, ov.Rows()[0].Status)
}

func TestOverview_reset(t *testing.T) {
	ov := planner.NewOverview(newFakeBackend(), planner.Lists{}, planner.WithPlanning())
	assert.Empty(t, ov.Rows())

	ov.Reset(sampleLists())

	assert.Len(t, ov.Rows(), 4, "options survive a reset")
}
