package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/stretchr/testify/assert"
)

func TestMigrateLegacyLocationsIsIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	visited := food(2, "visited", 2)
	visited.Status = true
	visited.VisitedAt = day(8)

	noLocation := food(4, "nowhere", 4)
	noLocation.Location = ""

	store, remote, rec := getStore(t, assert,
		[]model.Item{food(1, "a", 1), visited, food(3, "done", 3), noLocation},
		[]model.ItemLocation{{ID: 30, ItemID: 3, Label: "Main", Position: 1}})

	count, err := store.MigrateLegacyLocations(context.Background())
	assert.Nil(err)
	assert.Equal(2, count)
	assert.Equal("Migration Complete", rec.last().Title)
	assert.Equal("Successfully migrated 2 items to the new location structure.", rec.last().Description)

	branch := store.LocationsFor(2)[0]
	assert.Equal("Main", branch.Label)
	assert.Equal("https://maps.example/visited", branch.URL)
	assert.True(branch.Status)
	assert.True(model.SameDay(day(8), branch.VisitedAt))
	assert.Equal(1, branch.Position)

	assert.Empty(store.LocationsFor(4))
	assert.Equal(3, len(remote.locations))

	count, err = store.MigrateLegacyLocations(context.Background())
	assert.Nil(err)
	assert.Equal(0, count)
	assert.Equal("Migration Skipped", rec.last().Title)
	assert.Equal(notify.SeverityInfo, rec.last().Severity)
	assert.Equal(3, len(remote.locations))
	assert.False(store.Busy())
}

func TestMigrateLegacyLocationsPartialFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	store, remote, rec := getStore(t, assert, []model.Item{food(1, "a", 1), food(2, "b", 2)}, nil)
	// InsertLocation failures are keyed by item id
	remote.failIDs[1] = true

	count, err := store.MigrateLegacyLocations(context.Background())
	assert.Equal(1, count)
	assert.True(errors.Is(err, errRemote))
	assert.Equal("Migration Complete", rec.last().Title)

	remote.failIDs[1] = false

	count, err = store.MigrateLegacyLocations(context.Background())
	assert.Nil(err)
	assert.Equal(1, count)
}

func TestSyncSingleBranches(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	visited := food(1, "visited", 1)
	visited.Status = true
	visited.VisitedAt = day(4)

	chain := food(2, "chain", 2)
	chain.Status = true

	store, _, rec := getStore(t, assert,
		[]model.Item{visited, chain, food(3, "todo", 3)},
		[]model.ItemLocation{
			{ID: 10, ItemID: 1, Label: "Main", Position: 1},
			{ID: 20, ItemID: 2, Label: "North", Position: 1},
			{ID: 21, ItemID: 2, Label: "South", Position: 2},
			{ID: 30, ItemID: 3, Label: "Main", Position: 1},
		})

	count, err := store.SyncSingleBranches(context.Background())
	assert.Nil(err)
	assert.Equal(1, count)
	assert.Equal("Synced visit status for 1 items.", rec.last().Description)

	branch := store.LocationsFor(1)[0]
	assert.True(branch.Status)
	assert.True(model.SameDay(day(4), branch.VisitedAt))
	assert.False(store.LocationsFor(2)[0].Status)
	assert.False(store.LocationsFor(3)[0].Status)

	count, err = store.SyncSingleBranches(context.Background())
	assert.Nil(err)
	assert.Equal(0, count)
}

func TestMigrateLegacyLocationsKeepsFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	store, remote, _ := getStore(t, assert, []model.Item{food(1, "a", 1), food(2, "b", 2)}, nil)
	// the first item fails, the second succeeds afterwards
	remote.failIDs[1] = true

	count, err := store.MigrateLegacyLocations(context.Background())
	assert.Equal(1, count)
	assert.NotNil(err)
	assert.NotNil(store.Err())
	assert.True(errors.Is(store.Err(), errRemote))
}

func TestMigrateLegacyLocationsAllFail(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	store, remote, rec := getStore(t, assert, []model.Item{food(1, "a", 1), food(2, "b", 2)}, nil)
	remote.failing["InsertLocation"] = true

	count, err := store.MigrateLegacyLocations(context.Background())
	assert.Equal(0, count)
	assert.True(errors.Is(err, errRemote))
	assert.NotNil(store.Err())

	last := rec.last()
	assert.Equal("Migration Failed", last.Title)
	assert.Equal("Failed to migrate 2 items. Please try again.", last.Description)
	assert.Equal(notify.SeverityError, last.Severity)
}

func TestSyncSingleBranchesKeepsFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	first := food(1, "first", 1)
	first.Status = true
	first.VisitedAt = day(4)

	second := food(2, "second", 2)
	second.Status = true
	second.VisitedAt = day(5)

	store, remote, _ := getStore(t, assert,
		[]model.Item{first, second},
		[]model.ItemLocation{
			{ID: 10, ItemID: 1, Label: "Main", Position: 1},
			{ID: 20, ItemID: 2, Label: "Main", Position: 1},
		})
	// updates are keyed by branch id; the first fails, the second succeeds
	remote.failIDs[10] = true

	count, err := store.SyncSingleBranches(context.Background())
	assert.Equal(1, count)
	assert.True(errors.Is(err, errRemote))
	assert.True(errors.Is(store.Err(), errRemote))
	assert.True(store.LocationsFor(2)[0].Status)
}
