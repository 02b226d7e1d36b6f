package migration_test

import (
	"testing"
	"time"

	"github.com/matt-steen/date-ideas/pkg/migration"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	items := []model.Item{
		{ID: 1, Name: "legacy", Location: "https://maps.example/1"},
		{ID: 2, Name: "already migrated", Location: "https://maps.example/2"},
		{ID: 3, Name: "no location", Location: "  "},
	}
	locations := []model.ItemLocation{{ID: 20, ItemID: 2, Label: migration.MainLabel}}

	candidates := migration.Candidates(items, locations)
	assert.Equal(1, len(candidates))
	assert.Equal(int64(1), candidates[0].ID)
}

func TestBranchCarriesVisitState(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	visited := time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)
	item := model.Item{ID: 7, Location: "https://maps.example/7", Status: true, VisitedAt: &visited}

	assert.Equal(model.LocationDraft{
		ItemID:    7,
		Label:     "Main",
		URL:       "https://maps.example/7",
		Status:    true,
		VisitedAt: &visited,
	}, migration.Branch(item))
}

func TestCandidatesIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	items := []model.Item{
		{ID: 1, Location: "https://maps.example/1"},
		{ID: 2, Location: "https://maps.example/2"},
	}
	locations := []model.ItemLocation{}

	for i, item := range migration.Candidates(items, locations) {
		b := migration.Branch(item)
		locations = append(locations, model.ItemLocation{ID: int64(100 + i), ItemID: b.ItemID, URL: b.URL, Label: b.Label})
	}

	assert.Equal(2, len(locations))
	assert.Empty(migration.Candidates(items, locations))
}
