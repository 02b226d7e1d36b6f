package status_test

import (
	"testing"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/stretchr/testify/assert"
)

func day(d int) *time.Time {
	t := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)

	return &t
}

func branches(statuses ...bool) []model.ItemLocation {
	locs := []model.ItemLocation{}
	for i, s := range statuses {
		locs = append(locs, model.ItemLocation{ID: int64(i + 1), ItemID: 1, Status: s})
	}

	return locs
}

func TestSummarizeBranches(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	item := model.Item{ID: 1, Status: true, VisitedAt: day(9)}

	assert.Equal(status.Visited, status.Summarize(item, branches(true, false)).Rank)
	assert.Equal(status.Completed, status.Summarize(item, branches(true, true)).Rank)
	// the item's own status is ignored once it has several branches
	assert.Equal(status.NotVisited, status.Summarize(item, branches(false, false)).Rank)
}

func TestSummarizeSingleBranchUsesItem(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	item := model.Item{ID: 1, Status: true, VisitedAt: day(9)}

	s := status.Summarize(item, branches(false))
	assert.Equal(status.Visited, s.Rank)
	assert.Equal(day(9), s.Date)

	s = status.Summarize(model.Item{ID: 1}, nil)
	assert.Equal(status.NotVisited, s.Rank)
	assert.Nil(s.Date)
	assert.Equal("Not visited", s.Label())
}

func TestSummarizeMostRecentBranchDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	locs := branches(true, true, false)
	locs[0].VisitedAt = day(3)
	locs[1].VisitedAt = day(17)

	s := status.Summarize(model.Item{ID: 1, VisitedAt: day(30)}, locs)
	assert.Equal(day(17), s.Date)
	assert.Equal("Visited (2/3)", s.Label())

	s = status.Summarize(model.Item{ID: 1, VisitedAt: day(30)}, branches(false, false))
	assert.Nil(s.Date)
}

func names(rows []status.Row) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Item.Name)
	}

	return out
}

func TestCustomSortDemotesVisited(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	rows := status.Rows([]model.Item{
		{ID: 1, Name: "visited first", Position: 1, VisitedAt: day(1), Status: true},
		{ID: 2, Name: "fresh", Position: 5},
	}, nil)

	status.Sort(rows, status.Custom)
	assert.Equal([]string{"fresh", "visited first"}, names(rows))
}

func TestCustomSort(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	rows := status.Rows([]model.Item{
		{ID: 1, Name: "a", Position: 3},
		{ID: 2, Name: "b", Position: 1, VisitedAt: day(2)},
		{ID: 3, Name: "c", Position: 2},
		{ID: 4, Name: "d", Position: 0, VisitedAt: day(8)},
		{ID: 5, Name: "e", Position: -1},
	}, nil)

	status.Sort(rows, status.Custom)
	assert.Equal([]string{"e", "c", "a", "d", "b"}, names(rows))
}

func TestSortByName(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	rows := status.Rows([]model.Item{{ID: 1, Name: "sushi"}, {ID: 2, Name: "Bakso"}, {ID: 3, Name: "ramen"}}, nil)

	status.Sort(rows, status.ByName)
	assert.Equal([]string{"Bakso", "ramen", "sushi"}, names(rows))
}

func TestSortByRankIsStable(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	items := []model.Item{
		{ID: 1, Name: "none-1"},
		{ID: 2, Name: "all"},
		{ID: 3, Name: "single", Status: true},
		{ID: 4, Name: "none-2"},
	}
	locs := []model.ItemLocation{
		{ID: 10, ItemID: 2, Status: true},
		{ID: 11, ItemID: 2, Status: true},
	}

	rows := status.Rows(items, locs)
	status.Sort(rows, status.ByRank)
	assert.Equal([]string{"all", "single", "none-1", "none-2"}, names(rows))
}

func TestSortByDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	rows := status.Rows([]model.Item{
		{ID: 1, Name: "undated-1"},
		{ID: 2, Name: "old", VisitedAt: day(1)},
		{ID: 3, Name: "undated-2"},
		{ID: 4, Name: "new", VisitedAt: day(20)},
	}, nil)

	status.Sort(rows, status.ByDate)
	assert.Equal([]string{"new", "old", "undated-1", "undated-2"}, names(rows))
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for _, o := range []status.Order{status.Custom, status.ByName, status.ByRank, status.ByDate} {
		parsed, err := status.ParseOrder(o.String())
		assert.Nil(err)
		assert.Equal(o, parsed)
	}

	_, err := status.ParseOrder("random")
	assert.NotNil(err)
	assert.Equal(status.Custom, status.ByDate.Next())
}
