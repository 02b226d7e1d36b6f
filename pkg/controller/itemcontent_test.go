package controller_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/date-ideas/pkg/controller"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/stretchr/testify/assert"
)

func getContent() *controller.ItemContent {
	visited := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

	items := []model.Item{
		{ID: 1, Name: "Sate Khas Senayan", TypeID: 1, Location: "Blok M Square", Position: 1},
		{ID: 2, Name: "Ichiran", TypeID: 2, Location: "https://maps.example/ichiran", Status: true, VisitedAt: &visited},
		{ID: 3, Name: "Chain", TypeID: 9},
	}
	locations := []model.ItemLocation{
		{ID: 30, ItemID: 3, Label: "North", Status: true, VisitedAt: &visited},
		{ID: 31, ItemID: 3, Label: "South"},
	}

	rows := status.Rows(items, locations)

	content := &controller.ItemContent{}
	content.SetRows(rows, func(id int64) string {
		if id == 1 {
			return "Satay"
		}

		return "Unknown"
	})

	return content
}

func TestItemContentHeader(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent()

	assert.Equal(4, content.GetRowCount())
	assert.Equal(5, content.GetColumnCount())
	assert.Equal("name", content.GetCell(0, 0).Text)
	assert.True(content.GetCell(0, 0).NotSelectable)
	assert.Nil(content.GetCell(0, 5))
}

func TestItemContentCells(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent()

	assert.Equal("Sate Khas Senayan", content.GetCell(1, 0).Text)
	assert.Equal("Satay", content.GetCell(1, 1).Text)
	assert.Equal("Not visited", content.GetCell(1, 2).Text)
	assert.Equal("", content.GetCell(1, 3).Text)
	assert.Equal(model.MapsSearchURL("Blok M Square"), content.GetCell(1, 4).Text)

	assert.Equal("Visited", content.GetCell(2, 2).Text)
	assert.Equal("Feb 14, 2024", content.GetCell(2, 3).Text)
	assert.Equal("https://maps.example/ichiran", content.GetCell(2, 4).Text)

	assert.Equal("Visited (1/2)", content.GetCell(3, 2).Text)
	assert.Equal(tcell.ColorLightGreen, content.GetCell(3, 2).Color)
	assert.Equal("2 locations", content.GetCell(3, 4).Text)

	assert.Nil(content.GetCell(4, 0))
}

func TestItemContentRows(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	content := getContent()

	assert.Equal([]int64{1, 2, 3}, content.IDs())

	row, ok := content.Row(2)
	assert.True(ok)
	assert.Equal(int64(2), row.Item.ID)

	_, ok = content.Row(0)
	assert.False(ok)
}
