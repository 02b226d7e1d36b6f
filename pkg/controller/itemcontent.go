package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/rivo/tview"
)

const dateLayout = "Jan 2, 2006"

var columnNames = []string{"name", "type", "status", "visited", "location"}

// ItemContent implements tview.TableContent, which tview.Table uses to update data.
// Row 0 is the header; row i is rows[i-1].
type ItemContent struct {
	tview.TableContentReadOnly
	rows     []status.Row
	typeName func(int64) string
}

// SetRows replaces the displayed rows. typeName resolves type ids to names.
func (s *ItemContent) SetRows(rows []status.Row, typeName func(int64) string) {
	s.rows = rows
	s.typeName = typeName
}

// Row returns the row shown at the given table row.
func (s *ItemContent) Row(row int) (status.Row, bool) {
	if idx := row - 1; idx >= 0 && idx < len(s.rows) {
		return s.rows[idx], true
	}

	return status.Row{}, false
}

// IDs returns the displayed item ids in order.
func (s *ItemContent) IDs() []int64 {
	ids := make([]int64, 0, len(s.rows))
	for _, row := range s.rows {
		ids = append(ids, row.Item.ID)
	}

	return ids
}

// GetCell returns the cell at the given position or nil if no cell.
func (s *ItemContent) GetCell(row, col int) *tview.TableCell {
	if col < 0 || col >= len(columnNames) {
		return nil
	}

	if row == 0 {
		return tview.NewTableCell(columnNames[col]).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	r, ok := s.Row(row)
	if !ok {
		return nil
	}

	switch col {
	case 0:
		return tview.NewTableCell(tview.Escape(r.Item.Name)).SetExpansion(2).SetReference(r.Item.ID)
	case 1:
		name := "Unknown"
		if s.typeName != nil {
			name = s.typeName(r.Item.TypeID)
		}

		return tview.NewTableCell(tview.Escape(name)).SetExpansion(1)
	case 2:
		return tview.NewTableCell(r.Summary.Label()).SetExpansion(1).SetTextColor(rankColor(r.Summary.Rank))
	case 3:
		date := ""
		if r.Summary.Date != nil {
			date = r.Summary.Date.Format(dateLayout)
		}

		return tview.NewTableCell(date).SetExpansion(1)
	case 4:
		return tview.NewTableCell(tview.Escape(locationText(r))).SetExpansion(2)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (s *ItemContent) GetRowCount() int {
	return len(s.rows) + 1
}

// GetColumnCount returns the number of columns in the table.
func (s *ItemContent) GetColumnCount() int {
	return len(columnNames)
}

func rankColor(rank status.Rank) tcell.Color {
	switch rank {
	case status.Completed:
		return tcell.ColorGreen
	case status.Visited:
		return tcell.ColorLightGreen
	default:
		return tcell.ColorWhite
	}
}

// locationText summarizes where an item is: its branches, or the legacy location.
func locationText(r status.Row) string {
	switch len(r.Branches) {
	case 0:
		return legacyLocation(r.Item.Location)
	case 1:
		return r.Branches[0].Label
	default:
		return fmt.Sprintf("%d locations", len(r.Branches))
	}
}

// legacyLocation shows a location URL as is and turns free text into a map search.
func legacyLocation(location string) string {
	if location == "" || model.IsURL(location) {
		return location
	}

	return model.MapsSearchURL(location)
}
