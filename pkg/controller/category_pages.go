package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getCategoryGrid(category model.Category) *tview.Grid {
	c.headers[category] = c.getCategoryHeader()
	c.contents[category] = &ItemContent{}
	c.tables[category] = c.getTable(category)

	grid := tview.NewGrid().SetBorders(true).
		SetRows(c.headers[category].GetRowCount(), 0, 1)

	grid.AddItem(c.headers[category], 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.tables[category], 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.footer, 2, 0, 1, 1, 0, 0, false)

	return grid
}

// getCategoryHeader returns the header used for each list of items.
// it shows the category at the top, followed by 3 columns listing keyboard shortcuts.
// the first column contains misc shortcuts, the second contains "Show <category>" shortcuts,
// and the third contains "Move" shortcuts. All three columns are sorted alphabetically.
func (c *Controller) getCategoryHeader() *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 1

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tview.Escape(key.String()), event.Description)

		switch {
		case strings.HasPrefix(event.Description, "Show"):
			shortcuts[1] = append(shortcuts[1], text)
		case strings.HasPrefix(event.Description, "Move"):
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}

	return table
}

func (c *Controller) setHeaderTitle(category model.Category) {
	title := fmt.Sprintf("[yellow]%s[white]  (sorted by %s)", categoryTitle(category), c.order)
	c.headers[category].SetCell(0, 0, tview.NewTableCell(title))
}

func categoryTitle(category model.Category) string {
	switch category {
	case model.CategoryFood:
		return "Food"
	case model.CategoryPlace:
		return "Places"
	default:
		return string(category)
	}
}

func (c *Controller) getTable(category model.Category) *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(c.contents[category])
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)
	table.Select(1, 0)

	return table
}

// selectedItemID returns the item under the cursor on the current page.
func (c *Controller) selectedItemID() (int64, bool) {
	row, _ := c.tables[c.category].GetSelection()

	r, ok := c.contents[c.category].Row(row)
	if !ok {
		return 0, false
	}

	return r.Item.ID, true
}

// selectItem moves the cursor to the given item if it is displayed.
func (c *Controller) selectItem(id int64) {
	for i, displayed := range c.contents[c.category].IDs() {
		if displayed == id {
			c.tables[c.category].Select(i+1, 0)

			return
		}
	}

	log.Debug().Int64("item", id).Msg("item to select is not displayed")
}

// clampSelection keeps the cursor on an existing row after rows were removed.
func (c *Controller) clampSelection() {
	table := c.tables[c.category]
	row, _ := table.GetSelection()
	count := c.contents[c.category].GetRowCount()

	if row >= count {
		row = count - 1
	}

	if row < 1 {
		row = 1
	}

	table.Select(row, 0)
}

func (c *Controller) showCategory(category model.Category) {
	c.category = category

	c.redraw()
	c.setHeaderTitle(category)
	c.clampSelection()

	c.app.SetInputCapture(c.handleKeys)
	c.pages.SwitchToPage(pageName(string(category)))
	c.app.SetFocus(c.tables[category])
}

func (c *Controller) nextCategory() model.Category {
	categories := model.Categories()

	for i, category := range categories {
		if category == c.category {
			return categories[(i+1)%len(categories)]
		}
	}

	return categories[0]
}
