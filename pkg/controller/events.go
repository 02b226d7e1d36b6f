package controller

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const confirmPage = "confirm"

func (c *Controller) initEvents() {
	c.events = map[Key]KeyEvent{}
	c.formEvents = map[Key]KeyEvent{}

	c.initShowEvents(c.events)
	c.initItemEvents(c.events)
	c.initMoveEvents(c.events)
	c.initStoreEvents(c.events)
	c.initExitEvent(c.events)

	c.initFormEvents(c.formEvents)
}

// action wraps f as a KeyEvent action that swallows the key and redraws afterwards.
func (c *Controller) action(f func()) func(*tcell.EventKey) *tcell.EventKey {
	return func(*tcell.EventKey) *tcell.EventKey {
		f()
		c.redraw()

		return nil
	}
}

func (c *Controller) initExitEvent(events map[Key]KeyEvent) {
	events[KeyQuit] = KeyEvent{
		Description: "Exit",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			log.Info().Msg("terminating application")

			c.app.Stop()

			return nil
		},
	}
}

func (c *Controller) getShowAction(category model.Category) func(key *tcell.EventKey) *tcell.EventKey {
	return func(*tcell.EventKey) *tcell.EventKey {
		c.showCategory(category)

		return nil
	}
}

func (c *Controller) initShowEvents(events map[Key]KeyEvent) {
	events[KeyFood] = KeyEvent{
		Description: "Show Food",
		Action:      c.getShowAction(model.CategoryFood),
	}

	events[KeyPlace] = KeyEvent{
		Description: "Show Places",
		Action:      c.getShowAction(model.CategoryPlace),
	}

	events[KeyTab] = KeyEvent{
		Description: "Show Next Category",
		Action: func(*tcell.EventKey) *tcell.EventKey {
			c.showCategory(c.nextCategory())

			return nil
		},
	}
}

func (c *Controller) initItemEvents(events map[Key]KeyEvent) {
	events[KeyNew] = KeyEvent{
		Description: "New Item",
		Action:      c.action(c.switchToItemForm),
	}

	events[KeyNewType] = KeyEvent{
		Description: "New Type",
		Action:      c.action(c.switchToTypeForm),
	}

	events[KeyDeleteType] = KeyEvent{
		Description: "Delete Type",
		Action:      c.action(c.switchToDeleteTypeForm),
	}

	events[KeyNewBranch] = KeyEvent{
		Description: "Add Location",
		Action:      c.action(c.switchToBranchForm),
	}

	events[KeyVisitBranch] = KeyEvent{
		Description: "Visit Location",
		Action:      c.action(c.switchToVisitForm),
	}

	events[KeyVisited] = KeyEvent{
		Description: "Toggle Visited",
		Action:      c.action(c.toggleVisited),
	}

	events[KeyDelete] = KeyEvent{
		Description: "Delete Item",
		Action:      c.action(c.confirmDelete),
	}

	events[KeySort] = KeyEvent{
		Description: "Change Sort Order",
		Action: c.action(func() {
			c.order = c.order.Next()
			c.setHeaderTitle(c.category)
		}),
	}
}

func (c *Controller) getMoveAction(delta int) func(key *tcell.EventKey) *tcell.EventKey {
	return c.action(func() {
		if c.order != status.Custom {
			c.message = fmt.Sprintf("items can only be moved in %s order (press %s)", status.Custom, KeySort)

			return
		}

		id, ok := c.selectedItemID()
		if !ok {
			return
		}

		c.report(c.store.MoveItem(c.ctx, c.contents[c.category].IDs(), id, delta))

		c.redraw()
		c.selectItem(id)
	})
}

func (c *Controller) initMoveEvents(events map[Key]KeyEvent) {
	events[KeyMoveUp] = KeyEvent{
		Description: "Move Up",
		Action:      c.getMoveAction(-1),
	}

	events[KeyMoveDown] = KeyEvent{
		Description: "Move Down",
		Action:      c.getMoveAction(1),
	}
}

func (c *Controller) initStoreEvents(events map[Key]KeyEvent) {
	events[KeyRefresh] = KeyEvent{
		Description: "Refresh",
		Action: c.action(func() {
			c.report(c.store.Refresh(c.ctx))
		}),
	}

	events[KeyMigrate] = KeyEvent{
		Description: "Migrate Legacy Locations",
		Action: c.action(func() {
			_, err := c.store.MigrateLegacyLocations(c.ctx)
			c.report(err)
		}),
	}

	events[KeySync] = KeyEvent{
		Description: "Sync Single Branches",
		Action: c.action(func() {
			_, err := c.store.SyncSingleBranches(c.ctx)
			c.report(err)
		}),
	}
}

// toggleVisited flips the visit status of the selected item. An item with several
// branches is visited branch by branch: the first unvisited branch is marked today.
func (c *Controller) toggleVisited() {
	id, ok := c.selectedItemID()
	if !ok {
		return
	}

	item, _ := c.store.Item(id)
	branches := c.store.LocationsFor(id)

	if len(branches) > 1 {
		for _, branch := range branches {
			if !branch.Status {
				c.report(c.store.MarkLocationVisited(c.ctx, branch.ID, nil))

				return
			}
		}

		c.message = fmt.Sprintf("all locations of %s have been visited", item.Name)

		return
	}

	patch := model.ItemPatch{Status: model.Set(!item.Status), VisitedAt: model.Set[*time.Time](nil)}
	if !item.Status {
		patch.VisitedAt = model.Set(model.DayPtr(time.Now()))
	}

	c.report(c.store.UpdateItem(c.ctx, id, patch))
}

func (c *Controller) confirmDelete() {
	id, ok := c.selectedItemID()
	if !ok {
		return
	}

	item, _ := c.store.Item(id)

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Delete %s?", item.Name)).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			c.pages.RemovePage(confirmPage)

			if label == "Delete" {
				c.report(c.store.DeleteItem(c.ctx, id))
			}

			c.showCategory(c.category)
		})

	// the modal handles its own keys
	c.app.SetInputCapture(nil)
	c.pages.AddPage(confirmPage, modal, true, true)
}

func (c *Controller) initFormEvents(events map[Key]KeyEvent) {
	events[KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action: func(*tcell.EventKey) *tcell.EventKey {
			c.showCategory(c.category)

			return nil
		},
	}

	events[KeyFormSubmit] = KeyEvent{
		Description: "Save",
		Action: func(*tcell.EventKey) *tcell.EventKey {
			c.submitForm()

			return nil
		},
	}
}
