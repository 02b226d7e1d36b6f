// Package controller is the terminal UI. It turns keypresses into store operations and
// renders the store's items, status and notifications with tview.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/matt-steen/date-ideas/pkg/state"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/rivo/tview"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Controller mediates between the store and the view. Every store operation runs on
// the tview event loop, which is what serializes access to the store.
type Controller struct {
	ctx   context.Context
	store *state.Store
	queue *notify.Queue
	app   *tview.Application
	pages *tview.Pages
	cron  *cron.Cron

	category model.Category
	order    status.Order

	tables   map[model.Category]*tview.Table
	contents map[model.Category]*ItemContent
	headers  map[model.Category]*tview.Table
	footer   *tview.TextView
	// message is shown in the footer until the next keypress, e.g. a validation error.
	message string

	events     map[Key]KeyEvent
	formEvents map[Key]KeyEvent

	itemForm   *tview.Form
	itemFields itemFields
	typeForm   *tview.Form
	typeName   *tview.InputField

	branchForm       *tview.Form
	branchFields     branchFields
	visitForm        *tview.Form
	visitFields      visitFields
	deleteTypeForm   *tview.Form
	deleteTypeFields deleteTypeFields

	formHeader map[string]*tview.Table
	activeForm string
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app. refresh is a cron spec for
// periodic re-fetches; empty disables them.
func NewController(ctx context.Context, store *state.Store, queue *notify.Queue, refresh string) (*Controller, error) {
	c := Controller{
		ctx:        ctx,
		store:      store,
		queue:      queue,
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		cron:       cron.New(),
		category:   model.CategoryFood,
		order:      status.Custom,
		tables:     map[model.Category]*tview.Table{},
		contents:   map[model.Category]*ItemContent{},
		headers:    map[model.Category]*tview.Table{},
		footer:     tview.NewTextView().SetDynamicColors(true),
		formHeader: map[string]*tview.Table{},
	}

	c.initEvents()

	if err := c.schedule(refresh); err != nil {
		return nil, err
	}

	return &c, nil
}

// Go loads everything and runs the app until the user quits.
func (c *Controller) Go() error {
	c.build()

	c.cron.Start()
	defer c.cron.Stop()

	log.Info().Msg("starting ui")

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return fmt.Errorf("error running ui: %w", err)
	}

	return nil
}

// build creates the pages and loads the store.
func (c *Controller) build() {
	for _, category := range model.Categories() {
		c.pages.AddPage(pageName(string(category)), c.getCategoryGrid(category), true, false)
	}

	c.pages.AddPage(pageName(itemFormName), c.getItemFormGrid(), true, false)
	c.pages.AddPage(pageName(typeFormName), c.getTypeFormGrid(), true, false)
	c.pages.AddPage(pageName(branchFormName), c.getBranchFormGrid(), true, false)
	c.pages.AddPage(pageName(visitFormName), c.getVisitFormGrid(), true, false)
	c.pages.AddPage(pageName(deleteTypeFormName), c.getDeleteTypeFormGrid(), true, false)

	// failures are recorded by the store and shown in the footer
	_ = c.store.Refresh(c.ctx)

	c.showCategory(c.category)
}

func pageName(name string) string {
	return "page-" + name
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	c.message = ""

	if k, ok := c.events[AsKey(evt)]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.formEvents[AsKey(evt)]; ok {
		return k.Action(evt)
	}

	return evt
}

// report surfaces the outcome of an operation. Remote failures are recorded by the store
// and show up through Err; anything else (validation, not found) is shown once.
func (c *Controller) report(err error) {
	if err == nil {
		return
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		c.message = verr.Error()

		return
	}

	if !errors.Is(err, c.store.Err()) {
		c.message = err.Error()
	}

	log.Debug().Err(err).Msg("operation returned an error")
}

// redraw reloads the rows of every category and updates the footer.
func (c *Controller) redraw() {
	for category, content := range c.contents {
		content.SetRows(c.store.Rows(category, c.order), c.store.TypeName)
	}

	c.footer.SetText(c.footerText(time.Now()))
}

func (c *Controller) footerText(now time.Time) string {
	c.queue.Expire(now)

	switch {
	case !c.store.Configured():
		return fmt.Sprintf("[red]%s", tview.Escape(state.ErrNotConfigured.Error()))
	case c.message != "":
		return fmt.Sprintf("[red]%s", tview.Escape(c.message))
	case c.store.Busy():
		return "[yellow]working..."
	case c.store.Err() != nil:
		return fmt.Sprintf("[red]%s", tview.Escape(c.store.Err().Error()))
	}

	if n, ok := c.queue.Latest(); ok {
		color := "green"

		switch n.Severity {
		case notify.SeverityError:
			color = "red"
		case notify.SeverityInfo:
			color = "white"
		}

		return fmt.Sprintf("[%s]%s[white] %s", color, tview.Escape(n.Title), tview.Escape(n.Description))
	}

	return fmt.Sprintf("[gray]sorted by %s", c.order)
}
