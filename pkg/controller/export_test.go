package controller

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Build creates the pages and loads the store without starting the terminal.
func (c *Controller) Build() {
	c.build()
}

// Press sends a key to whatever input handler is active.
func (c *Controller) Press(key Key) {
	if capture := c.app.GetInputCapture(); capture != nil {
		capture(tcell.NewEventKey(key.Code, key.Rune, tcell.ModNone))
	}
}

// FrontPage returns the name of the visible page.
func (c *Controller) FrontPage() string {
	name, _ := c.pages.GetFrontPage()

	return name
}

// Message returns the footer message of the last keypress.
func (c *Controller) Message() string {
	return c.message
}

// Footer returns the footer line as of now.
func (c *Controller) Footer() string {
	return c.footerText(time.Now())
}

// FormError returns the error line of the active form.
func (c *Controller) FormError() string {
	return c.formHeader[c.activeForm].GetCell(len(c.formEvents)+1, 0).Text
}

// Fill sets the text of an input field of the active form.
func (c *Controller) Fill(label, text string) {
	if field, ok := c.activeFormView().GetFormItemByLabel(label).(*tview.InputField); ok {
		field.SetText(text)
	}
}

// Choose selects an option of a dropdown of the active form.
func (c *Controller) Choose(label string, option int) {
	if dropDown, ok := c.activeFormView().GetFormItemByLabel(label).(*tview.DropDown); ok {
		dropDown.SetCurrentOption(option)
	}
}

func (c *Controller) activeFormView() *tview.Form {
	switch c.activeForm {
	case itemFormName:
		return c.itemForm
	case typeFormName:
		return c.typeForm
	case branchFormName:
		return c.branchForm
	case visitFormName:
		return c.visitForm
	default:
		return c.deleteTypeForm
	}
}
