package controller

import (
	"fmt"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	itemFormName = "itemForm"
	typeFormName = "typeForm"

	nameMax     = 60
	locationMax = 200
)

// itemFields are the inputs of the new item form.
type itemFields struct {
	name     *tview.InputField
	typ      *tview.DropDown
	location *tview.InputField
	link     *tview.InputField
	// types backs the dropdown options, in the same order.
	types []model.Type
}

func (c *Controller) switchToItemForm() {
	c.itemFields.types = c.store.TypesIn(c.category)

	options := make([]string, 0, len(c.itemFields.types))
	for _, t := range c.itemFields.types {
		options = append(options, t.Name)
	}

	c.itemFields.typ.SetOptions(options, nil)
	c.itemFields.typ.SetCurrentOption(-1)

	c.switchToForm(itemFormName, fmt.Sprintf("New %s Idea", categoryTitle(c.category)), c.itemForm)
}

func (c *Controller) switchToTypeForm() {
	c.switchToForm(typeFormName, fmt.Sprintf("New %s Type", categoryTitle(c.category)), c.typeForm)
}

func (c *Controller) switchToForm(name, title string, form *tview.Form) {
	c.activeForm = name

	c.setFormTitle(name, title)
	c.setFormError(name, "")

	form.SetFocus(0)

	c.pages.SwitchToPage(pageName(name))
	c.app.SetFocus(form)

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) getItemFormGrid() *tview.Grid {
	c.initFormHeader(itemFormName)
	c.initItemForm()

	return c.formGrid(itemFormName, c.itemForm)
}

func (c *Controller) getTypeFormGrid() *tview.Grid {
	c.initFormHeader(typeFormName)
	c.initTypeForm()

	return c.formGrid(typeFormName, c.typeForm)
}

func (c *Controller) formGrid(name string, form *tview.Form) *tview.Grid {
	grid := tview.NewGrid().SetBorders(true).SetRows(len(c.formEvents)+2, 0)

	grid.AddItem(c.formHeader[name], 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(form, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) setFormTitle(name, title string) {
	c.formHeader[name].SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", tview.Escape(title))))
}

func (c *Controller) setFormError(name, msg string) {
	c.formHeader[name].SetCell(len(c.formEvents)+1, 0, tview.NewTableCell(fmt.Sprintf("[red]%s", tview.Escape(msg))))
}

func (c *Controller) initFormHeader(name string) {
	c.formHeader[name] = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	row := 1

	for key, event := range c.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tview.Escape(key.String()), event.Description)
		c.formHeader[name].SetCell(row, 0, tview.NewTableCell(text))
		row++
	}
}

func (c *Controller) initItemForm() {
	c.itemForm = tview.NewForm().
		AddInputField("Name", "", nameMax, nil, nil).
		AddDropDown("Type", []string{}, -1, nil).
		AddInputField("Location", "", locationMax, nil, nil).
		AddInputField("Link", "", locationMax, nil, nil)

	c.itemFields.name, _ = c.itemForm.GetFormItemByLabel("Name").(*tview.InputField)
	c.itemFields.typ, _ = c.itemForm.GetFormItemByLabel("Type").(*tview.DropDown)
	c.itemFields.location, _ = c.itemForm.GetFormItemByLabel("Location").(*tview.InputField)
	c.itemFields.link, _ = c.itemForm.GetFormItemByLabel("Link").(*tview.InputField)

	c.itemForm.AddButton("Save", c.saveItem)
	c.itemForm.AddButton("Cancel", func() { c.showCategory(c.category) })
}

func (c *Controller) initTypeForm() {
	c.typeForm = tview.NewForm().
		AddInputField("Name", "", nameMax, nil, nil)

	c.typeName, _ = c.typeForm.GetFormItemByLabel("Name").(*tview.InputField)

	c.typeForm.AddButton("Save", c.saveType)
	c.typeForm.AddButton("Cancel", func() { c.showCategory(c.category) })
}

func (c *Controller) submitForm() {
	switch c.activeForm {
	case itemFormName:
		c.saveItem()
	case typeFormName:
		c.saveType()
	case branchFormName:
		c.saveBranch()
	case visitFormName:
		c.saveVisit()
	case deleteTypeFormName:
		c.deleteType()
	}
}

func (c *Controller) saveItem() {
	draft := model.ItemDraft{
		Name:     c.itemFields.name.GetText(),
		Category: c.category,
		Location: c.itemFields.location.GetText(),
		Link:     c.itemFields.link.GetText(),
	}

	if i, _ := c.itemFields.typ.GetCurrentOption(); i >= 0 && i < len(c.itemFields.types) {
		draft.TypeID = c.itemFields.types[i].ID
	}

	log.Debug().Str("name", draft.Name).Msg("saving new item")

	item, err := c.store.AddItem(c.ctx, draft)
	if item == nil {
		c.showFormError(itemFormName, err)

		return
	}

	c.report(err)

	c.itemFields.name.SetText("")
	c.itemFields.location.SetText("")
	c.itemFields.link.SetText("")

	c.showCategory(c.category)
	c.selectItem(item.ID)
}

func (c *Controller) saveType() {
	draft := model.TypeDraft{Name: c.typeName.GetText(), Category: c.category}

	if _, err := c.store.AddType(c.ctx, draft); err != nil {
		c.showFormError(typeFormName, err)

		return
	}

	c.typeName.SetText("")

	c.showCategory(c.category)
}

func (c *Controller) showFormError(name string, err error) {
	if err == nil {
		return
	}

	log.Debug().Err(err).Str("form", name).Msg("form was not saved")

	c.setFormError(name, err.Error())
}
