package controller

import (
	"fmt"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	branchFormName     = "branchForm"
	visitFormName      = "visitForm"
	deleteTypeFormName = "deleteTypeForm"
)

// branchFields are the inputs of the add location form.
type branchFields struct {
	label  *tview.InputField
	url    *tview.InputField
	itemID int64
}

// visitFields are the inputs of the visit location form.
type visitFields struct {
	location *tview.DropDown
	date     *tview.InputField
	// branches backs the dropdown options, in the same order.
	branches []model.ItemLocation
	itemID   int64
}

// deleteTypeFields are the inputs of the delete type form.
type deleteTypeFields struct {
	typ   *tview.DropDown
	types []model.Type
}

func (c *Controller) getBranchFormGrid() *tview.Grid {
	c.initFormHeader(branchFormName)

	c.branchForm = tview.NewForm().
		AddInputField("Label", "", nameMax, nil, nil).
		AddInputField("URL", "", locationMax, nil, nil)

	c.branchFields.label, _ = c.branchForm.GetFormItemByLabel("Label").(*tview.InputField)
	c.branchFields.url, _ = c.branchForm.GetFormItemByLabel("URL").(*tview.InputField)

	c.branchForm.AddButton("Save", c.saveBranch)
	c.branchForm.AddButton("Cancel", func() { c.showCategory(c.category) })

	return c.formGrid(branchFormName, c.branchForm)
}

func (c *Controller) getVisitFormGrid() *tview.Grid {
	c.initFormHeader(visitFormName)

	c.visitForm = tview.NewForm().
		AddDropDown("Location", []string{}, -1, nil).
		AddInputField("Date", "", len(model.DateLayout)+1, nil, nil)

	c.visitFields.location, _ = c.visitForm.GetFormItemByLabel("Location").(*tview.DropDown)
	c.visitFields.date, _ = c.visitForm.GetFormItemByLabel("Date").(*tview.InputField)

	c.visitForm.AddButton("Save", c.saveVisit)
	c.visitForm.AddButton("Remove Location", c.removeBranch)
	c.visitForm.AddButton("Cancel", func() { c.showCategory(c.category) })

	return c.formGrid(visitFormName, c.visitForm)
}

func (c *Controller) getDeleteTypeFormGrid() *tview.Grid {
	c.initFormHeader(deleteTypeFormName)

	c.deleteTypeForm = tview.NewForm().
		AddDropDown("Type", []string{}, -1, nil)

	c.deleteTypeFields.typ, _ = c.deleteTypeForm.GetFormItemByLabel("Type").(*tview.DropDown)

	c.deleteTypeForm.AddButton("Delete", c.deleteType)
	c.deleteTypeForm.AddButton("Cancel", func() { c.showCategory(c.category) })

	return c.formGrid(deleteTypeFormName, c.deleteTypeForm)
}

func (c *Controller) switchToBranchForm() {
	id, ok := c.selectedItemID()
	if !ok {
		return
	}

	item, _ := c.store.Item(id)

	c.branchFields.itemID = id
	c.branchFields.label.SetText("")
	c.branchFields.url.SetText("")

	c.switchToForm(branchFormName, fmt.Sprintf("Add Location to %s", item.Name), c.branchForm)
}

func (c *Controller) switchToVisitForm() {
	id, ok := c.selectedItemID()
	if !ok {
		return
	}

	item, _ := c.store.Item(id)

	branches := c.store.LocationsFor(id)
	if len(branches) == 0 {
		c.message = fmt.Sprintf("%s has no locations yet (press %s to add one)", item.Name, KeyNewBranch)

		return
	}

	c.visitFields.itemID = id
	c.visitFields.branches = branches

	options := make([]string, 0, len(branches))
	current := -1

	for i, branch := range branches {
		option := branch.Label
		if branch.Status {
			option += " (visited)"
		} else if current < 0 {
			current = i
		}

		options = append(options, option)
	}

	if current < 0 {
		current = 0
	}

	c.visitFields.location.SetOptions(options, nil)
	c.visitFields.location.SetCurrentOption(current)
	c.visitFields.date.SetText(time.Now().Format(model.DateLayout))

	c.switchToForm(visitFormName, fmt.Sprintf("Visit %s", item.Name), c.visitForm)
}

func (c *Controller) switchToDeleteTypeForm() {
	c.deleteTypeFields.types = c.store.TypesIn(c.category)

	options := make([]string, 0, len(c.deleteTypeFields.types))
	for _, t := range c.deleteTypeFields.types {
		options = append(options, t.Name)
	}

	c.deleteTypeFields.typ.SetOptions(options, nil)
	c.deleteTypeFields.typ.SetCurrentOption(-1)

	c.switchToForm(deleteTypeFormName, fmt.Sprintf("Delete %s Type", categoryTitle(c.category)), c.deleteTypeForm)
}

func (c *Controller) saveBranch() {
	draft := model.LocationDraft{
		ItemID: c.branchFields.itemID,
		Label:  c.branchFields.label.GetText(),
		URL:    c.branchFields.url.GetText(),
	}

	log.Debug().Int64("item", draft.ItemID).Str("label", draft.Label).Msg("saving new location")

	if _, err := c.store.AddLocation(c.ctx, draft); err != nil {
		c.showFormError(branchFormName, err)

		return
	}

	c.showCategory(c.category)
	c.selectItem(draft.ItemID)
}

// selectedBranch returns the branch chosen in the visit form.
func (c *Controller) selectedBranch() (model.ItemLocation, bool) {
	i, _ := c.visitFields.location.GetCurrentOption()
	if i < 0 || i >= len(c.visitFields.branches) {
		c.setFormError(visitFormName, "choose a location")

		return model.ItemLocation{}, false
	}

	return c.visitFields.branches[i], true
}

func (c *Controller) saveVisit() {
	branch, ok := c.selectedBranch()
	if !ok {
		return
	}

	date, err := model.ParseDay(c.visitFields.date.GetText())
	if err != nil {
		c.showFormError(visitFormName, err)

		return
	}

	if err := c.store.MarkLocationVisited(c.ctx, branch.ID, date); err != nil {
		c.showFormError(visitFormName, err)

		return
	}

	c.showCategory(c.category)
	c.selectItem(c.visitFields.itemID)
}

func (c *Controller) removeBranch() {
	branch, ok := c.selectedBranch()
	if !ok {
		return
	}

	if err := c.store.DeleteLocation(c.ctx, branch.ID); err != nil {
		c.showFormError(visitFormName, err)

		return
	}

	c.showCategory(c.category)
	c.selectItem(c.visitFields.itemID)
}

func (c *Controller) deleteType() {
	i, _ := c.deleteTypeFields.typ.GetCurrentOption()
	if i < 0 || i >= len(c.deleteTypeFields.types) {
		c.setFormError(deleteTypeFormName, "choose a type")

		return
	}

	// a type still used by items is refused with a validation error shown in the form
	if err := c.store.DeleteType(c.ctx, c.deleteTypeFields.types[i].ID); err != nil {
		c.showFormError(deleteTypeFormName, err)

		return
	}

	c.showCategory(c.category)
}
