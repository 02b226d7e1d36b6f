package model

import "time"

// Field is one optional value of a patch. Fields without Set are left unchanged, which
// lets a patch write a zero value or a null on purpose.
type Field[T any] struct {
	Value T
	Set   bool
}

// Set returns a Field that writes v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

func (f Field[T]) applyTo(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

func (f Field[T]) column(cols map[string]any, name string) {
	if f.Set {
		cols[name] = f.Value
	}
}

// ItemPatch is a partial update of an item.
type ItemPatch struct {
	Name      Field[string]
	Category  Field[Category]
	TypeID    Field[int64]
	Location  Field[string]
	Link      Field[*string]
	Status    Field[bool]
	VisitedAt Field[*time.Time]
	Position  Field[int]
}

// Apply merges the patch into item.
func (p ItemPatch) Apply(item *Item) {
	p.Name.applyTo(&item.Name)
	p.Category.applyTo(&item.Category)
	p.TypeID.applyTo(&item.TypeID)
	p.Location.applyTo(&item.Location)
	p.Link.applyTo(&item.Link)
	p.Status.applyTo(&item.Status)
	p.VisitedAt.applyTo(&item.VisitedAt)
	p.Position.applyTo(&item.Position)
}

// Columns maps the set fields to their column names in the items table.
func (p ItemPatch) Columns() map[string]any {
	cols := map[string]any{}

	p.Name.column(cols, "name")
	p.Category.column(cols, "category")
	p.TypeID.column(cols, "type_id")
	p.Location.column(cols, "location")
	p.Link.column(cols, "link")
	p.Status.column(cols, "status")
	p.VisitedAt.column(cols, "visited_at")
	p.Position.column(cols, "position")

	return cols
}

// TypePatch is a partial update of a type.
type TypePatch struct {
	Name     Field[string]
	Category Field[Category]
}

// Apply merges the patch into t.
func (p TypePatch) Apply(t *Type) {
	p.Name.applyTo(&t.Name)
	p.Category.applyTo(&t.Category)
}

// Columns maps the set fields to their column names in the types table.
func (p TypePatch) Columns() map[string]any {
	cols := map[string]any{}

	p.Name.column(cols, "name")
	p.Category.column(cols, "category")

	return cols
}

// LocationPatch is a partial update of a branch.
type LocationPatch struct {
	Label     Field[string]
	URL       Field[string]
	Status    Field[bool]
	VisitedAt Field[*time.Time]
	Position  Field[int]
}

// Apply merges the patch into loc.
func (p LocationPatch) Apply(loc *ItemLocation) {
	p.Label.applyTo(&loc.Label)
	p.URL.applyTo(&loc.URL)
	p.Status.applyTo(&loc.Status)
	p.VisitedAt.applyTo(&loc.VisitedAt)
	p.Position.applyTo(&loc.Position)
}

// Columns maps the set fields to their column names in the item_locations table.
func (p LocationPatch) Columns() map[string]any {
	cols := map[string]any{}

	p.Label.column(cols, "label")
	p.URL.column(cols, "url")
	p.Status.column(cols, "status")
	p.VisitedAt.column(cols, "visited_at")
	p.Position.column(cols, "position")

	return cols
}
