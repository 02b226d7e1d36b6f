package state

import (
	"context"
	"fmt"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/ordering"
	"github.com/rs/zerolog/log"
)

// AddItem inserts an item and moves it to the front of its category. It returns nil and
// the error if the insert fails. If only the positioning write fails the item is kept
// locally at the front and returned together with a *PersistError.
func (s *Store) AddItem(ctx context.Context, draft model.ItemDraft) (*model.Item, error) {
	if err := model.Validate(draft); err != nil {
		return nil, err
	}

	var added model.Item

	err := s.run(ctx, operation{
		name: "add item",
		remote: func(ctx context.Context) error {
			var err error
			added, err = s.remote.InsertItem(ctx, draft)

			return err
		},
		reconcile: func() {
			added.Position = ordering.Front(s.itemPositions(added.Category))
			s.items = append([]model.Item{added}, s.items...)
		},
	})
	if err != nil {
		return nil, err
	}

	s.success("Success!", fmt.Sprintf("%s has been added successfully.", added.Name))

	err = s.run(ctx, operation{
		name: "move item to the top",
		remote: func(ctx context.Context) error {
			return s.persistItemPositions(ctx, []ordering.Assignment{{ID: added.ID, Position: added.Position}})
		},
	})

	return &added, err
}

// UpdateItem patches an item locally, writes the patch remotely and then takes the
// stored row as the truth. If the item has exactly one branch, the row's status and
// visit date are copied to that branch.
func (s *Store) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	var row model.Item

	err := s.run(ctx, operation{
		name: "update item",
		apply: func() {
			if i := s.itemIndex(id); i >= 0 {
				patch.Apply(&s.items[i])
			}
		},
		remote: func(ctx context.Context) error {
			var err error
			row, err = s.remote.UpdateItem(ctx, id, patch)

			return err
		},
		reconcile: func() {
			if i := s.itemIndex(id); i >= 0 {
				s.items[i] = row
			}
		},
	})
	if err != nil {
		return err
	}

	s.success("Updated!", fmt.Sprintf("%s has been updated successfully.", row.Name))

	return s.mirrorSingleBranch(ctx, row)
}

// mirrorSingleBranch keeps a lone branch in step with its item.
func (s *Store) mirrorSingleBranch(ctx context.Context, item model.Item) error {
	branches := s.LocationsFor(item.ID)
	if len(branches) != 1 {
		return nil
	}

	branch := branches[0]
	if branch.Status == item.Status && model.SameDay(branch.VisitedAt, item.VisitedAt) {
		return nil
	}

	return s.UpdateLocation(ctx, branch.ID, model.LocationPatch{
		Status:    model.Set(item.Status),
		VisitedAt: model.Set(item.VisitedAt),
	})
}

// DeleteItem removes an item and, locally, its branches. The notification uses the name
// the item had when the delete started.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	name := "Item"
	if item, ok := s.Item(id); ok {
		name = item.Name
	}

	err := s.run(ctx, operation{
		name: "delete item",
		remote: func(ctx context.Context) error {
			return s.remote.DeleteItem(ctx, id)
		},
		reconcile: func() {
			items := s.items[:0]

			for _, item := range s.items {
				if item.ID != id {
					items = append(items, item)
				}
			}

			s.items = items

			locations := s.locations[:0]

			for _, loc := range s.locations {
				if loc.ItemID != id {
					locations = append(locations, loc)
				}
			}

			s.locations = locations
		},
	})
	if err != nil {
		return err
	}

	s.success("Deleted!", fmt.Sprintf("%s has been deleted successfully.", name))

	return nil
}

// ReorderItems gives the listed items positions 1..n in the order given. The category
// is taken from the first known id; other ids are ignored. Items of the category that
// are not listed keep their positions. Without a remote the new order is applied
// locally only.
func (s *Store) ReorderItems(ctx context.Context, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	kept, dropped := ordering.Partition(orderedIDs, func(id int64) (model.Category, bool) {
		item, ok := s.Item(id)

		return item.Category, ok
	})
	if len(dropped) > 0 {
		log.Warn().Interface("ids", dropped).Msg("ignoring ids outside the reordered category")
	}

	assignments := ordering.Reorder(kept)

	return s.run(ctx, operation{
		name:    "save the new order",
		offline: true,
		apply: func() {
			moved := make([]model.Item, 0, len(assignments))
			listed := map[int64]bool{}

			for _, a := range assignments {
				item, _ := s.Item(a.ID)
				item.Position = a.Position
				moved = append(moved, item)
				listed[a.ID] = true
			}

			others := make([]model.Item, 0, len(s.items))

			for _, item := range s.items {
				if !listed[item.ID] {
					others = append(others, item)
				}
			}

			s.items = append(others, moved...)
		},
		remote: func(ctx context.Context) error {
			return s.persistItemPositions(ctx, assignments)
		},
	})
}

// MoveItem moves an item up (negative delta) or down within the displayed order of
// its category and saves the whole category in that order.
func (s *Store) MoveItem(ctx context.Context, displayed []int64, id int64, delta int) error {
	from := -1

	for i, displayedID := range displayed {
		if displayedID == id {
			from = i

			break
		}
	}

	if from < 0 {
		return NotFoundError{Kind: "item", ID: id}
	}

	return s.ReorderItems(ctx, ordering.Move(displayed, from, from+delta))
}

func (s *Store) itemPositions(category model.Category) []int {
	return ordering.Positions(s.items,
		func(item model.Item) bool { return item.Category == category },
		func(item model.Item) int { return item.Position },
	)
}

// persistItemPositions writes each position with its own remote call. It keeps going
// after a failure and reports every id that could not be saved.
func (s *Store) persistItemPositions(ctx context.Context, assignments []ordering.Assignment) error {
	return persistPositions(ctx, "item", assignments, func(ctx context.Context, a ordering.Assignment) error {
		_, err := s.remote.UpdateItem(ctx, a.ID, model.ItemPatch{Position: model.Set(a.Position)})

		return err
	})
}

func persistPositions(
	ctx context.Context,
	kind string,
	assignments []ordering.Assignment,
	write func(context.Context, ordering.Assignment) error,
) error {
	var perr *PersistError

	for _, a := range assignments {
		if err := write(ctx, a); err != nil {
			log.Warn().Err(err).Str("kind", kind).Int64("id", a.ID).Int("position", a.Position).
				Msg("error saving position")

			if perr == nil {
				perr = &PersistError{Kind: kind, Err: err}
			}

			perr.IDs = append(perr.IDs, a.ID)
		}
	}

	if perr != nil {
		return perr
	}

	return nil
}
