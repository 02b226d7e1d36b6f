package state

import (
	"context"
	"sort"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/ordering"
	"github.com/rs/zerolog/log"
)

// AddLocation adds a branch at the end of its item's branches. Sibling branches are not
// modified: their visit status survives the addition.
func (s *Store) AddLocation(ctx context.Context, draft model.LocationDraft) (*model.ItemLocation, error) {
	if err := model.Validate(draft); err != nil {
		return nil, err
	}

	draft.Position = ordering.Back(s.locationPositions(draft.ItemID))

	var added model.ItemLocation

	err := s.run(ctx, operation{
		name: "add location",
		remote: func(ctx context.Context) error {
			var err error
			added, err = s.remote.InsertLocation(ctx, draft)

			return err
		},
		reconcile: func() {
			s.locations = append(s.locations, added)
			sortLocations(s.locations)
		},
	})
	if err != nil {
		return nil, err
	}

	return &added, nil
}

// UpdateLocation patches a branch locally, writes the patch remotely and then takes
// the stored row as the truth.
func (s *Store) UpdateLocation(ctx context.Context, id int64, patch model.LocationPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	var row model.ItemLocation

	return s.run(ctx, operation{
		name: "update location",
		apply: func() {
			if i := s.locationIndex(id); i >= 0 {
				patch.Apply(&s.locations[i])
			}
		},
		remote: func(ctx context.Context) error {
			var err error
			row, err = s.remote.UpdateLocation(ctx, id, patch)

			return err
		},
		reconcile: func() {
			if i := s.locationIndex(id); i >= 0 {
				s.locations[i] = row
			}
		},
	})
}

// MarkLocationVisited records a visit to a branch. A nil date means today.
func (s *Store) MarkLocationVisited(ctx context.Context, id int64, date *time.Time) error {
	if date == nil {
		date = model.DayPtr(time.Now())
	}

	return s.UpdateLocation(ctx, id, model.LocationPatch{
		Status:    model.Set(true),
		VisitedAt: model.Set(date),
	})
}

// DeleteLocation removes a branch.
func (s *Store) DeleteLocation(ctx context.Context, id int64) error {
	return s.run(ctx, operation{
		name: "delete location",
		remote: func(ctx context.Context) error {
			return s.remote.DeleteLocation(ctx, id)
		},
		reconcile: func() {
			if i := s.locationIndex(id); i >= 0 {
				s.locations = append(s.locations[:i], s.locations[i+1:]...)
			}
		},
	})
}

// ReorderLocations gives the listed branches of itemID positions 1..n in the order
// given. Ids of other items are ignored; unlisted branches keep their positions.
func (s *Store) ReorderLocations(ctx context.Context, itemID int64, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	kept, dropped := ordering.Partition(orderedIDs, func(id int64) (int64, bool) {
		i := s.locationIndex(id)
		if i < 0 || s.locations[i].ItemID != itemID {
			return 0, false
		}

		return itemID, true
	})
	if len(dropped) > 0 {
		log.Warn().Int64("item", itemID).Interface("ids", dropped).Msg("ignoring ids that are not branches of the item")
	}

	assignments := ordering.Reorder(kept)

	return s.run(ctx, operation{
		name:    "save the new branch order",
		offline: true,
		apply: func() {
			for _, a := range assignments {
				if i := s.locationIndex(a.ID); i >= 0 {
					s.locations[i].Position = a.Position
				}
			}

			sortLocations(s.locations)
		},
		remote: func(ctx context.Context) error {
			return persistPositions(ctx, "location", assignments, func(ctx context.Context, a ordering.Assignment) error {
				_, err := s.remote.UpdateLocation(ctx, a.ID, model.LocationPatch{Position: model.Set(a.Position)})

				return err
			})
		},
	})
}

func (s *Store) locationPositions(itemID int64) []int {
	return ordering.Positions(s.locations,
		func(loc model.ItemLocation) bool { return loc.ItemID == itemID },
		func(loc model.ItemLocation) int { return loc.Position },
	)
}

// sortLocations orders branches by item, then position, keeping insertion order for ties.
func sortLocations(locations []model.ItemLocation) {
	sort.SliceStable(locations, func(i, j int) bool {
		if locations[i].ItemID != locations[j].ItemID {
			return locations[i].ItemID < locations[j].ItemID
		}

		return locations[i].Position < locations[j].Position
	})
}
