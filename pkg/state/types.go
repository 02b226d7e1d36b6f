package state

import (
	"context"

	"github.com/matt-steen/date-ideas/pkg/model"
)

// AddType inserts a type. Names are unique per category, ignoring case; a clash is
// reported as a *model.ValidationError before anything is sent.
func (s *Store) AddType(ctx context.Context, draft model.TypeDraft) (*model.Type, error) {
	if err := model.Validate(draft); err != nil {
		return nil, err
	}

	if err := model.CheckTypeUnique(s.types, draft.Name, draft.Category, 0); err != nil {
		return nil, err
	}

	var added model.Type

	err := s.run(ctx, operation{
		name: "add type",
		remote: func(ctx context.Context) error {
			var err error
			added, err = s.remote.InsertType(ctx, draft)

			return err
		},
		reconcile: func() {
			s.types = append(s.types, added)
			sortTypes(s.types)
		},
	})
	if err != nil {
		return nil, err
	}

	return &added, nil
}

// UpdateType renames or recategorizes a type.
func (s *Store) UpdateType(ctx context.Context, id int64, patch model.TypePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	i := s.typeIndex(id)
	if i < 0 {
		return NotFoundError{Kind: "type", ID: id}
	}

	merged := s.types[i]
	patch.Apply(&merged)

	if err := model.CheckTypeUnique(s.types, merged.Name, merged.Category, id); err != nil {
		return err
	}

	var row model.Type

	return s.run(ctx, operation{
		name: "update type",
		apply: func() {
			s.types[i] = merged
		},
		remote: func(ctx context.Context) error {
			var err error
			row, err = s.remote.UpdateType(ctx, id, patch)

			return err
		},
		reconcile: func() {
			if i := s.typeIndex(id); i >= 0 {
				s.types[i] = row
			}

			sortTypes(s.types)
		},
	})
}

// DeleteType removes a type. It is refused while any item still uses the type.
func (s *Store) DeleteType(ctx context.Context, id int64) error {
	i := s.typeIndex(id)
	if i < 0 {
		return NotFoundError{Kind: "type", ID: id}
	}

	if err := model.CheckTypeUnused(s.items, s.types[i]); err != nil {
		return err
	}

	return s.run(ctx, operation{
		name: "delete type",
		remote: func(ctx context.Context) error {
			return s.remote.DeleteType(ctx, id)
		},
		reconcile: func() {
			if i := s.typeIndex(id); i >= 0 {
				s.types = append(s.types[:i], s.types[i+1:]...)
			}
		},
	})
}

// TypeName returns the name of the type with the given id, or "Unknown".
func (s *Store) TypeName(id int64) string {
	if i := s.typeIndex(id); i >= 0 {
		return s.types[i].Name
	}

	return "Unknown"
}

// TypesIn returns the types of one category, sorted by name.
func (s *Store) TypesIn(category model.Category) []model.Type {
	types := []model.Type{}

	for _, t := range s.types {
		if t.Category == category {
			types = append(types, t)
		}
	}

	return types
}
