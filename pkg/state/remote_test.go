package state_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
)

var errRemote = errors.New("remote unavailable")

// fakeRemote is an in-memory state.Remote. Methods listed in failing return errRemote;
// failIDs makes updates of specific ids fail.
type fakeRemote struct {
	items     []model.Item
	types     []model.Type
	locations []model.ItemLocation

	nextID  int64
	clock   time.Time
	failing map[string]bool
	failIDs map[int64]bool
	calls   []string
	// during runs inside every call, while the store is waiting on it.
	during func(method string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		nextID:  100,
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		failing: map[string]bool{},
		failIDs: map[int64]bool{},
	}
}

func (f *fakeRemote) call(method string, id int64) error {
	f.calls = append(f.calls, method)

	if f.during != nil {
		f.during(method)
	}

	if f.failing[method] || f.failIDs[id] {
		return fmt.Errorf("error calling %s: %w", method, errRemote)
	}

	return nil
}

func (f *fakeRemote) id() int64 {
	f.nextID++

	return f.nextID
}

func (f *fakeRemote) now() time.Time {
	f.clock = f.clock.Add(time.Minute)

	return f.clock
}

func (f *fakeRemote) SelectItems(context.Context) ([]model.Item, error) {
	if err := f.call("SelectItems", 0); err != nil {
		return nil, err
	}

	return append([]model.Item{}, f.items...), nil
}

func (f *fakeRemote) InsertItem(_ context.Context, draft model.ItemDraft) (model.Item, error) {
	if err := f.call("InsertItem", 0); err != nil {
		return model.Item{}, err
	}

	item := model.Item{
		ID:        f.id(),
		Name:      draft.Name,
		Category:  draft.Category,
		TypeID:    draft.TypeID,
		Location:  draft.Location,
		Link:      draft.LinkPtr(),
		Status:    draft.Status,
		VisitedAt: draft.VisitedAt,
		CreatedAt: f.now(),
	}
	f.items = append(f.items, item)

	return item, nil
}

func (f *fakeRemote) UpdateItem(_ context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	if err := f.call("UpdateItem", id); err != nil {
		return model.Item{}, err
	}

	for i := range f.items {
		if f.items[i].ID == id {
			patch.Apply(&f.items[i])

			return f.items[i], nil
		}
	}

	return model.Item{}, fmt.Errorf("item %d: %w", id, errRemote)
}

func (f *fakeRemote) DeleteItem(_ context.Context, id int64) error {
	if err := f.call("DeleteItem", id); err != nil {
		return err
	}

	items := []model.Item{}

	for _, item := range f.items {
		if item.ID != id {
			items = append(items, item)
		}
	}

	f.items = items

	locations := []model.ItemLocation{}

	for _, loc := range f.locations {
		if loc.ItemID != id {
			locations = append(locations, loc)
		}
	}

	f.locations = locations

	return nil
}

func (f *fakeRemote) SelectTypes(context.Context) ([]model.Type, error) {
	if err := f.call("SelectTypes", 0); err != nil {
		return nil, err
	}

	return append([]model.Type{}, f.types...), nil
}

func (f *fakeRemote) InsertType(_ context.Context, draft model.TypeDraft) (model.Type, error) {
	if err := f.call("InsertType", 0); err != nil {
		return model.Type{}, err
	}

	t := model.Type{ID: f.id(), Name: draft.Name, Category: draft.Category, CreatedAt: f.now()}
	f.types = append(f.types, t)

	return t, nil
}

func (f *fakeRemote) UpdateType(_ context.Context, id int64, patch model.TypePatch) (model.Type, error) {
	if err := f.call("UpdateType", id); err != nil {
		return model.Type{}, err
	}

	for i := range f.types {
		if f.types[i].ID == id {
			patch.Apply(&f.types[i])

			return f.types[i], nil
		}
	}

	return model.Type{}, fmt.Errorf("type %d: %w", id, errRemote)
}

func (f *fakeRemote) DeleteType(_ context.Context, id int64) error {
	if err := f.call("DeleteType", id); err != nil {
		return err
	}

	types := []model.Type{}

	for _, t := range f.types {
		if t.ID != id {
			types = append(types, t)
		}
	}

	f.types = types

	return nil
}

func (f *fakeRemote) SelectLocations(context.Context) ([]model.ItemLocation, error) {
	if err := f.call("SelectLocations", 0); err != nil {
		return nil, err
	}

	return append([]model.ItemLocation{}, f.locations...), nil
}

func (f *fakeRemote) InsertLocation(_ context.Context, draft model.LocationDraft) (model.ItemLocation, error) {
	if err := f.call("InsertLocation", draft.ItemID); err != nil {
		return model.ItemLocation{}, err
	}

	loc := model.ItemLocation{
		ID:        f.id(),
		ItemID:    draft.ItemID,
		Label:     draft.Label,
		URL:       draft.URL,
		Status:    draft.Status,
		VisitedAt: draft.VisitedAt,
		Position:  draft.Position,
		CreatedAt: f.now(),
	}
	f.locations = append(f.locations, loc)

	return loc, nil
}

func (f *fakeRemote) UpdateLocation(_ context.Context, id int64, patch model.LocationPatch) (model.ItemLocation, error) {
	if err := f.call("UpdateLocation", id); err != nil {
		return model.ItemLocation{}, err
	}

	for i := range f.locations {
		if f.locations[i].ID == id {
			patch.Apply(&f.locations[i])

			return f.locations[i], nil
		}
	}

	return model.ItemLocation{}, fmt.Errorf("location %d: %w", id, errRemote)
}

func (f *fakeRemote) DeleteLocation(_ context.Context, id int64) error {
	if err := f.call("DeleteLocation", id); err != nil {
		return err
	}

	locations := []model.ItemLocation{}

	for _, loc := range f.locations {
		if loc.ID != id {
			locations = append(locations, loc)
		}
	}

	f.locations = locations

	return nil
}

func (f *fakeRemote) count(method string) int {
	n := 0

	for _, c := range f.calls {
		if c == method {
			n++
		}
	}

	return n
}

// recorder is a notify.Sink that keeps everything it is given.
type recorder struct {
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.got = append(r.got, n)
}

func (r *recorder) last() notify.Notification {
	if len(r.got) == 0 {
		return notify.Notification{}
	}

	return r.got[len(r.got)-1]
}
