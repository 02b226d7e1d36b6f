// Package state holds the in-memory view of items, types and location branches and
// reconciles it with the remote store.
//
// Every mutation runs as an operation in three steps: an optimistic local change, the
// remote call(s), and a reconcile step that folds the remote response back into local
// state. A failed remote call records the error, logs it and queues an error
// notification; nothing already applied locally is rolled back, so local and remote
// state may differ until the next fetch.
//
// A Store is not safe for concurrent use. Callers run operations one at a time; the
// busy flag is advisory and may be observed from any goroutine.
package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/matt-steen/date-ideas/pkg/status"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Remote is the row-level CRUD the store needs from the persistence tier. Any call may
// fail. There are no transactions.
type Remote interface {
	SelectItems(ctx context.Context) ([]model.Item, error)
	InsertItem(ctx context.Context, draft model.ItemDraft) (model.Item, error)
	UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	SelectTypes(ctx context.Context) ([]model.Type, error)
	InsertType(ctx context.Context, draft model.TypeDraft) (model.Type, error)
	UpdateType(ctx context.Context, id int64, patch model.TypePatch) (model.Type, error)
	DeleteType(ctx context.Context, id int64) error

	SelectLocations(ctx context.Context) ([]model.ItemLocation, error)
	InsertLocation(ctx context.Context, draft model.LocationDraft) (model.ItemLocation, error)
	UpdateLocation(ctx context.Context, id int64, patch model.LocationPatch) (model.ItemLocation, error)
	DeleteLocation(ctx context.Context, id int64) error
}

// Store is the canonical in-memory state of the app.
type Store struct {
	remote Remote
	sink   notify.Sink

	items     []model.Item
	types     []model.Type
	locations []model.ItemLocation

	busy atomic.Int32
	err  error
}

// New creates a Store. A nil remote means no valid credentials were configured: fetches
// and mutations then fail with ErrNotConfigured without attempting any I/O.
func New(remote Remote, sink notify.Sink) *Store {
	if sink == nil {
		sink = discard{}
	}

	return &Store{
		remote:    remote,
		sink:      sink,
		items:     []model.Item{},
		types:     []model.Type{},
		locations: []model.ItemLocation{},
	}
}

type discard struct{}

func (discard) Notify(notify.Notification) {}

// Configured reports whether the store has a remote to talk to.
func (s *Store) Configured() bool {
	return s.remote != nil
}

// Busy reports whether an operation is waiting on the remote store.
func (s *Store) Busy() bool {
	return s.busy.Load() > 0
}

// Err returns the error recorded by the last failed operation, or nil.
func (s *Store) Err() error {
	return s.err
}

// Items returns a copy of all items.
func (s *Store) Items() []model.Item {
	return append([]model.Item{}, s.items...)
}

// Types returns a copy of all types, sorted by name.
func (s *Store) Types() []model.Type {
	return append([]model.Type{}, s.types...)
}

// Locations returns a copy of all branches.
func (s *Store) Locations() []model.ItemLocation {
	return append([]model.ItemLocation{}, s.locations...)
}

// Item returns the item with the given id.
func (s *Store) Item(id int64) (model.Item, bool) {
	if i := s.itemIndex(id); i >= 0 {
		return s.items[i], true
	}

	return model.Item{}, false
}

// LocationsFor returns the branches of one item in position order.
func (s *Store) LocationsFor(itemID int64) []model.ItemLocation {
	locs := []model.ItemLocation{}

	for _, loc := range s.locations {
		if loc.ItemID == itemID {
			locs = append(locs, loc)
		}
	}

	sort.SliceStable(locs, func(i, j int) bool {
		return locs[i].Position < locs[j].Position
	})

	return locs
}

// Rows returns the items of a category joined with their branches and sorted for display.
func (s *Store) Rows(category model.Category, order status.Order) []status.Row {
	items := []model.Item{}

	for _, item := range s.items {
		if item.Category == category {
			items = append(items, item)
		}
	}

	rows := status.Rows(items, s.locations)
	status.Sort(rows, order)

	return rows
}

// operation is one store mutation. Any step may be nil.
type operation struct {
	// name describes the operation in logs and failure notifications, e.g. "add item".
	name string
	// apply changes local state before the remote call.
	apply func()
	// offline lets apply run even without a remote.
	offline bool
	// remote performs the remote call(s).
	remote func(ctx context.Context) error
	// reconcile folds the remote response into local state. It runs only after remote succeeded.
	reconcile func()
}

func (s *Store) run(ctx context.Context, op operation) error {
	if s.remote == nil {
		if op.offline && op.apply != nil {
			op.apply()
		}

		s.err = ErrNotConfigured

		log.Warn().Str("op", op.name).Msg("skipping remote call: store is not configured")

		return ErrNotConfigured
	}

	defer s.begin()()

	if op.apply != nil {
		op.apply()
	}

	if op.remote != nil {
		if err := op.remote(ctx); err != nil {
			s.fail(op.name, err)

			return err
		}
	}

	if op.reconcile != nil {
		op.reconcile()
	}

	log.Debug().Str("op", op.name).Msg("operation complete")

	return nil
}

// begin marks the store busy until the returned func is called. Only the outermost
// operation clears the last error, so a failure inside a batch (refresh, migration,
// sync) stays recorded when later steps of the same batch succeed.
func (s *Store) begin() func() {
	if s.busy.Add(1) == 1 {
		s.err = nil
	}

	return func() { s.busy.Add(-1) }
}

// fail records a remote failure and tells the user about it.
func (s *Store) fail(name string, err error) {
	s.err = err

	log.Error().Err(err).Str("op", name).Msg("remote call failed")

	s.sink.Notify(notify.Notification{
		Title:       "Error",
		Description: fmt.Sprintf("Failed to %s. Please try again.", name),
		Severity:    notify.SeverityError,
	})
}

func (s *Store) success(title, description string) {
	s.sink.Notify(notify.Notification{
		Title:       title,
		Description: description,
		Severity:    notify.SeveritySuccess,
	})
}

// Refresh re-fetches everything. It is the only point at which local state is
// guaranteed to match the remote store.
func (s *Store) Refresh(ctx context.Context) error {
	defer s.begin()()

	return errors.Join(s.FetchTypes(ctx), s.FetchItems(ctx), s.FetchLocations(ctx))
}

// FetchItems replaces all local items with the remote ones.
func (s *Store) FetchItems(ctx context.Context) error {
	var items []model.Item

	return s.run(ctx, operation{
		name:    "load items",
		apply:   func() { s.items = []model.Item{} },
		offline: true,
		remote: func(ctx context.Context) error {
			var err error
			items, err = s.remote.SelectItems(ctx)

			return err
		},
		reconcile: func() { s.items = items },
	})
}

// FetchTypes replaces all local types with the remote ones.
func (s *Store) FetchTypes(ctx context.Context) error {
	var types []model.Type

	return s.run(ctx, operation{
		name:    "load types",
		apply:   func() { s.types = []model.Type{} },
		offline: true,
		remote: func(ctx context.Context) error {
			var err error
			types, err = s.remote.SelectTypes(ctx)

			return err
		},
		reconcile: func() {
			s.types = types
			sortTypes(s.types)
		},
	})
}

// FetchLocations replaces all local branches with the remote ones.
func (s *Store) FetchLocations(ctx context.Context) error {
	var locations []model.ItemLocation

	return s.run(ctx, operation{
		name:    "load locations",
		apply:   func() { s.locations = []model.ItemLocation{} },
		offline: true,
		remote: func(ctx context.Context) error {
			var err error
			locations, err = s.remote.SelectLocations(ctx)

			return err
		},
		reconcile: func() { s.locations = locations },
	})
}

func sortTypes(types []model.Type) {
	col := collate.New(language.Und, collate.IgnoreCase)

	sort.SliceStable(types, func(i, j int) bool {
		return col.CompareString(types[i].Name, types[j].Name) < 0
	})
}

func (s *Store) itemIndex(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) typeIndex(id int64) int {
	for i := range s.types {
		if s.types[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) locationIndex(id int64) int {
	for i := range s.locations {
		if s.locations[i].ID == id {
			return i
		}
	}

	return -1
}
