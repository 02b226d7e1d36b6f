// Package db is the sqlite implementation of the remote store: plain row-level CRUD over
// the items, types and item_locations tables. It keeps no state of its own; the
// in-memory view lives in package state.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/matt-steen/date-ideas/pkg/model"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// ErrNotFound is returned when a row to update or delete does not exist.
var ErrNotFound = errors.New("not found")

// Database manages the db connection.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and initializes or
// upgrades the structure if needed.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", filename))
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	if err := database.initialize(ctx); err != nil {
		conn.Close()

		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return d.migrate(ctx)
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// SelectItems returns all items ordered by position, newest first within a position.
func (d *Database) SelectItems(ctx context.Context) ([]model.Item, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY position ASC, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning items: %w", err)
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning items: %w", err)
	}

	return items, nil
}

// InsertItem adds an item and returns the stored row.
func (d *Database) InsertItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO items (name, category, type_id, location, link, status, visited_at)
		     VALUES (?, ?, ?, ?, ?, ?, ?)`,
		draft.Name, string(draft.Category), draft.TypeID, draft.Location,
		sqlValue(draft.LinkPtr()), draft.Status, sqlValue(draft.VisitedAt),
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("error adding item %s: %w", draft.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Item{}, fmt.Errorf("error getting id of new item %s: %w", draft.Name, err)
	}

	return d.getItem(ctx, id)
}

// UpdateItem writes the set fields of patch and returns the stored row.
func (d *Database) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	if err := d.update(ctx, "items", id, patch.Columns()); err != nil {
		return model.Item{}, fmt.Errorf("error updating item %d: %w", id, err)
	}

	return d.getItem(ctx, id)
}

// DeleteItem removes an item; its branches go with it.
func (d *Database) DeleteItem(ctx context.Context, id int64) error {
	if err := d.delete(ctx, "items", id); err != nil {
		return fmt.Errorf("error deleting item %d: %w", id, err)
	}

	return nil
}

func (d *Database) getItem(ctx context.Context, id int64) (model.Item, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item, fmt.Errorf("error getting item %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return item, fmt.Errorf("error getting item %d: %w", id, err)
	}

	return item, nil
}

// SelectTypes returns all types ordered by name.
func (d *Database) SelectTypes(ctx context.Context) ([]model.Type, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT `+typeColumns+` FROM types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error loading types: %w", err)
	}
	defer rows.Close()

	types := []model.Type{}

	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning types: %w", err)
		}

		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning types: %w", err)
	}

	return types, nil
}

// InsertType adds a type and returns the stored row.
func (d *Database) InsertType(ctx context.Context, draft model.TypeDraft) (model.Type, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO types (name, category) VALUES (?, ?)`, draft.Name, string(draft.Category))
	if err != nil {
		return model.Type{}, fmt.Errorf("error adding type %s: %w", draft.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Type{}, fmt.Errorf("error getting id of new type %s: %w", draft.Name, err)
	}

	return d.getType(ctx, id)
}

// UpdateType writes the set fields of patch and returns the stored row.
func (d *Database) UpdateType(ctx context.Context, id int64, patch model.TypePatch) (model.Type, error) {
	if err := d.update(ctx, "types", id, patch.Columns()); err != nil {
		return model.Type{}, fmt.Errorf("error updating type %d: %w", id, err)
	}

	return d.getType(ctx, id)
}

// DeleteType removes a type. Items still referencing it make this fail.
func (d *Database) DeleteType(ctx context.Context, id int64) error {
	if err := d.delete(ctx, "types", id); err != nil {
		return fmt.Errorf("error deleting type %d: %w", id, err)
	}

	return nil
}

func (d *Database) getType(ctx context.Context, id int64) (model.Type, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT `+typeColumns+` FROM types WHERE id = ?`, id)

	t, err := scanType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("error getting type %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return t, fmt.Errorf("error getting type %d: %w", id, err)
	}

	return t, nil
}

// SelectLocations returns all branches ordered by item, position and age.
func (d *Database) SelectLocations(ctx context.Context) ([]model.ItemLocation, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM item_locations ORDER BY item_id, position ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error loading locations: %w", err)
	}
	defer rows.Close()

	locations := []model.ItemLocation{}

	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning locations: %w", err)
		}

		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning locations: %w", err)
	}

	return locations, nil
}

// InsertLocation adds a branch and returns the stored row.
func (d *Database) InsertLocation(ctx context.Context, draft model.LocationDraft) (model.ItemLocation, error) {
	result, err := d.conn.ExecContext(ctx,
		`INSERT INTO item_locations (item_id, label, url, status, visited_at, position)
		     VALUES (?, ?, ?, ?, ?, ?)`,
		draft.ItemID, draft.Label, draft.URL, draft.Status, sqlValue(draft.VisitedAt), draft.Position,
	)
	if err != nil {
		return model.ItemLocation{}, fmt.Errorf("error adding location %s to item %d: %w", draft.Label, draft.ItemID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.ItemLocation{}, fmt.Errorf("error getting id of new location %s: %w", draft.Label, err)
	}

	return d.getLocation(ctx, id)
}

// UpdateLocation writes the set fields of patch and returns the stored row.
func (d *Database) UpdateLocation(ctx context.Context, id int64, patch model.LocationPatch) (model.ItemLocation, error) {
	if err := d.update(ctx, "item_locations", id, patch.Columns()); err != nil {
		return model.ItemLocation{}, fmt.Errorf("error updating location %d: %w", id, err)
	}

	return d.getLocation(ctx, id)
}

// DeleteLocation removes a branch.
func (d *Database) DeleteLocation(ctx context.Context, id int64) error {
	if err := d.delete(ctx, "item_locations", id); err != nil {
		return fmt.Errorf("error deleting location %d: %w", id, err)
	}

	return nil
}

func (d *Database) getLocation(ctx context.Context, id int64) (model.ItemLocation, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM item_locations WHERE id = ?`, id)

	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return loc, fmt.Errorf("error getting location %d: %w", id, ErrNotFound)
	}

	if err != nil {
		return loc, fmt.Errorf("error getting location %d: %w", id, err)
	}

	return loc, nil
}

// update writes cols to the row with the given id. An empty cols only checks that the
// row exists.
func (d *Database) update(ctx context.Context, table string, id int64, cols map[string]any) error {
	if len(cols) == 0 {
		var found int64

		err := d.conn.QueryRowContext(ctx, fmt.Sprintf("SELECT id FROM %s WHERE id = ?", table), id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		return err
	}

	sets, args := setClause(cols)
	args = append(args, id)

	result, err := d.conn.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, sets), args...)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func (d *Database) delete(ctx context.Context, table string, id int64) error {
	result, err := d.conn.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}
