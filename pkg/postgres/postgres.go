// Package postgres is the hosted implementation of the remote store, backed by a
// Postgres database (e.g. Supabase) through gorm.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/matt-steen/date-ideas/pkg/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a row to update or delete does not exist.
var ErrNotFound = errors.New("not found")

// Client talks to the hosted database.
type Client struct {
	db *gorm.DB
}

// Open connects to the database at dsn and creates the tables if they don't exist.
func Open(ctx context.Context, dsn string) (*Client, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// the terminal belongs to the UI; errors are logged by the store
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	client := &Client{db: db}

	if err := client.db.WithContext(ctx).Exec(schemaSQL).Error; err != nil {
		client.Close()

		return nil, fmt.Errorf("error creating postgres schema: %w", err)
	}

	return client, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	conn, err := c.db.DB()
	if err != nil {
		return err
	}

	return conn.Close()
}

// SelectItems returns all items ordered by position, newest first within a position.
func (c *Client) SelectItems(ctx context.Context) ([]model.Item, error) {
	var rows []itemRow

	err := c.db.WithContext(ctx).Order("position ASC").Order("created_at DESC").Order("id DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}

	items := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.model())
	}

	return items, nil
}

// InsertItem stores a new item and returns it with its id and creation time.
func (c *Client) InsertItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	row := itemRow{
		Name:      draft.Name,
		Category:  string(draft.Category),
		TypeID:    draft.TypeID,
		Location:  draft.Location,
		Link:      draft.LinkPtr(),
		Status:    draft.Status,
		VisitedAt: toDate(draft.VisitedAt),
	}

	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Item{}, fmt.Errorf("error inserting item %q: %w", draft.Name, err)
	}

	return row.model(), nil
}

// UpdateItem writes the set fields of patch and returns the stored row.
func (c *Client) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	var row itemRow

	if err := c.update(ctx, &row, id, patch.Columns()); err != nil {
		return model.Item{}, fmt.Errorf("error updating item %d: %w", id, err)
	}

	return row.model(), nil
}

// DeleteItem deletes an item; its branches go with it.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	if err := c.delete(ctx, &itemRow{}, id); err != nil {
		return fmt.Errorf("error deleting item %d: %w", id, err)
	}

	return nil
}

// SelectTypes returns all types ordered by name.
func (c *Client) SelectTypes(ctx context.Context) ([]model.Type, error) {
	var rows []typeRow

	if err := c.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error loading types: %w", err)
	}

	types := make([]model.Type, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.model())
	}

	return types, nil
}

// InsertType stores a new type.
func (c *Client) InsertType(ctx context.Context, draft model.TypeDraft) (model.Type, error) {
	row := typeRow{Name: draft.Name, Category: string(draft.Category)}

	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Type{}, fmt.Errorf("error inserting type %q: %w", draft.Name, err)
	}

	return row.model(), nil
}

// UpdateType writes the set fields of patch and returns the stored row.
func (c *Client) UpdateType(ctx context.Context, id int64, patch model.TypePatch) (model.Type, error) {
	var row typeRow

	if err := c.update(ctx, &row, id, patch.Columns()); err != nil {
		return model.Type{}, fmt.Errorf("error updating type %d: %w", id, err)
	}

	return row.model(), nil
}

// DeleteType deletes a type. The database refuses while items reference it.
func (c *Client) DeleteType(ctx context.Context, id int64) error {
	if err := c.delete(ctx, &typeRow{}, id); err != nil {
		return fmt.Errorf("error deleting type %d: %w", id, err)
	}

	return nil
}

// SelectLocations returns all branches grouped by item in position order.
func (c *Client) SelectLocations(ctx context.Context) ([]model.ItemLocation, error) {
	var rows []locationRow

	err := c.db.WithContext(ctx).
		Order("item_id ASC").Order("position ASC").Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error loading locations: %w", err)
	}

	locations := make([]model.ItemLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.model())
	}

	return locations, nil
}

// InsertLocation stores a new branch.
func (c *Client) InsertLocation(ctx context.Context, draft model.LocationDraft) (model.ItemLocation, error) {
	row := locationRow{
		ItemID:    draft.ItemID,
		Label:     draft.Label,
		URL:       draft.URL,
		Status:    draft.Status,
		VisitedAt: toDate(draft.VisitedAt),
		Position:  draft.Position,
	}

	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.ItemLocation{}, fmt.Errorf("error inserting location for item %d: %w", draft.ItemID, err)
	}

	return row.model(), nil
}

// UpdateLocation writes the set fields of patch and returns the stored row.
func (c *Client) UpdateLocation(
	ctx context.Context, id int64, patch model.LocationPatch,
) (model.ItemLocation, error) {
	var row locationRow

	if err := c.update(ctx, &row, id, patch.Columns()); err != nil {
		return model.ItemLocation{}, fmt.Errorf("error updating location %d: %w", id, err)
	}

	return row.model(), nil
}

// DeleteLocation deletes a branch.
func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	if err := c.delete(ctx, &locationRow{}, id); err != nil {
		return fmt.Errorf("error deleting location %d: %w", id, err)
	}

	return nil
}

// update applies cols to the row with the given id and loads the result into dst.
func (c *Client) update(ctx context.Context, dst any, id int64, cols map[string]any) error {
	db := c.db.WithContext(ctx)

	if len(cols) > 0 {
		result := db.Model(dst).Where("id = ?", id).Updates(columns(cols))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}
	}

	err := db.First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}

func (c *Client) delete(ctx context.Context, row any, id int64) error {
	result := c.db.WithContext(ctx).Delete(row, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
