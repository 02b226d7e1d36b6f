package db

import (
	"context"
	"fmt"
)

// columnMigration adds a column to a table created by an older base.sql.
type columnMigration struct {
	table  string
	column string
	decl   string
}

// columnMigrations bring databases created before visit dates and ordering existed up
// to date. Append new entries at the end.
var columnMigrations = []columnMigration{
	{table: "items", column: "visited_at", decl: "DATE"},
	{table: "items", column: "position", decl: "INTEGER NOT NULL DEFAULT 0"},
}

// migrations run after the column migrations. Each statement must be idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS item_locations (
	    id         INTEGER PRIMARY KEY AUTOINCREMENT,
	    item_id    INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	    label      TEXT NOT NULL,
	    url        TEXT NOT NULL,
	    status     BOOLEAN NOT NULL DEFAULT 0,
	    visited_at DATE,
	    position   INTEGER NOT NULL DEFAULT 0,
	    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category_position ON items(category, position)`,
	`CREATE INDEX IF NOT EXISTS idx_item_locations_item_position ON item_locations(item_id, position)`,
}

func (d *Database) migrate(ctx context.Context) error {
	for _, m := range columnMigrations {
		exists, err := d.columnExists(ctx, m.table, m.column)
		if err != nil {
			return err
		}

		if exists {
			continue
		}

		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.decl)
		if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error adding column %s.%s: %w", m.table, m.column, err)
		}
	}

	for i, m := range migrations {
		if _, err := d.conn.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("error running migration %d: %w", i+1, err)
		}
	}

	return nil
}

func (d *Database) columnExists(ctx context.Context, table, column string) (bool, error) {
	rows, err := d.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("error reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue any
			pk        int
		)

		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("error scanning columns of %s: %w", table, err)
		}

		if name == column {
			return true, nil
		}
	}

	return false, rows.Err()
}
