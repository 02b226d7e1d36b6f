package db

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
)

const dateLayout = "2006-01-02"

const (
	itemColumns     = `id, name, category, type_id, location, link, status, visited_at, position, created_at`
	typeColumns     = `id, name, category, created_at`
	locationColumns = `id, item_id, label, url, status, visited_at, position, created_at`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (model.Item, error) {
	var (
		item      model.Item
		link      sql.NullString
		visitedAt sql.NullTime
	)

	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.TypeID, &item.Location, &link,
		&item.Status, &visitedAt, &item.Position, &item.CreatedAt,
	)
	if err != nil {
		return item, err
	}

	if link.Valid {
		item.Link = &link.String
	}

	item.VisitedAt = datePtr(visitedAt)

	return item, nil
}

func scanType(row scanner) (model.Type, error) {
	var t model.Type

	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.CreatedAt)

	return t, err
}

func scanLocation(row scanner) (model.ItemLocation, error) {
	var (
		loc       model.ItemLocation
		visitedAt sql.NullTime
	)

	err := row.Scan(
		&loc.ID, &loc.ItemID, &loc.Label, &loc.URL, &loc.Status, &visitedAt, &loc.Position, &loc.CreatedAt,
	)
	if err != nil {
		return loc, err
	}

	loc.VisitedAt = datePtr(visitedAt)

	return loc, nil
}

func datePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}

	return model.DayPtr(t.Time)
}

// sqlValue converts a patch value into what the sqlite driver stores.
func sqlValue(v any) any {
	switch v := v.(type) {
	case *time.Time:
		if v == nil {
			return nil
		}

		return v.Format(dateLayout)
	case time.Time:
		return v.Format(dateLayout)
	case *string:
		if v == nil {
			return nil
		}

		return *v
	case model.Category:
		return string(v)
	default:
		return v
	}
}

// setClause renders cols as "a = ?, b = ?" in a stable order along with the arguments.
func setClause(cols map[string]any) (string, []any) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}

	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names))

	for _, name := range names {
		sets = append(sets, name+" = ?")
		args = append(args, sqlValue(cols[name]))
	}

	return strings.Join(sets, ", "), args
}
