package postgres

import (
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"gorm.io/datatypes"
)

type typeRow struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Category  string
	CreatedAt time.Time
}

func (typeRow) TableName() string { return "types" }

func (r typeRow) model() model.Type {
	return model.Type{ID: r.ID, Name: r.Name, Category: model.Category(r.Category), CreatedAt: r.CreatedAt}
}

type itemRow struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Category  string
	TypeID    int64
	Location  string
	Link      *string
	Status    bool
	VisitedAt *datatypes.Date
	Position  int
	CreatedAt time.Time
}

func (itemRow) TableName() string { return "items" }

func (r itemRow) model() model.Item {
	return model.Item{
		ID:        r.ID,
		Name:      r.Name,
		Category:  model.Category(r.Category),
		TypeID:    r.TypeID,
		Location:  r.Location,
		Link:      r.Link,
		Status:    r.Status,
		VisitedAt: fromDate(r.VisitedAt),
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
	}
}

type locationRow struct {
	ID        int64 `gorm:"primaryKey"`
	ItemID    int64
	Label     string
	URL       string `gorm:"column:url"`
	Status    bool
	VisitedAt *datatypes.Date
	Position  int
	CreatedAt time.Time
}

func (locationRow) TableName() string { return "item_locations" }

func (r locationRow) model() model.ItemLocation {
	return model.ItemLocation{
		ID:        r.ID,
		ItemID:    r.ItemID,
		Label:     r.Label,
		URL:       r.URL,
		Status:    r.Status,
		VisitedAt: fromDate(r.VisitedAt),
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
	}
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}

	d := datatypes.Date(model.Day(*t))

	return &d
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}

	return model.DayPtr(time.Time(*d))
}

// columns converts patch columns into values the postgres driver accepts.
func columns(cols map[string]any) map[string]any {
	out := make(map[string]any, len(cols))

	for name, v := range cols {
		switch v := v.(type) {
		case *time.Time:
			out[name] = toDate(v)
		case model.Category:
			out[name] = string(v)
		default:
			out[name] = v
		}
	}

	return out
}
