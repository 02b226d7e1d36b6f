package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DateLayout is how visit dates are written and parsed.
const DateLayout = "2006-01-02"

// Category partitions both types and items.
type Category string

// These constants refer to the categories supported by the app.
const (
	CategoryFood  Category = "food"
	CategoryPlace Category = "place"
)

// Categories returns the supported categories in display order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryPlace}
}

// Valid reports whether c is a supported category.
func (c Category) Valid() bool {
	return c == CategoryFood || c == CategoryPlace
}

// Type is a user-defined kind of item (e.g. "Ramen", "Museum") within a category.
type Type struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a tracked food or place idea.
type Item struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	TypeID   int64    `json:"type_id"`
	// Location is the legacy single location URL. Items created before branches existed
	// only have this; MigrateLegacyLocations promotes it into an ItemLocation.
	Location string  `json:"location"`
	Link     *string `json:"link,omitempty"`
	// Status and VisitedAt are authoritative only while the item has at most one branch.
	Status    bool       `json:"status"`
	VisitedAt *time.Time `json:"visited_at,omitempty"`
	// Position orders items within their category. Lower sorts first; values may be
	// negative after repeated front inserts.
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemLocation is one branch of an item, e.g. a restaurant chain's outlet.
type ItemLocation struct {
	ID        int64      `json:"id"`
	ItemID    int64      `json:"item_id"`
	Label     string     `json:"label"`
	URL       string     `json:"url"`
	Status    bool       `json:"status"`
	VisitedAt *time.Time `json:"visited_at,omitempty"`
	// Position orders branches within their item.
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemDraft holds the fields needed to insert an item. The remote store assigns
// the id and created_at; the position is set after insert.
type ItemDraft struct {
	Name      string     `json:"name" validate:"required"`
	Category  Category   `json:"category" validate:"oneof=food place"`
	TypeID    int64      `json:"type_id" validate:"required"`
	Location  string     `json:"location" validate:"required"`
	Link      string     `json:"link" validate:"omitempty,url"`
	Status    bool       `json:"status"`
	VisitedAt *time.Time `json:"visited_at" validate:"required_if=Status true"`
}

// LinkPtr returns the draft's link as stored (nil when empty).
func (d ItemDraft) LinkPtr() *string {
	if d.Link == "" {
		return nil
	}

	link := d.Link

	return &link
}

// TypeDraft holds the fields needed to insert a type.
type TypeDraft struct {
	Name     string   `json:"name" validate:"required"`
	Category Category `json:"category" validate:"oneof=food place"`
}

// LocationDraft holds the fields needed to insert a branch. Position is assigned by
// the store before the insert.
type LocationDraft struct {
	ItemID    int64      `json:"item_id" validate:"required"`
	Label     string     `json:"label" validate:"required"`
	URL       string     `json:"url" validate:"required"`
	Status    bool       `json:"status"`
	VisitedAt *time.Time `json:"visited_at"`
	Position  int        `json:"position"`
}

// Day truncates t to a calendar date in UTC, the precision visit dates are stored with.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayPtr is Day for call sites that need a nullable date.
func DayPtr(t time.Time) *time.Time {
	day := Day(t)

	return &day
}

// ParseDay parses a visit date written as DateLayout. An empty string is no date.
func ParseDay(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &ValidationError{Field: "visited_at", Message: fmt.Sprintf("must be a date like %s", DateLayout)}
	}

	return DayPtr(t), nil
}

// SameDay reports whether two nullable dates hold the same calendar date.
func SameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return Day(*a).Equal(Day(*b))
}

// MapsSearchURL builds a Google Maps search link for a free-text location.
func MapsSearchURL(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
