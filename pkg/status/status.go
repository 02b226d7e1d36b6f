// Package status derives an item's effective visit state from its location branches
// and sorts items for display.
package status

import (
	"fmt"
	"sort"
	"time"

	"github.com/matt-steen/date-ideas/pkg/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rank is the aggregate visit progress of an item.
type Rank int

// These constants are ordered so that a higher rank means more progress.
const (
	NotVisited Rank = iota
	Visited
	Completed
)

func (r Rank) String() string {
	switch r {
	case Completed:
		return "Completed"
	case Visited:
		return "Visited"
	default:
		return "Not visited"
	}
}

// Summary is the effective visit state of one item.
type Summary struct {
	Rank Rank
	// Date is the most recent visit, or nil if there is none.
	Date            *time.Time
	Branches        int
	VisitedBranches int
}

// Summarize computes the summary of item given the branches that belong to it.
// With at most one branch the item's own status and date are authoritative; with more,
// they are ignored in favour of the branches.
func Summarize(item model.Item, branches []model.ItemLocation) Summary {
	s := Summary{Branches: len(branches)}

	for _, b := range branches {
		if b.Status {
			s.VisitedBranches++
		}
	}

	if len(branches) <= 1 {
		if item.Status {
			s.Rank = Visited
		}

		s.Date = item.VisitedAt

		return s
	}

	switch {
	case s.VisitedBranches == len(branches):
		s.Rank = Completed
	case s.VisitedBranches > 0:
		s.Rank = Visited
	}

	for _, b := range branches {
		if b.VisitedAt != nil && (s.Date == nil || b.VisitedAt.After(*s.Date)) {
			s.Date = b.VisitedAt
		}
	}

	return s
}

// Label renders the summary the way the list shows it, e.g. "Visited (1/3)".
func (s Summary) Label() string {
	if s.Branches <= 1 {
		return s.Rank.String()
	}

	return fmt.Sprintf("%s (%d/%d)", s.Rank, s.VisitedBranches, s.Branches)
}

// Row is an item together with its branches and derived summary.
type Row struct {
	Item     model.Item
	Branches []model.ItemLocation
	Summary  Summary
}

// Rows joins items with their branches. Branch order follows the order of locations.
func Rows(items []model.Item, locations []model.ItemLocation) []Row {
	byItem := map[int64][]model.ItemLocation{}
	for _, loc := range locations {
		byItem[loc.ItemID] = append(byItem[loc.ItemID], loc)
	}

	rows := make([]Row, 0, len(items))

	for _, item := range items {
		branches := byItem[item.ID]
		rows = append(rows, Row{
			Item:     item,
			Branches: branches,
			Summary:  Summarize(item, branches),
		})
	}

	return rows
}

// Order selects how rows are sorted for display.
type Order int

// Custom is the default order.
const (
	Custom Order = iota
	ByName
	ByRank
	ByDate
)

var orderNames = []string{"custom", "name", "visited", "date"}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}

	return orderNames[o]
}

// Next cycles through the orders.
func (o Order) Next() Order {
	return (o + 1) % Order(len(orderNames))
}

// ParseOrder converts a name as printed by Order.String back to an Order.
func ParseOrder(name string) (Order, error) {
	for i, n := range orderNames {
		if n == name {
			return Order(i), nil
		}
	}

	return Custom, fmt.Errorf("unknown sort order %q", name)
}

// Sort orders rows in place. All orders are stable.
//
//   - ByName: ascending by name, case-insensitive.
//   - ByRank: Completed, then Visited, then Not visited.
//   - ByDate: most recent visit first; rows without a visit last.
//   - Custom: rows without a visit first by ascending position, then rows with a visit,
//     most recent first. Any recorded visit demotes an item below the manual order.
func Sort(rows []Row, order Order) {
	var less func(a, b Row) bool

	switch order {
	case ByName:
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b Row) bool {
			return col.CompareString(a.Item.Name, b.Item.Name) < 0
		}
	case ByRank:
		less = func(a, b Row) bool {
			return a.Summary.Rank > b.Summary.Rank
		}
	case ByDate:
		less = func(a, b Row) bool {
			return dateAfter(a.Summary.Date, b.Summary.Date)
		}
	default:
		less = func(a, b Row) bool {
			ad, bd := a.Summary.Date, b.Summary.Date
			if ad == nil && bd == nil {
				return a.Item.Position < b.Item.Position
			}

			return bd != nil && (ad == nil || ad.After(*bd))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i], rows[j])
	})
}

// dateAfter orders nullable dates newest first, with nil after every date.
func dateAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}

	if b == nil {
		return true
	}

	return a.After(*b)
}
