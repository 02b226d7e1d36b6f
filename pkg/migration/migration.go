// Package migration promotes items from the single-location schema to location branches.
package migration

import (
	"strings"

	"github.com/matt-steen/date-ideas/pkg/model"
)

// MainLabel is the label given to the branch created from a legacy location.
const MainLabel = "Main"

// Candidates returns the items that still need a branch: they have a legacy location
// and no branch at all. Because the set is derived from the current branches rather
// than a flag, running a migration a second time finds nothing to do.
func Candidates(items []model.Item, locations []model.ItemLocation) []model.Item {
	hasBranch := map[int64]bool{}
	for _, loc := range locations {
		hasBranch[loc.ItemID] = true
	}

	candidates := []model.Item{}

	for _, item := range items {
		if strings.TrimSpace(item.Location) == "" || hasBranch[item.ID] {
			continue
		}

		candidates = append(candidates, item)
	}

	return candidates
}

// Branch builds the branch that replaces item's legacy location. The visit state is
// carried over so the branch reflects what the item already recorded.
func Branch(item model.Item) model.LocationDraft {
	return model.LocationDraft{
		ItemID:    item.ID,
		Label:     MainLabel,
		URL:       item.Location,
		Status:    item.Status,
		VisitedAt: item.VisitedAt,
	}
}
