package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-steen/date-ideas/pkg/migration"
	"github.com/matt-steen/date-ideas/pkg/model"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/rs/zerolog/log"
)

// MigrateLegacyLocations creates a "Main" branch for every item that still only has a
// legacy location. Branches are added one at a time so the candidate set cannot shift
// underneath the loop. It returns how many items were migrated; running it again
// migrates nothing.
func (s *Store) MigrateLegacyLocations(ctx context.Context) (int, error) {
	if s.remote == nil {
		s.err = ErrNotConfigured

		return 0, ErrNotConfigured
	}

	defer s.begin()()

	candidates := migration.Candidates(s.items, s.locations)

	var (
		count int
		errs  []error
	)

	for _, item := range candidates {
		if _, err := s.AddLocation(ctx, migration.Branch(item)); err != nil {
			log.Warn().Err(err).Int64("item", item.ID).Msg("error migrating legacy location")

			errs = append(errs, fmt.Errorf("error migrating item %d: %w", item.ID, err))

			continue
		}

		count++
	}

	log.Info().Int("candidates", len(candidates)).Int("migrated", count).Msg("legacy location migration finished")

	switch {
	case count > 0:
		s.success("Migration Complete",
			fmt.Sprintf("Successfully migrated %d items to the new location structure.", count))
	case len(errs) == 0:
		s.sink.Notify(notify.Notification{
			Title:       "Migration Skipped",
			Description: "No items needed migration.",
			Severity:    notify.SeverityInfo,
		})
	default:
		s.sink.Notify(notify.Notification{
			Title:       "Migration Failed",
			Description: fmt.Sprintf("Failed to migrate %d items. Please try again.", len(errs)),
			Severity:    notify.SeverityError,
		})
	}

	return count, s.batchError(errs)
}

// SyncSingleBranches repairs items with exactly one branch whose item says visited while
// the branch does not, by copying the item's visit into the branch. It returns how many
// branches were updated.
func (s *Store) SyncSingleBranches(ctx context.Context) (int, error) {
	if s.remote == nil {
		s.err = ErrNotConfigured

		return 0, ErrNotConfigured
	}

	defer s.begin()()

	var (
		count int
		errs  []error
	)

	for _, item := range s.Items() {
		branches := s.LocationsFor(item.ID)
		if len(branches) != 1 || !item.Status || branches[0].Status {
			continue
		}

		err := s.UpdateLocation(ctx, branches[0].ID, model.LocationPatch{
			Status:    model.Set(true),
			VisitedAt: model.Set(item.VisitedAt),
		})
		if err != nil {
			errs = append(errs, err)

			continue
		}

		count++
	}

	if count > 0 {
		s.success("Data Synced", fmt.Sprintf("Synced visit status for %d items.", count))
	}

	return count, s.batchError(errs)
}

// batchError joins the failures of a batch and records them as the last error.
func (s *Store) batchError(errs []error) error {
	err := errors.Join(errs...)
	if err != nil {
		s.err = err
	}

	return err
}
