package controller

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// schedule registers the periodic jobs. Both hop onto the event loop before touching
// the store.
func (c *Controller) schedule(refresh string) error {
	if refresh != "" {
		_, err := c.cron.AddFunc(refresh, func() {
			c.app.QueueUpdateDraw(c.periodicRefresh)
		})
		if err != nil {
			return fmt.Errorf("error scheduling refresh %q: %w", refresh, err)
		}
	}

	// expire notifications so the footer clears itself
	if _, err := c.cron.AddFunc("@every 1s", func() {
		c.app.QueueUpdateDraw(func() {
			c.footer.SetText(c.footerText(time.Now()))
		})
	}); err != nil {
		return fmt.Errorf("error scheduling notification expiry: %w", err)
	}

	return nil
}

func (c *Controller) periodicRefresh() {
	if !c.store.Configured() {
		return
	}

	if c.store.Busy() {
		log.Debug().Msg("skipping refresh while an operation is running")

		return
	}

	log.Debug().Msg("refreshing")

	_ = c.store.Refresh(c.ctx)

	c.redraw()
}
