package jobs

import (
	"context"
	"time"

	"charlymatloc-backend/internal/logger"
)

// PurgeStaleCarts deletes current carts that have stayed empty for longer
// than cart.stale_after_days
func (jr *JobRunner) PurgeStaleCarts() {
	jr.runWithRecovery("PurgeStaleCarts", func() {
		ctx := context.Background()

		days := jr.config.Cart.StaleAfterDays
		if days <= 0 {
			logger.Warn("Stale cart purge disabled", "stale_after_days", days)
			return
		}
		cutoff := jr.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

		removed, err := jr.services.Cart.PurgeStaleCarts(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale carts", "error", err, "cutoff", cutoff)
			return
		}

		logger.Info("Purged stale carts", "count", removed, "cutoff", cutoff)
	})
}
