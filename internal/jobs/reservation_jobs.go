package jobs

import (
	"context"

	"charlymatloc-backend/internal/logger"
)

// CompleteFinishedReservations moves confirmed reservations whose last
// rental day is before today to completed
func (jr *JobRunner) CompleteFinishedReservations() {
	jr.runWithRecovery("CompleteFinishedReservations", func() {
		ctx := context.Background()

		count, err := jr.services.Reservation.CompleteFinishedReservations(ctx, jr.now().UTC())
		if err != nil {
			logger.Error("Failed to complete finished reservations", "error", err)
			return
		}

		logger.Info("Completed finished reservations", "count", count)
	})
}
