package jobs

import (
	"context"

	"unirent-backend/internal/logger"
)

// SendPendingBookingDigest emails the shop admin the booking requests still
// awaiting a confirm/reject decision.
func (jr *JobRunner) SendPendingBookingDigest() {
	jr.runWithRecovery("SendPendingBookingDigest", func() {
		ctx := context.Background()

		pending, err := jr.store.ListPending(ctx)
		if err != nil {
			logger.Error("Failed to list pending booking requests", "error", err)
			return
		}
		if len(pending) == 0 {
			logger.Info("No pending booking requests")
			return
		}

		adminEmail := jr.config.Shop.AdminEmail
		if adminEmail == "" {
			logger.Warn("No admin email configured, skipping pending digest", "count", len(pending))
			return
		}

		if err := jr.services.Email.SendPendingBookingDigest(ctx, adminEmail, pending); err != nil {
			logger.Error("Failed to send pending booking digest", "error", err)
			return
		}

		logger.Info("Sent pending booking digest", "count", len(pending), "to", adminEmail)
	})
}
