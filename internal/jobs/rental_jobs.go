package jobs

import (
	"context"
	"time"

	"unirent-backend/internal/logger"
)

// SendOverdueRentalReminders emails the shop admin a report of active rentals
// whose planned end date has passed. Overdue is a derived condition, not a
// rental status, so nothing is mutated here.
func (jr *JobRunner) SendOverdueRentalReminders() {
	jr.runWithRecovery("SendOverdueRentalReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rentals")
			return
		}

		for _, rt := range overdue {
			logger.Debug("Rental overdue",
				"rental_id", rt.ID,
				"vehicle_id", rt.VehicleID,
				"client_id", rt.ClientID,
				"planned_end_date", rt.PlannedEndDate)
		}

		adminEmail := jr.config.Shop.AdminEmail
		if adminEmail == "" {
			logger.Warn("No admin email configured, skipping overdue report", "count", len(overdue))
			return
		}

		if err := jr.services.Email.SendOverdueRentalReport(ctx, adminEmail, overdue); err != nil {
			logger.Error("Failed to send overdue rental report", "error", err)
			return
		}

		logger.Info("Sent overdue rental report", "count", len(overdue), "to", adminEmail)
	})
}
