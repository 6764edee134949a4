package jobs

import (
	"context"
	"time"

	"car-rental-backend/internal/logger"
)

// ActivateDueRentals flips RESERVED rentals whose start date has arrived to
// ACTIVE. The car stays RENTED; the reservation simply starts running.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ids, err := jr.store.RentalRepository.ActivateDue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to activate due rentals", "error", err)
			return
		}

		logger.Info("Activated due rentals", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Activated rental", "rental_id", id)
		}
	})
}

// SendReturnReminders emails renters whose active rentals end within the
// next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		cutoff := time.Now().Add(24 * time.Hour)
		rentals, err := jr.store.RentalRepository.ListEndingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list rentals ending soon", "error", err)
			return
		}

		sent := 0
		for _, rt := range rentals {
			user, err := jr.store.UserRepository.GetByID(ctx, rt.UserID)
			if err != nil {
				logger.Error("Failed to load renter for reminder", "rental_id", rt.ID, "error", err)
				continue
			}

			carLabel := rt.CarID
			if car, err := jr.store.CarRepository.GetByID(ctx, rt.CarID); err == nil {
				carLabel = car.Brand + " " + car.Model
			}

			if err := jr.services.Email.SendReturnReminder(ctx, user.Email, user.FullName, carLabel, rt.EndDate); err != nil {
				logger.Error("Failed to send return reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "sent", sent, "candidates", len(rentals))
	})
}
