package jobs

import (
	"context"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/logger"
)

// MarkOverdueRentals flips ACTIVE rentals past their due date to OVERDUE.
// This job is the only writer of the OVERDUE status; the services never set
// it themselves.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		rentals, err := jr.store.RentalRepository.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", len(rentals))
		for i := range rentals {
			logger.Debug("Marked rental as overdue",
				"rental_id", rentals[i].ID,
				"patron_id", rentals[i].PatronID,
				"equipment_id", rentals[i].EquipmentID,
				"due_date", rentals[i].DueDate)
		}
	})
}

// SendOverdueReminders emails every patron holding an OVERDUE rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		rentals, _, err := jr.store.RentalRepository.ListAll(ctx, domain.RentalStatusOverdue, 1, 1000)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for i := range rentals {
			rental := &rentals[i]
			patron, err := jr.store.UserRepository.GetByID(ctx, rental.PatronID)
			if err != nil {
				logger.Error("Failed to load patron for overdue reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			eq, err := jr.store.EquipmentRepository.GetByID(ctx, rental.EquipmentID)
			if err != nil {
				logger.Error("Failed to load equipment for overdue reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueNotice(ctx, patron.Email, eq.Brand+" "+eq.Model, rental.DueDate); err != nil {
				logger.Error("Failed to send overdue notice", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent overdue reminders", "count", sent)
	})
}
