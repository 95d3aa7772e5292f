package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type RentalDuration string

const (
	RentalDurationDaily    RentalDuration = "DAILY"
	RentalDurationWeekly   RentalDuration = "WEEKLY"
	RentalDurationSeasonal RentalDuration = "SEASONAL"
)

// IsValid reports whether d is a known rental duration.
func (d RentalDuration) IsValid() bool {
	switch d {
	case RentalDurationDaily, RentalDurationWeekly, RentalDurationSeasonal:
		return true
	}
	return false
}

type Rental struct {
	ID          int32      `json:"id"`
	EquipmentID int32      `json:"equipment_id"`
	Equipment   *Equipment `json:"equipment,omitempty"` // Populated when fetching rental details
	PatronID    int32      `json:"patron_id"`
	Duration    RentalDuration `json:"rental_duration"`
	Status      RentalStatus   `json:"rental_status"`
	PriceCents  int64          `json:"price_cents"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	CheckedOutCondition Condition `json:"checked_out_condition"`
	ReturnCondition     Condition `json:"return_condition,omitempty"`
	CheckoutNotes       string    `json:"checkout_notes"`
	ReturnNotes         string    `json:"return_notes"`
}

// RentalCounts summarizes rentals per status for the staff dashboard.
type RentalCounts struct {
	Pending   int32 `json:"pending"`
	Active    int32 `json:"active"`
	Overdue   int32 `json:"overdue"`
	Completed int32 `json:"completed"`
	Cancelled int32 `json:"cancelled"`
}
