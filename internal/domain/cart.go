package domain

import "time"

// Cart is a per-user bag of prospective rentals. One cart per user,
// created lazily on first add.
type Cart struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type CartItem struct {
	ID          int32          `json:"id"`
	CartID      int32          `json:"cart_id"`
	EquipmentID int32          `json:"equipment_id"`
	Equipment   *Equipment     `json:"equipment,omitempty"` // Populated when listing cart contents
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Duration    RentalDuration `json:"rental_duration"`
}

// CartSummary carries the derived display totals for a cart. The
// insurance fee and tax are computed on the fly, never persisted.
type CartSummary struct {
	SubtotalCents         int64 `json:"subtotal_cents"`
	InsuranceFeeCents     int64 `json:"insurance_fee_cents"`
	SubtotalWithInsurance int64 `json:"subtotal_with_insurance_cents"`
	TaxCents              int64 `json:"tax_cents"`
	TotalCents            int64 `json:"total_cents"`
}
