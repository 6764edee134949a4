package domain

import "time"

type RentalStatus string

const (
	RentalStatusReserved RentalStatus = "RESERVED"
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
	RentalStatusCanceled RentalStatus = "CANCELED"
)

// IsOccupying reports whether a rental in this status holds the car's and
// user's exclusivity slot.
func (s RentalStatus) IsOccupying() bool {
	return s == RentalStatusReserved || s == RentalStatusActive
}

// IsTerminal reports whether the status can never change again.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusReturned || s == RentalStatusCanceled
}

type Rental struct {
	ID        string    `json:"id"`
	CarID     string    `json:"car_id"`
	UserID    string    `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Price snapshot taken at creation. Never recalculated from the car's
	// live daily price.
	TotalPriceCents int64        `json:"total_price_cents"`
	Status          RentalStatus `json:"status"`
	ReservationCode string       `json:"reservation_code,omitempty"`
	CreatedOn       string       `json:"created_on"`
	UpdatedOn       string       `json:"updated_on"`
}
