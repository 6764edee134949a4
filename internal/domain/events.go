package domain

import "time"

// RentalCreated is the fact emitted after a booking commits. It is delivered
// to the notification dispatcher at-least-once; consumers must tolerate
// duplicates.
type RentalCreated struct {
	RentalID        string    `json:"rental_id"`
	ReservationCode string    `json:"reservation_code"`
	CarID           string    `json:"car_id"`
	UserID          string    `json:"user_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
}
