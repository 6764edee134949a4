package domain

type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusRented    CarStatus = "RENTED"
)

type Car struct {
	ID              string    `json:"id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	DailyPriceCents int64     `json:"daily_price_cents"`
	Status          CarStatus `json:"status"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedOn       string    `json:"created_on"`
	UpdatedOn       string    `json:"updated_on"`
}

// IsRentable reports whether the car can accept a new rental.
func (c *Car) IsRentable() bool {
	return c.Status == CarStatusAvailable
}
