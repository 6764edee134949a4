package repository

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	// ListAvailable returns AVAILABLE cars, optionally bounded by daily
	// price. A zero bound means unbounded on that side.
	ListAvailable(ctx context.Context, minPriceCents, maxPriceCents int64) ([]domain.Car, error)
	Exists(ctx context.Context, id string) (bool, error)
	SetImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

type RentalRepository interface {
	// CreateWithCarHold atomically inserts the rental and flips its car from
	// AVAILABLE to RENTED in one transaction. It returns domain.ErrConflict
	// when the car or user already holds an active rental, including when
	// the locked car row turns out to be RENTED, and domain.ErrDuplicateCode
	// when the reservation code collides.
	CreateWithCarHold(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	GetActiveByCar(ctx context.Context, carID string) (*domain.Rental, error)
	GetActiveByUser(ctx context.Context, userID string) (*domain.Rental, error)
	// TransitionStatus is a compare-and-swap: the rental moves from exactly
	// `from` to `to`, and the car's status is set to carStatus in the same
	// transaction. It returns domain.ErrStaleStatus when the rental is no
	// longer in `from`.
	TransitionStatus(ctx context.Context, rentalID string, from, to domain.RentalStatus, carStatus domain.CarStatus) error
	// ActivateDue flips every RESERVED rental whose start date has arrived
	// to ACTIVE and returns the affected rental IDs.
	ActivateDue(ctx context.Context, now time.Time) ([]string, error)
	ListByUser(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListEndingBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
