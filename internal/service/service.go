package service

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
)

// RentalService is the booking allocation engine. It owns the exclusivity
// and lifecycle invariants over cars, users and rentals.
type RentalService interface {
	CreateRental(ctx context.Context, userID, carID string, startDate, endDate time.Time) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID, requesterID string) error
	CancelRental(ctx context.Context, rentalID, requesterID string) error
	GetRental(ctx context.Context, rentalID, requesterID string) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

type CarService interface {
	CreateCar(ctx context.Context, brand, model string, dailyPriceCents int64, imageURL string) (*domain.Car, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	ListAvailableCars(ctx context.Context, minPriceCents, maxPriceCents int64) ([]domain.Car, error)
	DeleteCar(ctx context.Context, id string) error
	SetCarImage(ctx context.Context, id, imageURL string) error
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, email, fullName, driverLicenseNo, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, email, fullName, carLabel, reservationCode string, startDate, endDate time.Time, totalPriceCents int64) error
	SendReturnReminder(ctx context.Context, email, fullName, carLabel string, endDate time.Time) error
}
