package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
	"car-rental-backend/internal/statemachine"
	"car-rental-backend/internal/utils"
)

// maxCodeAttempts bounds commit retries when a generated reservation code
// collides with an existing one.
const maxCodeAttempts = 3

type rentalService struct {
	rentalRepo repository.RentalRepository
	carRepo    repository.CarRepository
	userRepo   repository.UserRepository
	dispatcher Dispatcher
	codePrefix string
	now        func() time.Time
}

// Dispatcher receives the created-rental fact after a booking commits.
// Delivery is outside the commit boundary; failures never unwind a booking.
type Dispatcher interface {
	Dispatch(fact domain.RentalCreated)
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	dispatcher Dispatcher,
	codePrefix string,
) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		codePrefix: codePrefix,
		now:        time.Now,
	}
}

// CreateRental books a car for a user between startDate and endDate.
//
// Exclusivity is NOT guarded by the precondition reads below; those exist
// only to surface precise error kinds. The real guard is the store's
// CreateWithCarHold: the rental insert, the active-slot uniqueness checks
// and the car flip to RENTED commit as one transaction, so two racing
// creates for the same car or user resolve to one winner and one
// domain.ErrConflict.
func (s *rentalService) CreateRental(ctx context.Context, userID, carID string, startDate, endDate time.Time) (*domain.Rental, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.CanRent() {
		return nil, fmt.Errorf("%w: user cannot rent", domain.ErrNotEligible)
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("load car: %w", err)
	}
	if !car.IsRentable() {
		return nil, fmt.Errorf("%w: car is %s", domain.ErrNotEligible, car.Status)
	}

	totalPrice, err := utils.ComputeRentalPrice(startDate, endDate, car.DailyPriceCents)
	if err != nil {
		return nil, err
	}

	var rental *domain.Rental
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateReservationCode(utils.CodeOptions{
			Prefix:       s.codePrefix,
			WithChecksum: true,
		})
		if err != nil {
			return nil, err
		}

		candidate := &domain.Rental{
			CarID:           carID,
			UserID:          userID,
			StartDate:       startDate,
			EndDate:         endDate,
			TotalPriceCents: totalPrice,
			Status:          domain.RentalStatusReserved,
			ReservationCode: code,
		}

		err = s.rentalRepo.CreateWithCarHold(ctx, candidate)
		if errors.Is(err, domain.ErrDuplicateCode) {
			logger.Warn("reservation code collision, retrying",
				"attempt", attempt+1, "car_id", carID)
			continue
		}
		if err != nil {
			return nil, err
		}
		rental = candidate
		break
	}
	if rental == nil {
		return nil, domain.ErrCodeGenerationExhausted
	}

	logger.Info("rental created",
		"rental_id", rental.ID, "car_id", carID, "user_id", userID,
		"total_price_cents", totalPrice)

	s.dispatcher.Dispatch(domain.RentalCreated{
		RentalID:        rental.ID,
		ReservationCode: rental.ReservationCode,
		CarID:           carID,
		UserID:          userID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalPriceCents: totalPrice,
	})

	return rental, nil
}

// ReturnRental closes an active rental and frees the car. The status write
// is a compare-and-swap on the status loaded here; if another operation
// already transitioned the rental the store reports it and the caller gets
// domain.ErrInvalidState instead of a silent second success.
func (s *rentalService) ReturnRental(ctx context.Context, rentalID, requesterID string) error {
	return s.applyEvent(ctx, rentalID, requesterID, statemachine.EventReturn, domain.CarStatusAvailable)
}

// CancelRental voids a reservation, or an active rental whose start date is
// still in the future, and frees the car.
func (s *rentalService) CancelRental(ctx context.Context, rentalID, requesterID string) error {
	return s.applyEvent(ctx, rentalID, requesterID, statemachine.EventCancel, domain.CarStatusAvailable)
}

func (s *rentalService) applyEvent(ctx context.Context, rentalID, requesterID string, event statemachine.Event, carStatus domain.CarStatus) error {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("load rental: %w", err)
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("load requester: %w", err)
	}

	next, err := statemachine.Next(rental.Status, event, statemachine.Decision{
		RequesterID: requesterID,
		RenterID:    rental.UserID,
		IsAdmin:     requester.IsAdmin(),
		StartDate:   rental.StartDate,
		Now:         s.now(),
	})
	if errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("%w: cannot %s a %s rental", domain.ErrInvalidState, event, rental.Status)
	}
	if err != nil {
		return err
	}

	err = s.rentalRepo.TransitionStatus(ctx, rentalID, rental.Status, next, carStatus)
	if errors.Is(err, domain.ErrStaleStatus) {
		// Lost a race: the rental left rental.Status between our read and
		// the conditional write.
		return fmt.Errorf("%w: rental already transitioned", domain.ErrInvalidState)
	}
	if err != nil {
		return err
	}

	logger.Info("rental transitioned",
		"rental_id", rentalID, "event", string(event),
		"from", string(rental.Status), "to", string(next))
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID, requesterID string) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if rental.UserID != requesterID && !requester.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID string, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByUser(ctx, userID, status, page, pageSize)
}
