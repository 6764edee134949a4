package service

import (
	"context"
	"fmt"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

// NotificationDispatcher delivers RentalCreated facts outside the booking
// commit boundary. Facts are queued on a buffered channel and drained by a
// single worker; a full queue or a failed delivery is logged and dropped,
// never surfaced to the booking caller. Delivery is at-least-once from the
// consumer's point of view, so handlers tolerate duplicates.
type NotificationDispatcher struct {
	userRepo repository.UserRepository
	carRepo  repository.CarRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	facts    chan domain.RentalCreated
	done     chan struct{}
}

func NewNotificationDispatcher(
	userRepo repository.UserRepository,
	carRepo repository.CarRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	queueSize int,
) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &NotificationDispatcher{
		userRepo: userRepo,
		carRepo:  carRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		facts:    make(chan domain.RentalCreated, queueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the delivery worker. It returns immediately; the worker
// stops when ctx is canceled.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)
		for {
			select {
			case <-ctx.Done():
				return
			case fact := <-d.facts:
				d.deliver(fact)
			}
		}
	}()
}

// Wait blocks until the worker has stopped.
func (d *NotificationDispatcher) Wait() {
	<-d.done
}

// Dispatch enqueues a fact without blocking. Booking must never wait on
// notification delivery, so a full queue drops the fact with a log line.
func (d *NotificationDispatcher) Dispatch(fact domain.RentalCreated) {
	select {
	case d.facts <- fact:
	default:
		logger.Error("notification queue full, dropping fact",
			"rental_id", fact.RentalID)
	}
}

func (d *NotificationDispatcher) deliver(fact domain.RentalCreated) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	user, err := d.userRepo.GetByID(ctx, fact.UserID)
	if err != nil {
		logger.Error("notification delivery: load user failed",
			"rental_id", fact.RentalID, "user_id", fact.UserID, "error", err)
		return
	}

	carLabel := fact.CarID
	if car, err := d.carRepo.GetByID(ctx, fact.CarID); err == nil {
		carLabel = car.Brand + " " + car.Model
	}

	if err := d.emailSvc.SendReservationConfirmation(ctx, user.Email, user.FullName,
		carLabel, fact.ReservationCode, fact.StartDate, fact.EndDate, fact.TotalPriceCents); err != nil {
		logger.Error("notification delivery: email failed",
			"rental_id", fact.RentalID, "email", user.Email, "error", err)
	}

	note := &domain.Notification{
		UserID:  fact.UserID,
		Title:   "Reservation Confirmed",
		Message: fmt.Sprintf("Your reservation %s for %s is confirmed", fact.ReservationCode, carLabel),
		Attributes: map[string]string{
			"type":      "RENTAL_CREATED",
			"rental_id": fact.RentalID,
		},
	}
	if err := d.noteRepo.Create(ctx, note); err != nil {
		logger.Error("notification delivery: create record failed",
			"rental_id", fact.RentalID, "error", err)
	}
}
