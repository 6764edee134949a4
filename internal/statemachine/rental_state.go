package statemachine

import (
	"time"

	"car-rental-backend/internal/domain"
)

// Event is a lifecycle action applied to a rental.
type Event string

const (
	// EventActivate is system-driven: a reservation whose start date has
	// arrived becomes active. No requester guard.
	EventActivate Event = "activate"
	// EventCancel voids a rental before it runs its course.
	EventCancel Event = "cancel"
	// EventReturn closes out an active rental.
	EventReturn Event = "return"
)

// Decision carries everything a guard needs. The machine itself reads no
// external state.
type Decision struct {
	RequesterID string
	RenterID    string
	IsAdmin     bool
	StartDate   time.Time
	Now         time.Time
}

type transitionKey struct {
	From  domain.RentalStatus
	Event Event
}

type transition struct {
	To    domain.RentalStatus
	Guard func(d Decision) error
}

func ownerOrAdmin(d Decision) error {
	if d.RequesterID != d.RenterID && !d.IsAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}

func ownerOrAdminBeforeStart(d Decision) error {
	if err := ownerOrAdmin(d); err != nil {
		return err
	}
	if !d.Now.Before(d.StartDate) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// transitions is the authoritative lifecycle definition. RESERVED and ACTIVE
// occupy the exclusivity slot; RETURNED and CANCELED are terminal.
var transitions = map[transitionKey]transition{
	{domain.RentalStatusReserved, EventActivate}: {To: domain.RentalStatusActive},
	{domain.RentalStatusReserved, EventCancel}:   {To: domain.RentalStatusCanceled, Guard: ownerOrAdmin},
	{domain.RentalStatusActive, EventCancel}:     {To: domain.RentalStatusCanceled, Guard: ownerOrAdminBeforeStart},
	{domain.RentalStatusActive, EventReturn}:     {To: domain.RentalStatusReturned, Guard: ownerOrAdmin},
}

// Next decides the status a rental moves to when event is applied. It returns
// domain.ErrInvalidTransition for any (status, event) pair outside the table
// and domain.ErrUnauthorized when the requester guard fails. Pure function:
// persisting the result and flipping the car's status stay with the caller.
func Next(current domain.RentalStatus, event Event, d Decision) (domain.RentalStatus, error) {
	t, ok := transitions[transitionKey{From: current, Event: event}]
	if !ok {
		return "", domain.ErrInvalidTransition
	}
	if t.Guard != nil {
		if err := t.Guard(d); err != nil {
			return "", err
		}
	}
	return t.To, nil
}

// CanTransition reports whether event is ever legal from current, ignoring
// guards. Useful for callers that want a cheap pre-check.
func CanTransition(current domain.RentalStatus, event Event) bool {
	_, ok := transitions[transitionKey{From: current, Event: event}]
	return ok
}
