package domain

import "errors"

// Error kinds reported by the booking engine. Callers match them with
// errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrNotFound means the user, car or rental does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotEligible means the user cannot rent or the car is not available.
	ErrNotEligible = errors.New("not eligible")

	// ErrConflict means the car or user already holds an active rental.
	// Unlike ErrNotEligible this is a concurrency outcome: it is raised by
	// the store's uniqueness constraints, not by a precondition read.
	ErrConflict = errors.New("active rental conflict")

	// ErrUnauthorized means the requester is neither the renter nor an admin.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState means the operation is not legal from the rental's
	// current status.
	ErrInvalidState = errors.New("invalid rental state")

	// ErrInvalidTransition is the state machine's rejection of a
	// (status, event) pair.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidRange means the requested end date is not after the start date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrCodeGenerationExhausted means the reservation-code retry budget was
	// spent without producing a unique code.
	ErrCodeGenerationExhausted = errors.New("reservation code generation exhausted")

	// ErrTimeout means the store did not respond in time. No partial state
	// was committed, so the whole operation is safe to retry.
	ErrTimeout = errors.New("store timeout")
)

// Store-internal signals, translated by the engine before they reach callers.
var (
	// ErrDuplicateCode means the generated reservation code collided with an
	// existing one; the engine retries with a fresh code.
	ErrDuplicateCode = errors.New("duplicate reservation code")

	// ErrStaleStatus means a conditional status update matched zero rows
	// because another operation already transitioned the rental.
	ErrStaleStatus = errors.New("stale rental status")
)
