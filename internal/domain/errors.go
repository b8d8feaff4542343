package domain

import "errors"

// Sentinel errors for the booking lifecycle. The API layer maps these
// to HTTP status codes; messages are the ones clients see.
var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrBookingNotFound     = errors.New("PNR not found")
	ErrFlightExists        = errors.New("flight already exists")
	ErrNotEnoughSeats      = errors.New("Not enough seats")
	ErrCancelWindowExpired = errors.New("Cannot cancel after 24 hours")
	ErrCancelInProgress    = errors.New("cancellation already in progress")
	ErrPNRTaken            = errors.New("pnr already taken")
	ErrInvalidState        = errors.New("booking createdAt missing")
)

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
