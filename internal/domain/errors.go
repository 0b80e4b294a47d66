package domain

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrCoffeeNotFound      = errors.New("invalid coffee selection")
	ErrAdminNotFound       = errors.New("admin user not found")
)

var (
	// ErrContactRequired is returned by contact search when neither
	// phone nor email was supplied.
	ErrContactRequired    = errors.New("either phone or email is required")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdmissionError rejects a booking attempt and carries the remaining
// capacity so the caller can offer a smaller party size.
type AdmissionError struct {
	Reason         string
	AvailableSpots int
}

func (e *AdmissionError) Error() string {
	return e.Reason
}

// TransitionError rejects an illegal status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}
