package entity

import (
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// transitions defines the legal status moves. Completed and cancelled
// are terminal; re-activating a cancelled reservation is rejected so a
// capacity re-check is never needed on status changes.
var transitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCompleted, ReservationStatusCancelled},
	ReservationStatusCompleted: {},
	ReservationStatusCancelled: {},
}

func (s ReservationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving to target is legal.
// Writing the same status again is treated as a no-op and allowed.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	if s == target {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Counted reports whether the reservation occupies slot capacity.
// Only cancelled reservations are excluded from the capacity sum.
func (s ReservationStatus) Counted() bool {
	return s != ReservationStatusCancelled
}

type Reservation struct {
	ID          int64             `db:"id"`
	Name        string            `db:"name"`
	Phone       string            `db:"phone"`
	Email       *string           `db:"email"`
	Date        string            `db:"date"` // YYYY-MM-DD
	Time        string            `db:"time"` // slot label, e.g. "14:00"
	PartySize   int               `db:"party_size"`
	CoffeeID    string            `db:"coffee_id"`
	CoffeeName  string            `db:"coffee_name"`
	CoffeePrice int64             `db:"coffee_price"`
	TotalAmount int64             `db:"total_amount"`
	Notes       *string           `db:"notes"`
	Status      ReservationStatus `db:"status"`
	PaymentTime *time.Time        `db:"payment_time"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

// ReservationStats is the admin dashboard aggregate block.
type ReservationStats struct {
	Total   int64
	Today   int64
	Revenue int64
	Pending int64
}
