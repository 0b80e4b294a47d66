package response

import (
	"time"

	"coffee-reservation/internal/data/entity"
)

type ReservationResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       *string    `json:"email,omitempty"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	PartySize   int        `json:"party_size"`
	CoffeeID    string     `json:"coffee_id"`
	CoffeeName  string     `json:"coffee_name"`
	CoffeePrice int64      `json:"coffee_price"`
	TotalAmount int64      `json:"total_amount"`
	Notes       *string    `json:"notes,omitempty"`
	Status      string     `json:"status"`
	PaymentTime *time.Time `json:"payment_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		Date:        r.Date,
		Time:        r.Time,
		PartySize:   r.PartySize,
		CoffeeID:    r.CoffeeID,
		CoffeeName:  r.CoffeeName,
		CoffeePrice: r.CoffeePrice,
		TotalAmount: r.TotalAmount,
		Notes:       r.Notes,
		Status:      string(r.Status),
		PaymentTime: r.PaymentTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = ReservationToResponse(r)
	}
	return out
}

type StatsResponse struct {
	Total   int64 `json:"total"`
	Today   int64 `json:"today"`
	Revenue int64 `json:"revenue"`
	Pending int64 `json:"pending"`
}

// AdminReservationsResponse is the admin dashboard payload: the recent
// reservations plus the aggregate stats block.
type AdminReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Stats        StatsResponse         `json:"stats"`
}
