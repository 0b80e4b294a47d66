package request

type CreateReservationRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required"`
	PartySize int    `json:"party_size" validate:"required,min=1"`
	CoffeeID  string `json:"coffee_id" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
