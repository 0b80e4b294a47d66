package response

// TimeSlotResponse is a derived view, recomputed from the reservation
// ledger on every query; capacity is never cached or decremented.
type TimeSlotResponse struct {
	Time           string `json:"time"`
	BookedCount    int    `json:"booked_count"`
	AvailableSpots int    `json:"available_spots"`
	IsAvailable    bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	Date  string             `json:"date"`
	Slots []TimeSlotResponse `json:"slots"`
}
