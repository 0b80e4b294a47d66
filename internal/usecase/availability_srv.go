package usecase

import (
	"context"
	"fmt"

	"coffee-reservation/internal/data/repository"
	"coffee-reservation/internal/dto/response"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

// Admission is the result of an availability check for a proposed
// booking. It is a read-only decision; nothing is reserved by it.
type Admission struct {
	CanBook        bool
	AvailableSpots int
	Reason         string
}

type AvailabilityService interface {
	// GetSlotAvailability computes the full slot map for a date by
	// aggregating live reservations. Pure read, no side effects.
	GetSlotAvailability(ctx context.Context, date string) (*response.AvailabilityResponse, error)

	// CanAdmit decides whether partySize people fit into the slot on
	// the given date. Advisory only: the authoritative re-check runs
	// inside the insert transaction.
	CanAdmit(ctx context.Context, date, slot string, partySize int) (*Admission, error)

	// Slots returns the fixed slot labels.
	Slots() []string

	// Capacity returns the shared per-slot capacity pool.
	Capacity() int
}

type availabilityService struct {
	reservations repository.ReservationRepository
	slots        []string
	capacity     int
	log          *zap.Logger
}

func NewAvailabilityService(reservations repository.ReservationRepository, config utils.BookingConfig, log *zap.Logger) AvailabilityService {
	slots := make([]string, 0, config.CloseHour-config.OpenHour+1)
	for hour := config.OpenHour; hour <= config.CloseHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}

	return &availabilityService{
		reservations: reservations,
		slots:        slots,
		capacity:     config.SlotCapacity,
		log:          log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) Slots() []string {
	return s.slots
}

func (s *availabilityService) Capacity() int {
	return s.capacity
}

func (s *availabilityService) GetSlotAvailability(ctx context.Context, date string) (*response.AvailabilityResponse, error) {
	booked, err := s.reservations.SumPartySizeByDate(ctx, date)
	if err != nil {
		s.log.Error("Failed to compute slot availability",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("compute slot availability for %s: %w", date, err)
	}

	slots := make([]response.TimeSlotResponse, len(s.slots))
	for i, slot := range s.slots {
		bookedCount := booked[slot]
		available := s.capacity - bookedCount
		if available < 0 {
			available = 0
		}

		slots[i] = response.TimeSlotResponse{
			Time:           slot,
			BookedCount:    bookedCount,
			AvailableSpots: available,
			IsAvailable:    available > 0,
		}
	}

	return &response.AvailabilityResponse{Date: date, Slots: slots}, nil
}

func (s *availabilityService) CanAdmit(ctx context.Context, date, slot string, partySize int) (*Admission, error) {
	availability, err := s.GetSlotAvailability(ctx, date)
	if err != nil {
		return nil, err
	}

	var match *response.TimeSlotResponse
	for i := range availability.Slots {
		if availability.Slots[i].Time == slot {
			match = &availability.Slots[i]
			break
		}
	}

	if match == nil {
		return &Admission{CanBook: false, AvailableSpots: 0, Reason: "Invalid time slot"}, nil
	}

	if !match.IsAvailable {
		return &Admission{
			CanBook:        false,
			AvailableSpots: match.AvailableSpots,
			Reason:         "This time slot is fully booked",
		}, nil
	}

	if partySize > match.AvailableSpots {
		return &Admission{
			CanBook:        false,
			AvailableSpots: match.AvailableSpots,
			Reason:         fmt.Sprintf("Only %d spots available for this time slot", match.AvailableSpots),
		}, nil
	}

	return &Admission{CanBook: true, AvailableSpots: match.AvailableSpots}, nil
}
