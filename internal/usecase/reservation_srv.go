package usecase

import (
	"context"
	"fmt"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/dto/response"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

// ReservationNotifier delivers booking confirmations. Implementations
// must be safe to call from a goroutine and must not block the caller.
type ReservationNotifier interface {
	NotifyReservationCreated(reservation *entity.Reservation)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error)
	SearchByContact(ctx context.Context, phone, email string) ([]response.ReservationResponse, error)

	// Payment
	ConfirmPayment(ctx context.Context, id int64) (*response.ReservationResponse, error)

	// Admin endpoints
	ListAdminReservations(ctx context.Context, limit int) (*response.AdminReservationsResponse, error)
	SetStatus(ctx context.Context, id int64, status string) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, id int64) error
}

type reservationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	notifier     ReservationNotifier
	log          *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	availability AvailabilityService,
	notifier ReservationNotifier,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:         repo,
		availability: availability,
		notifier:     notifier,
		log:          log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Resolve coffee selection against the active catalog
	coffee, err := s.repo.Coffee.FindActiveByID(ctx, req.CoffeeID)
	if err != nil {
		return nil, fmt.Errorf("resolve coffee selection: %w", err)
	}
	if coffee == nil {
		return nil, domain.ErrCoffeeNotFound
	}

	// Advisory admission check. Fast rejection with the remaining
	// spot count; the insert below re-checks atomically.
	admission, err := s.availability.CanAdmit(ctx, req.Date, req.Time, req.PartySize)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !admission.CanBook {
		return nil, &domain.AdmissionError{
			Reason:         admission.Reason,
			AvailableSpots: admission.AvailableSpots,
		}
	}

	reservation := &entity.Reservation{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       optional(req.Email),
		Date:        req.Date,
		Time:        req.Time,
		PartySize:   req.PartySize,
		CoffeeID:    coffee.ID,
		CoffeeName:  coffee.Name,
		CoffeePrice: coffee.Price,
		TotalAmount: coffee.Price * int64(req.PartySize),
		Notes:       optional(req.Notes),
		Status:      entity.ReservationStatusPending,
	}

	if err := s.repo.Reservation.CreateWithinCapacity(ctx, reservation, s.availability.Capacity()); err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("date", reservation.Date),
		zap.String("time", reservation.Time),
		zap.Int("party_size", reservation.PartySize),
		zap.Int64("total_amount", reservation.TotalAmount),
	)

	// Best-effort notification; never fails the booking
	go s.notifier.NotifyReservationCreated(reservation)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.ErrReservationNotFound
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) SearchByContact(ctx context.Context, phone, email string) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindByContact(ctx, phone, email)
	if err != nil {
		return nil, err
	}

	return response.ReservationsToResponse(reservations), nil
}

// ConfirmPayment flips a pending reservation to confirmed with a
// payment timestamp. Re-confirming an already confirmed reservation is
// a no-op success; terminal states are rejected.
func (s *reservationService) ConfirmPayment(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if reservation == nil {
		return nil, domain.ErrReservationNotFound
	}

	switch reservation.Status {
	case entity.ReservationStatusConfirmed:
		resp := response.ReservationToResponse(reservation)
		return &resp, nil
	case entity.ReservationStatusCompleted, entity.ReservationStatusCancelled:
		return nil, &domain.TransitionError{
			From: string(reservation.Status),
			To:   string(entity.ReservationStatusConfirmed),
		}
	}

	updated, err := s.repo.Reservation.ConfirmPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Raced with a concurrent status change; re-read and report.
		return s.ConfirmPayment(ctx, id)
	}

	s.log.Info("Payment confirmed",
		zap.Int64("reservation_id", updated.ID),
		zap.Int64("total_amount", updated.TotalAmount),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) ListAdminReservations(ctx context.Context, limit int) (*response.AdminReservationsResponse, error) {
	reservations, err := s.repo.Reservation.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Reservation.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &response.AdminReservationsResponse{
		Reservations: response.ReservationsToResponse(reservations),
		Stats: response.StatsResponse{
			Total:   stats.Total,
			Today:   stats.Today,
			Revenue: stats.Revenue,
			Pending: stats.Pending,
		},
	}, nil
}

// SetStatus applies a staff-driven status change, validated against the
// transition table. Terminal states stay terminal: un-cancelling is
// rejected, so capacity never needs re-checking here.
func (s *reservationService) SetStatus(ctx context.Context, id int64, status string) (*response.ReservationResponse, error) {
	target := entity.ReservationStatus(status)
	if !target.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	if reservation == nil {
		return nil, domain.ErrReservationNotFound
	}

	if reservation.Status == target {
		resp := response.ReservationToResponse(reservation)
		return &resp, nil
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, &domain.TransitionError{From: string(reservation.Status), To: status}
	}

	updated, err := s.repo.Reservation.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrReservationNotFound
	}

	s.log.Info("Reservation status updated",
		zap.Int64("reservation_id", id),
		zap.String("from", string(reservation.Status)),
		zap.String("to", status),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int64) error {
	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Reservation deleted", zap.Int64("reservation_id", id))
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
