package wire

import (
	"coffee-reservation/internal/adaptor"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/pkg/middleware"
	"coffee-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/time-slots - Slot availability map for a date
	r.Get("/api/time-slots", handler.Availability.GetTimeSlots)

	// POST /api/reservations - Booking intake, rate limited
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit, rdb, log))
		r.Post("/api/reservations", handler.Reservation.CreateReservation)
	})

	// GET /api/reservations/search - Contact lookup (phone and/or email)
	r.Get("/api/reservations/search", handler.Reservation.SearchReservations)

	// GET /api/reservations/{id} - Reservation lookup
	r.Get("/api/reservations/{id}", handler.Reservation.GetReservation)

	// POST /api/reservations/{id}/confirm-payment - Customer payment assertion
	r.Post("/api/reservations/{id}/confirm-payment", handler.Reservation.ConfirmPayment)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.AdminSession(repo.Session, config.Session.CookieName, log))

		// GET /api/admin/reservations - Recent reservations + stats block
		r.Get("/", handler.Reservation.ListReservations)

		// PUT /api/admin/reservations/{id} - Staff status change
		r.Put("/{id}", handler.Reservation.UpdateStatus)

		// DELETE /api/admin/reservations/{id} - Hard delete
		r.Delete("/{id}", handler.Reservation.DeleteReservation)
	})
}
