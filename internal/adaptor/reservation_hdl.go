package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/usecase"
	"coffee-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultAdminListLimit = 50

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations (public)
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// GetReservation handles GET /api/reservations/{id} (public)
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ConfirmPayment handles POST /api/reservations/{id}/confirm-payment (public)
func (h *ReservationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.ConfirmPayment(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed successfully", reservation)
}

// SearchReservations handles GET /api/reservations/search (public)
func (h *ReservationHandler) SearchReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	phone := query.Get("phone")
	email := query.Get("email")

	reservations, err := h.service.SearchByContact(r.Context(), phone, email)
	if err != nil {
		h.handleServiceError(w, err, "search reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ==================== ADMIN METHODS ====================

// ListReservations handles GET /api/admin/reservations (admin only)
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultAdminListLimit)

	result, err := h.service.ListAdminReservations(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdateStatus handles PUT /api/admin/reservations/{id} (admin only)
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(w, err, "update reservation status")
		return
	}

	utils.ResponseSuccess(w, "Reservation status updated successfully", reservation)
}

// DeleteReservation handles DELETE /api/admin/reservations/{id} (admin only)
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.reservationID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReservation(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted successfully", nil)
}

// ==================== HELPERS ====================

func (h *ReservationHandler) reservationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid reservation ID", nil)
		return 0, false
	}
	return id, true
}

func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var admissionErr *domain.AdmissionError
	var transitionErr *domain.TransitionError

	switch {
	case errors.As(err, &admissionErr):
		h.log.Warn(operation+" rejected by admission check",
			zap.String("reason", admissionErr.Reason),
			zap.Int("available_spots", admissionErr.AvailableSpots))
		utils.ResponseBadRequest(w, admissionErr.Reason,
			map[string]int{"available_spots": admissionErr.AvailableSpots})

	case errors.As(err, &transitionErr):
		h.log.Warn(operation+" rejected - illegal transition",
			zap.String("from", transitionErr.From),
			zap.String("to", transitionErr.To))
		utils.ResponseBadRequest(w, transitionErr.Error(), nil)

	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrCoffeeNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, domain.ErrContactRequired),
		errors.Is(err, domain.ErrInvalidStatus):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
