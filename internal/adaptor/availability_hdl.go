package adaptor

import (
	"net/http"

	"coffee-reservation/internal/usecase"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetTimeSlots handles GET /api/time-slots?date=YYYY-MM-DD (public)
func (h *AvailabilityHandler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		utils.ResponseBadRequest(w, "Date parameter is required", nil)
		return
	}

	date, ok := utils.ParseDate(raw)
	if !ok {
		utils.ResponseBadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	availability, err := h.service.GetSlotAvailability(r.Context(), date)
	if err != nil {
		h.log.Error("Failed to get time slot availability",
			zap.Error(err),
			zap.String("date", date))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
