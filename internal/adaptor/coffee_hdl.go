package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/usecase"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

type CoffeeHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCoffeeHandler(service usecase.CatalogService, log *zap.Logger) *CoffeeHandler {
	return &CoffeeHandler{
		service: service,
		log:     log.With(zap.String("handler", "coffee")),
	}
}

// ListCoffeeOptions handles GET /api/coffee-options (public) and
// GET /api/admin/coffee-options (admin)
func (h *CoffeeHandler) ListCoffeeOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.ListActive(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list coffee options")
		return
	}

	utils.ResponseSuccess(w, "success", options)
}

// CreateCoffeeOption handles POST /api/admin/coffee-options (admin only)
func (h *CoffeeHandler) CreateCoffeeOption(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCoffeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	option, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create coffee option")
		return
	}

	utils.ResponseCreated(w, "success", option)
}

// UpdateCoffeeOption handles PUT /api/admin/coffee-options (admin only)
func (h *CoffeeHandler) UpdateCoffeeOption(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCoffeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	option, err := h.service.Update(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "update coffee option")
		return
	}

	utils.ResponseSuccess(w, "success", option)
}

// DeleteCoffeeOption handles DELETE /api/admin/coffee-options (admin only)
func (h *CoffeeHandler) DeleteCoffeeOption(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteCoffeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Delete(r.Context(), req.ID); err != nil {
		h.handleServiceError(w, err, "delete coffee option")
		return
	}

	utils.ResponseSuccess(w, "Coffee option deleted successfully", nil)
}

func (h *CoffeeHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, domain.ErrCoffeeNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "already exists"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
