package adaptor

import (
	"coffee-reservation/internal/usecase"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation  *ReservationHandler
	Availability *AvailabilityHandler
	Coffee       *CoffeeHandler
	Auth         *AuthHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Reservation:  NewReservationHandler(service.Reservation, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Coffee:       NewCoffeeHandler(service.Catalog, log),
		Auth:         NewAuthHandler(service.Auth, config.Session, log),
	}
}
