package usecase

import (
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Reservation  ReservationService
	Catalog      CatalogService
	Auth         AuthService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier ReservationNotifier, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo.Reservation, config.Booking, log)

	return &Service{
		Availability: availability,
		Reservation:  NewReservationService(repo, availability, notifier, log),
		Catalog:      NewCatalogService(repo.Coffee, log),
		Auth:         NewAuthService(repo, config, log),
	}
}
