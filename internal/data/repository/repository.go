package repository

import (
	"coffee-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Reservation ReservationRepository
	Coffee      CoffeeRepository
	AdminUser   AdminUserRepository
	Session     SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Reservation: NewReservationRepository(db, log),
		Coffee:      NewCoffeeRepository(db, log),
		AdminUser:   NewAdminUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
	}
}
