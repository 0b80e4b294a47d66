package wire

import (
	"coffee-reservation/internal/adaptor"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/pkg/middleware"
	"coffee-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCoffee(
	r chi.Router,
	coffeeHandler *adaptor.CoffeeHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/coffee-options - Active menu, price ascending
	r.Get("/api/coffee-options", coffeeHandler.ListCoffeeOptions)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/coffee-options", func(r chi.Router) {
		r.Use(middleware.AdminSession(repo.Session, config.Session.CookieName, log))

		r.Get("/", coffeeHandler.ListCoffeeOptions)
		r.Post("/", coffeeHandler.CreateCoffeeOption)
		r.Put("/", coffeeHandler.UpdateCoffeeOption)
		r.Delete("/", coffeeHandler.DeleteCoffeeOption)
	})
}
