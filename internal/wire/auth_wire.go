package wire

import (
	"coffee-reservation/internal/adaptor"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/pkg/middleware"
	"coffee-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/admin/login - Credential exchange (public)
	r.Post("/api/admin/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminSession(repo.Session, config.Session.CookieName, log))

		r.Post("/api/admin/logout", authHandler.Logout)
		r.Get("/api/admin/me", authHandler.Me)
		r.Post("/api/admin/change-password", authHandler.ChangePassword)
	})
}
