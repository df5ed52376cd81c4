package wire

import (
	"github.com/Etko77/MovieLibrary/internal/adaptor"
	"github.com/Etko77/MovieLibrary/internal/data/repository"
	"github.com/Etko77/MovieLibrary/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Authenticated routes
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Post("/api/logout", authHandler.Logout)
}
