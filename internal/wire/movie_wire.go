package wire

import (
	"github.com/Etko77/MovieLibrary/internal/adaptor"
	"github.com/Etko77/MovieLibrary/internal/data/repository"
	"github.com/Etko77/MovieLibrary/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/movies", func(r chi.Router) {
		// Every movie endpoint requires an authenticated caller
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// Reads: admin or read-only user
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// Mutations: admin only
		r.With(middleware.RequireAdmin(log)).Post("/", movieHandler.CreateMovie)
		r.With(middleware.RequireAdmin(log)).Put("/{id}", movieHandler.UpdateMovie)
		r.With(middleware.RequireAdmin(log)).Delete("/{id}", movieHandler.DeleteMovie)
	})
}
