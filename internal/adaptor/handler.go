package adaptor

import (
	"github.com/Etko77/MovieLibrary/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Movie *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Movie: NewMovieHandler(service.Movie, log),
	}
}
