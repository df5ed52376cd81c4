package usecase

import (
	"github.com/Etko77/MovieLibrary/internal/data/repository"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	Movie MovieService
}

func NewService(repo *repository.Repository, config *utils.Config, dispatcher Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Auth:  NewAuthService(repo, config, log),
		Movie: NewMovieService(repo, dispatcher, log),
	}
}
