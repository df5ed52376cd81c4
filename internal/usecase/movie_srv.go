package usecase

import (
	"context"
	"fmt"

	"github.com/Etko77/MovieLibrary/internal/data/entity"
	"github.com/Etko77/MovieLibrary/internal/data/repository"
	"github.com/Etko77/MovieLibrary/internal/dto/request"
	"github.com/Etko77/MovieLibrary/internal/dto/response"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher hands a movie id to the background enrichment pool.
// TryDispatch never blocks; false means the queue is full and the
// movie stays PENDING until a later title change re-triggers it.
type Dispatcher interface {
	TryDispatch(id uuid.UUID) bool
}

type MovieService interface {
	Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	List(ctx context.Context) ([]response.MovieResponse, error)
	GetByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	Update(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	Delete(ctx context.Context, movieID string) error

	// ApplyRatingResult is called by the enrichment worker only. A
	// missing id is a silent no-op: the movie may have been deleted
	// while enrichment was in flight.
	ApplyRatingResult(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) error
}

type movieService struct {
	repo       *repository.Repository
	dispatcher Dispatcher
	log        *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	dispatcher Dispatcher,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	movie := &entity.Movie{
		Title:        req.Title,
		Director:     req.Director,
		ReleaseYear:  req.ReleaseYear,
		RatingStatus: entity.RatingStatusPending,
	}

	if err := s.repo.Movie.Save(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	// Dispatch only after the persist committed. The request does not
	// wait on enrichment.
	s.dispatchEnrichment(movie.ID)

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) List(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return movieResponses, nil
}

func (s *movieService) GetByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := s.parseID(movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrMovieNotFound)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) Update(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	id, err := s.parseID(movieID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrMovieNotFound)
	}

	// Exact string comparison, no trimming or case folding. "Alien"
	// vs "alien" counts as a change and re-triggers enrichment.
	titleChanged := movie.Title != req.Title

	movie.Title = req.Title
	movie.Director = req.Director
	movie.ReleaseYear = req.ReleaseYear

	if titleChanged {
		movie.Rating = nil
		movie.RatingStatus = entity.RatingStatusPending
	}

	if err := s.repo.Movie.Save(ctx, movie); err != nil {
		s.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("update movie: %w", err)
	}

	if titleChanged {
		s.dispatchEnrichment(movie.ID)
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
		zap.Bool("title_changed", titleChanged),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) Delete(ctx context.Context, movieID string) error {
	id, err := s.parseID(movieID)
	if err != nil {
		return err
	}

	exists, err := s.repo.Movie.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check movie: %w", err)
	}
	if !exists {
		return fmt.Errorf("movie %s: %w", movieID, ErrMovieNotFound)
	}

	found, err := s.repo.Movie.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("delete movie: %w", err)
	}
	if !found {
		return fmt.Errorf("movie %s: %w", movieID, ErrMovieNotFound)
	}

	return nil
}

func (s *movieService) ApplyRatingResult(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) error {
	found, err := s.repo.Movie.UpdateRating(ctx, id, rating, status)
	if err != nil {
		return fmt.Errorf("apply rating result: %w", err)
	}

	if !found {
		// Deleted while enrichment was in flight. Expected race.
		s.log.Debug("Rating result dropped, movie no longer exists",
			zap.String("movie_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil
	}

	s.log.Info("Rating result applied",
		zap.String("movie_id", id.String()),
		zap.String("status", string(status)),
		zap.Float64p("rating", rating),
	)

	return nil
}

// dispatchEnrichment submits id to the worker pool. A full queue is
// logged and swallowed; the triggering request already succeeded.
func (s *movieService) dispatchEnrichment(id uuid.UUID) {
	if !s.dispatcher.TryDispatch(id) {
		s.log.Warn("Enrichment queue full, movie stays pending",
			zap.String("movie_id", id.String()),
		)
	}
}

// parseID maps malformed ids to ErrMovieNotFound: a syntactically
// invalid id can never name an existing record.
func (s *movieService) parseID(movieID string) (uuid.UUID, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("movie %s: %w", movieID, ErrMovieNotFound)
	}
	return id, nil
}
