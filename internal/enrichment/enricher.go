package enrichment

import (
	"context"
	"errors"

	"github.com/Etko77/MovieLibrary/internal/data/entity"
	"github.com/Etko77/MovieLibrary/internal/dto/response"
	"github.com/Etko77/MovieLibrary/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingProvider fetches an external rating for a title. The three
// outcomes are: (rating, true, nil) on success, (_, false, nil) when
// the provider reports the title unmatched, and a non-nil error for
// network or payload failures.
type RatingProvider interface {
	FetchRating(ctx context.Context, title string, year *int) (float64, bool, error)
}

// Catalog is the slice of the movie service the worker needs.
type Catalog interface {
	GetByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	ApplyRatingResult(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) error
}

// Enricher performs one enrichment run per dispatched movie id. It is
// fully decoupled from the triggering request: nothing here retries,
// blocks a caller, or surfaces a failure as an API error. The only
// observable effect of a failure is the status left on the record.
type Enricher struct {
	catalog  Catalog
	provider RatingProvider
	log      *zap.Logger
}

func NewEnricher(catalog Catalog, provider RatingProvider, log *zap.Logger) *Enricher {
	return &Enricher{
		catalog:  catalog,
		provider: provider,
		log:      log.With(zap.String("component", "enricher")),
	}
}

func (e *Enricher) Enrich(ctx context.Context, id uuid.UUID) {
	movie, err := e.catalog.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, usecase.ErrMovieNotFound) {
			// Deleted before the task ran. Expected race, not an error.
			e.log.Debug("Movie gone before enrichment", zap.String("movie_id", id.String()))
			return
		}
		e.log.Error("Failed to load movie for enrichment",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		e.apply(ctx, id, nil, entity.RatingStatusError)
		return
	}

	rating, found, err := e.provider.FetchRating(ctx, movie.Title, movie.ReleaseYear)
	switch {
	case err != nil:
		e.log.Warn("Rating provider call failed",
			zap.Error(err),
			zap.String("movie_id", id.String()),
			zap.String("title", movie.Title),
		)
		e.apply(ctx, id, nil, entity.RatingStatusError)

	case !found:
		e.log.Info("No rating found for movie",
			zap.String("movie_id", id.String()),
			zap.String("title", movie.Title),
		)
		e.apply(ctx, id, nil, entity.RatingStatusNotFound)

	default:
		e.log.Info("Movie enriched",
			zap.String("movie_id", id.String()),
			zap.String("title", movie.Title),
			zap.Float64("rating", rating),
		)
		e.apply(ctx, id, &rating, entity.RatingStatusEnriched)
	}
}

// apply writes the outcome back. The write itself is best-effort: a
// failure is logged and swallowed.
func (e *Enricher) apply(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) {
	if err := e.catalog.ApplyRatingResult(ctx, id, rating, status); err != nil {
		e.log.Error("Failed to write rating result",
			zap.Error(err),
			zap.String("movie_id", id.String()),
			zap.String("status", string(status)),
		)
	}
}
