package repository

import (
	"context"
	"fmt"

	"github.com/Etko77/MovieLibrary/internal/data/entity"
	"github.com/Etko77/MovieLibrary/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository is the record store for movies. Timestamps are
// store-managed: created_at is set on first save only, updated_at on
// every save. Save assigns an id when the entity carries none.
type MovieRepository interface {
	Save(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateRating overwrites rating and rating_status only, leaving
	// every other column untouched. Returns false when the movie no
	// longer exists; that is not an error.
	UpdateRating(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) (bool, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Save(ctx context.Context, movie *entity.Movie) error {
	if movie.ID == uuid.Nil {
		movie.ID = uuid.New()
	}

	query := `
		INSERT INTO movies (id, title, director, release_year, rating,
		                    rating_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    director = EXCLUDED.director,
		    release_year = EXCLUDED.release_year,
		    rating = EXCLUDED.rating,
		    rating_status = EXCLUDED.rating_status,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.Director,
		movie.ReleaseYear,
		movie.Rating,
		movie.RatingStatus,
	).Scan(&movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to save movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to save movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, director, release_year, rating, rating_status,
		       created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.ReleaseYear,
		&movie.Rating,
		&movie.RatingStatus,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, director, release_year, rating, rating_status,
		       created_at, updated_at
		FROM movies
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Director,
			&movie.ReleaseYear,
			&movie.Rating,
			&movie.RatingStatus,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		r.log.Error("Failed to check movie existence",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return false, fmt.Errorf("failed to check movie: %w", err)
	}

	return exists, nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return false, fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return true, nil
}

func (r *movieRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) (bool, error) {
	query := `
		UPDATE movies
		SET rating = $2, rating_status = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, rating, status)
	if err != nil {
		r.log.Error("Failed to update movie rating",
			zap.Error(err),
			zap.String("movie_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("failed to update rating: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
