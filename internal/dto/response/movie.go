package response

import (
	"time"

	"github.com/Etko77/MovieLibrary/internal/data/entity"
)

// MovieResponse is the external projection of a stored movie.
type MovieResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Director     *string   `json:"director,omitempty"`
	ReleaseYear  *int      `json:"releaseYear,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	RatingStatus string    `json:"ratingStatus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:           movie.ID.String(),
		Title:        movie.Title,
		Director:     movie.Director,
		ReleaseYear:  movie.ReleaseYear,
		Rating:       movie.Rating,
		RatingStatus: string(movie.RatingStatus),
		CreatedAt:    movie.CreatedAt,
		UpdatedAt:    movie.UpdatedAt,
	}
}
