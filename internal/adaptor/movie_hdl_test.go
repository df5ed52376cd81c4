package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Etko77/MovieLibrary/internal/data/entity"
	"github.com/Etko77/MovieLibrary/internal/dto/request"
	"github.com/Etko77/MovieLibrary/internal/dto/response"
	"github.com/Etko77/MovieLibrary/internal/usecase"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock MovieService
type mockMovieService struct {
	movies map[string]response.MovieResponse
}

func newMockMovieService() *mockMovieService {
	return &mockMovieService{movies: make(map[string]response.MovieResponse)}
}

func (m *mockMovieService) Create(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	resp := response.MovieResponse{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Director:     req.Director,
		ReleaseYear:  req.ReleaseYear,
		RatingStatus: string(entity.RatingStatusPending),
	}
	m.movies[resp.ID] = resp
	return &resp, nil
}

func (m *mockMovieService) List(ctx context.Context) ([]response.MovieResponse, error) {
	out := make([]response.MovieResponse, 0, len(m.movies))
	for _, movie := range m.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (m *mockMovieService) GetByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, ok := m.movies[movieID]
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", movieID, usecase.ErrMovieNotFound)
	}
	return &movie, nil
}

func (m *mockMovieService) Update(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie, ok := m.movies[movieID]
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", movieID, usecase.ErrMovieNotFound)
	}
	movie.Title = req.Title
	m.movies[movieID] = movie
	return &movie, nil
}

func (m *mockMovieService) Delete(ctx context.Context, movieID string) error {
	if _, ok := m.movies[movieID]; !ok {
		return fmt.Errorf("movie %s: %w", movieID, usecase.ErrMovieNotFound)
	}
	delete(m.movies, movieID)
	return nil
}

func (m *mockMovieService) ApplyRatingResult(ctx context.Context, id uuid.UUID, rating *float64, status entity.RatingStatus) error {
	return nil
}

func newTestRouter(svc usecase.MovieService) *chi.Mux {
	handler := NewMovieHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/movies", handler.CreateMovie)
	r.Get("/api/movies", handler.GetMovies)
	r.Get("/api/movies/{id}", handler.GetMovieByID)
	r.Put("/api/movies/{id}", handler.UpdateMovie)
	r.Delete("/api/movies/{id}", handler.DeleteMovie)
	return r
}

func TestCreateMovie_Returns201WithPendingStatus(t *testing.T) {
	router := newTestRouter(newMockMovieService())

	body := `{"title":"Inception","director":"Christopher Nolan","releaseYear":2010}`
	req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var movie response.MovieResponse
	if err := json.NewDecoder(rec.Body).Decode(&movie); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if movie.RatingStatus != "PENDING" {
		t.Errorf("expected ratingStatus PENDING, got %s", movie.RatingStatus)
	}
	if movie.Rating != nil {
		t.Errorf("expected null rating, got %v", *movie.Rating)
	}
}

func TestCreateMovie_BlankTitleReturns400(t *testing.T) {
	svc := newMockMovieService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(`{"title":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp utils.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if _, ok := errResp.ValidationErrors["title"]; !ok {
		t.Errorf("expected validationErrors.title, got %v", errResp.ValidationErrors)
	}
	if len(svc.movies) != 0 {
		t.Errorf("no record may be persisted on validation failure")
	}
}

func TestGetMovieByID_MissingReturns404(t *testing.T) {
	router := newTestRouter(newMockMovieService())

	req := httptest.NewRequest(http.MethodGet, "/api/movies/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var errResp utils.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if !strings.Contains(errResp.Message, "not found") {
		t.Errorf("expected message containing %q, got %q", "not found", errResp.Message)
	}
	if errResp.Path != "/api/movies/999" {
		t.Errorf("expected request path in error body, got %q", errResp.Path)
	}
}

func TestDeleteMovie_Returns204(t *testing.T) {
	svc := newMockMovieService()
	router := newTestRouter(svc)

	created, _ := svc.Create(context.Background(), &request.MovieRequest{Title: "Heat"})

	req := httptest.NewRequest(http.MethodDelete, "/api/movies/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}
