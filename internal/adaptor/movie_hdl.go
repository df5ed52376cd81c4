package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Etko77/MovieLibrary/internal/dto/request"
	"github.com/Etko77/MovieLibrary/internal/usecase"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// CreateMovie handles POST /api/movies (admin only)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, r, "Invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteValidationError(w, r, validationErrors)
		return
	}

	movie, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create movie")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, movie)
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "list movies")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	movie, err := h.service.GetByID(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie by ID")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movie)
}

// UpdateMovie handles PUT /api/movies/{id} (admin only)
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, r, "Invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteValidationError(w, r, validationErrors)
		return
	}

	movie, err := h.service.Update(r.Context(), movieID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update movie")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /api/movies/{id} (admin only)
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), movieID); err != nil {
		h.handleServiceError(w, r, err, "delete movie")
		return
	}

	utils.WriteNoContent(w)
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Any("errors", validationErr.Fields),
			zap.String("operation", operation))
		utils.WriteValidationError(w, r, validationErr.Fields)

	case errors.Is(err, usecase.ErrMovieNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.WriteNotFound(w, r, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.WriteInternalError(w, r, "Internal server error")
	}
}
