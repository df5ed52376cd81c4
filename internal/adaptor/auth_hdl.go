package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Etko77/MovieLibrary/internal/dto/request"
	"github.com/Etko77/MovieLibrary/internal/usecase"
	"github.com/Etko77/MovieLibrary/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, r, "Invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteValidationError(w, r, validationErrors)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "register")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, r, "Invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteValidationError(w, r, validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.WriteUnauthorized(w, r, "Missing authorization token")
		return
	}

	if err := h.service.Logout(r.Context(), parts[1]); err != nil {
		h.handleServiceError(w, r, err, "logout")
		return
	}

	utils.WriteNoContent(w)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.WriteValidationError(w, r, validationErr.Fields)

	case errors.Is(err, usecase.ErrEmailTaken):
		utils.WriteBadRequest(w, r, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.WriteUnauthorized(w, r, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.WriteInternalError(w, r, "Internal server error")
	}
}
