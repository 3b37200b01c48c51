package http

import (
	"net/http"
	"strings"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type RegisterRequest struct {
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required,min=8"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a client account and signs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if req.PasswordConfirmation != nil && *req.PasswordConfirmation != req.Password {
		respondError(w, http.StatusBadRequest, "validation_error", "passwords do not match")
		return
	}

	res, err := h.authSvc.Register(r.Context(), req.Email, req.Password, domain.RoleClient)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, MapAuthResultToView(res))
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	res, err := h.authSvc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapAuthResultToView(res))
}

// Refresh reissues tokens from the refresh token carried in the
// Authorization header
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := extractToken(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authorization token is not provided")
		return
	}

	res, err := h.authSvc.Refresh(r.Context(), token)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MapAuthResultToView(res))
}
