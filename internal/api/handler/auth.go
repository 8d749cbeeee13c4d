package handler

import (
	"net/http"
	"strings"

	"github.com/dlehdeod1/newcornerkicks/internal/api/middleware"
	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req clubapi.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.authService.Register(r.Context(), strings.TrimSpace(req.Username), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.Login(session))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req clubapi.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.authService.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.Login(session))
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	session, err := h.authService.Me(r.Context(), *user)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.Me(session))
}
