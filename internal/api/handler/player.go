package handler

import (
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/api/middleware"
	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/services/player"
)

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// List handles GET /api/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(players))
}

// Get handles GET /api/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, p)
}

// Create handles POST /api/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clubapi.CreatePlayerRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.players.Create(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, p)
}

// Update handles PATCH /api/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.UpdatePlayerRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.players.Update(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, p)
}

// Link handles POST /api/players/{id}/link
func (h *PlayerHandler) Link(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user := middleware.MustGetUser(r.Context())
	p, err := h.players.Link(r.Context(), id, *user)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, p)
}

// Rate handles POST /api/players/{id}/ratings
func (h *PlayerHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.RatingRequest
	if !decode(w, r, &req) {
		return
	}
	user := middleware.MustGetUser(r.Context())
	p, err := h.players.Rate(r.Context(), id, *user, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, p)
}
