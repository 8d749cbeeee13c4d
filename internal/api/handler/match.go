package handler

import (
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/match"
)

// MatchHandler handles team and match endpoints
type MatchHandler struct {
	matches *match.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matches *match.Controller) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// ListBySession handles GET /api/sessions/{id}/matches
func (h *MatchHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	list, err := h.matches.ListBySession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(list))
}

// Get handles GET /api/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.matches.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, m)
}

// Create handles POST /api/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clubapi.CreateMatchRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.matches.Create(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, m)
}

// RecordScore handles PATCH /api/matches/{id}/score
func (h *MatchHandler) RecordScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.ScoreRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.matches.RecordScore(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, m)
}

// AddEvent handles POST /api/matches/{id}/events
func (h *MatchHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var event model.MatchEvent
	if !decode(w, r, &event) {
		return
	}
	m, err := h.matches.AddEvent(r.Context(), id, event)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, m)
}

// Teams handles GET /api/sessions/{id}/teams
func (h *MatchHandler) Teams(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	teams, err := h.matches.Teams(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(teams))
}

// AutoTeams handles POST /api/sessions/{id}/teams/auto
func (h *MatchHandler) AutoTeams(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.AutoTeamsRequest
	if !decode(w, r, &req) {
		return
	}
	teams, err := h.matches.AutoAssign(r.Context(), id, req.Teams)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(teams))
}

// AssignTeams handles POST /api/sessions/{id}/teams
func (h *MatchHandler) AssignTeams(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.AssignTeamsRequest
	if !decode(w, r, &req) {
		return
	}
	teams, err := h.matches.AssignTeams(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(teams))
}
