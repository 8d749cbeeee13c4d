package handler

import (
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// SessionHandler handles session, attendance and settlement endpoints
type SessionHandler struct {
	sessions *session.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Controller) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List handles GET /api/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	month, ok := queryInt(w, r, "month")
	if !ok {
		return
	}
	filter := storage.SessionFilter{
		Status: model.SessionStatus(r.URL.Query().Get("status")),
		Year:   year,
		Month:  month,
	}

	sessions, err := h.sessions.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(sessions))
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, s)
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clubapi.CreateSessionRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.sessions.Create(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.Created(w, s)
}

// UpdateStatus handles PATCH /api/sessions/{id}/status
func (h *SessionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.UpdateStatusRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.sessions.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, s)
}

// Delete handles DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Parse handles POST /api/sessions/{id}/parse
func (h *SessionHandler) Parse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.ParseRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := h.sessions.Parse(r.Context(), id, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, result)
}

// SaveAttendance handles POST /api/sessions/{id}/attendance
func (h *SessionHandler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.SaveAttendanceRequest
	if !decode(w, r, &req) {
		return
	}
	ack, err := h.sessions.SaveAttendance(r.Context(), id, req.Attendees)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, ack)
}

// Attendance handles GET /api/sessions/{id}/attendance
func (h *SessionHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	entries, err := h.sessions.Attendance(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, entries)
}

// Settlements handles GET /api/sessions/{id}/settlements
func (h *SessionHandler) Settlements(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	list, err := h.sessions.Settlements(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(list))
}

// MarkPaid handles POST /api/settlements/{id}/paid
func (h *SessionHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	st, err := h.sessions.MarkPaid(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, st)
}
