package handler

import (
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/api/apierr"
	"github.com/dlehdeod1/newcornerkicks/internal/api/middleware"
	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/api/sse"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/services/admin"
	"github.com/dlehdeod1/newcornerkicks/internal/services/notify"
	"github.com/dlehdeod1/newcornerkicks/internal/services/scoring"
)

// RankingHandler handles rankings and the settlement summary
type RankingHandler struct {
	scoring *scoring.Service
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(scoring *scoring.Service) *RankingHandler {
	return &RankingHandler{scoring: scoring}
}

// Season handles GET /api/rankings
func (h *RankingHandler) Season(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	ranking, err := h.scoring.Season(r.Context(), year)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, ranking)
}

// MVP handles GET /api/sessions/{id}/mvp
func (h *RankingHandler) MVP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ranking, err := h.scoring.MVP(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, ranking)
}

// Summary handles GET /api/settlements/summary
func (h *RankingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	summary, err := h.scoring.Summary(r.Context(), year)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, summary)
}

// NotificationHandler handles the current user's notifications
type NotificationHandler struct {
	notify *notify.Service
	hubs   *sse.HubManager
}

// NewNotificationHandler creates a new notification handler. hubs may be nil,
// which disables the stream.
func NewNotificationHandler(notify *notify.Service, hubs *sse.HubManager) *NotificationHandler {
	return &NotificationHandler{notify: notify, hubs: hubs}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	list, err := h.notify.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.List(list))
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user := middleware.MustGetUser(r.Context())
	if err := h.notify.MarkRead(r.Context(), user.ID, id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Stream handles GET /api/notifications/stream as server-sent events
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.hubs == nil {
		WriteError(w, apierr.NewNotFoundError())
		return
	}
	user := middleware.MustGetUser(r.Context())
	sse.ServeSSE(w, r, h.hubs, user.ID)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	if err := h.notify.MarkAllRead(r.Context(), user.ID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// AdminHandler handles /api/admin
type AdminHandler struct {
	admin *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *admin.Service) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, stats)
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, users)
}

// SetRole handles PATCH /api/admin/users/{id}/role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubapi.SetRoleRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.admin.SetRole(r.Context(), id, req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, user)
}
