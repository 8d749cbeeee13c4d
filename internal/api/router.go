package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/api/apierr"
	"github.com/dlehdeod1/newcornerkicks/internal/api/handler"
	"github.com/dlehdeod1/newcornerkicks/internal/api/middleware"
	"github.com/dlehdeod1/newcornerkicks/internal/api/response"
	"github.com/dlehdeod1/newcornerkicks/internal/api/sse"
	logmw "github.com/dlehdeod1/newcornerkicks/internal/middleware"
	"github.com/dlehdeod1/newcornerkicks/internal/services/admin"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
	"github.com/dlehdeod1/newcornerkicks/internal/services/match"
	"github.com/dlehdeod1/newcornerkicks/internal/services/notify"
	"github.com/dlehdeod1/newcornerkicks/internal/services/player"
	"github.com/dlehdeod1/newcornerkicks/internal/services/scoring"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
)

// PathPrefix is where the JSON API is mounted
const PathPrefix = "/api"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *zap.Logger
	AuthService       *auth.Service
	SessionController *session.Controller
	MatchController   *match.Controller
	PlayerService     *player.Service
	ScoringService    *scoring.Service
	NotifyService     *notify.Service
	AdminService      *admin.Service
	// HubManager enables the notification stream when set
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController)
	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	rankingHandler := handler.NewRankingHandler(cfg.ScoringService)
	notificationHandler := handler.NewNotificationHandler(cfg.NotifyService, cfg.HubManager)
	adminHandler := handler.NewAdminHandler(cfg.AdminService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(middleware.RequireAdmin(h))
	}
	member := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	// API subrouter with common middleware
	api := r.PathPrefix(PathPrefix).Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(logmw.Logging(cfg.Logger))
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.Handle("/auth/me", member(authHandler.Me)).Methods(http.MethodGet)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	api.Handle("/sessions", adminOnly(sessionHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.Handle("/sessions/{id}", adminOnly(sessionHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/sessions/{id}/status", adminOnly(sessionHandler.UpdateStatus)).Methods(http.MethodPatch)
	api.Handle("/sessions/{id}/parse", member(sessionHandler.Parse)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/attendance", sessionHandler.Attendance).Methods(http.MethodGet)
	api.Handle("/sessions/{id}/attendance", member(sessionHandler.SaveAttendance)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/settlements", sessionHandler.Settlements).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/matches", matchHandler.ListBySession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/teams", matchHandler.Teams).Methods(http.MethodGet)
	api.Handle("/sessions/{id}/teams", adminOnly(matchHandler.AssignTeams)).Methods(http.MethodPost)
	api.Handle("/sessions/{id}/teams/auto", adminOnly(matchHandler.AutoTeams)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/mvp", rankingHandler.MVP).Methods(http.MethodGet)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.Handle("/players", member(playerHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.Handle("/players/{id}", member(playerHandler.Update)).Methods(http.MethodPatch)
	api.Handle("/players/{id}/link", member(playerHandler.Link)).Methods(http.MethodPost)
	api.Handle("/players/{id}/ratings", member(playerHandler.Rate)).Methods(http.MethodPost)

	// Match routes
	api.Handle("/matches", member(matchHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)
	api.Handle("/matches/{id}/score", adminOnly(matchHandler.RecordScore)).Methods(http.MethodPatch)
	api.Handle("/matches/{id}/events", adminOnly(matchHandler.AddEvent)).Methods(http.MethodPost)

	// Rankings and settlements
	api.HandleFunc("/rankings", rankingHandler.Season).Methods(http.MethodGet)
	api.HandleFunc("/settlements/summary", rankingHandler.Summary).Methods(http.MethodGet)
	api.Handle("/settlements/{id}/paid", adminOnly(sessionHandler.MarkPaid)).Methods(http.MethodPost)

	// Notifications
	api.Handle("/notifications", member(notificationHandler.List)).Methods(http.MethodGet)
	api.Handle("/notifications/stream", member(notificationHandler.Stream)).Methods(http.MethodGet)
	api.Handle("/notifications/read-all", member(notificationHandler.MarkAllRead)).Methods(http.MethodPost)
	api.Handle("/notifications/{id}/read", member(notificationHandler.MarkRead)).Methods(http.MethodPost)

	// Admin
	api.Handle("/admin/stats", adminOnly(adminHandler.Stats)).Methods(http.MethodGet)
	api.Handle("/admin/users", adminOnly(adminHandler.Users)).Methods(http.MethodGet)
	api.Handle("/admin/users/{id}/role", adminOnly(adminHandler.SetRole)).Methods(http.MethodPatch)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, response.Health())
}
