package factory

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/api"
	"github.com/dlehdeod1/newcornerkicks/internal/api/sse"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/random"
	"github.com/dlehdeod1/newcornerkicks/internal/services/admin"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
	"github.com/dlehdeod1/newcornerkicks/internal/services/match"
	"github.com/dlehdeod1/newcornerkicks/internal/services/notify"
	"github.com/dlehdeod1/newcornerkicks/internal/services/player"
	"github.com/dlehdeod1/newcornerkicks/internal/services/scoring"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
	"github.com/dlehdeod1/newcornerkicks/internal/storage/memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *zap.Logger

	// Live notification streams
	HubManager *sse.HubManager

	// Services
	AuthService       *auth.Service
	NotifyService     *notify.Service
	SessionController *session.Controller
	MatchController   *match.Controller
	PlayerService     *player.Service
	ScoringService    *scoring.Service
	AdminService      *admin.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// SessionConfig holds the default title and fees (optional)
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *zap.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionCfg := cfg.SessionConfig
	if sessionCfg == (session.Config{}) {
		sessionCfg = session.DefaultConfig()
	}
	return newWithDependencies(memory.New(), clock.New(), random.New(), cfg.AuthConfig, sessionCfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, sessionCfg session.Config, logger *zap.Logger) *App {
	hubs := sse.NewHubManager(logger)
	notifyService := notify.New(store, clk, logger)
	notifyService.SetPublisher(sse.NewBroadcaster(hubs, logger))

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Logger:            logger,
		HubManager:        hubs,
		AuthService:       auth.New(store, clk, authCfg, logger),
		NotifyService:     notifyService,
		SessionController: session.NewController(store, notifyService, clk, sessionCfg, logger),
		MatchController:   match.NewController(store, rnd, logger),
		PlayerService:     player.New(store, clk, logger),
		ScoringService:    scoring.New(store, clk),
		AdminService:      admin.New(store, notifyService, logger),
	}
}

// Handler builds the JSON API router over the app's services
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:            a.Logger,
		AuthService:       a.AuthService,
		SessionController: a.SessionController,
		MatchController:   a.MatchController,
		PlayerService:     a.PlayerService,
		ScoringService:    a.ScoringService,
		NotifyService:     a.NotifyService,
		AdminService:      a.AdminService,
		HubManager:        a.HubManager,
	})
}

// Close disconnects every live notification stream
func (a *App) Close() {
	a.HubManager.Close()
}
