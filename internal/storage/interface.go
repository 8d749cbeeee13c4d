package storage

import (
	"context"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// SessionFilter narrows ListSessions. Zero values match everything.
type SessionFilter struct {
	Status model.SessionStatus
	Year   int
	Month  int
}

// AttendanceResult reports what ReplaceAttendance wrote
type AttendanceResult struct {
	Saved      int
	Registered []model.Player
}

// Storage defines the interface for club data persistence.
// Create methods assign the ID of the value passed in.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, userID int64) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id int64) (*model.Player, error)
	GetPlayerByUser(ctx context.Context, userID int64) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	AddRating(ctx context.Context, rating model.Rating) error
	ListRatings(ctx context.Context, playerID int64) ([]model.Rating, error)

	// Session operations
	CreateSession(ctx context.Context, session *model.Session) error
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id int64) (*model.Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]*model.Session, error)
	DeleteSession(ctx context.Context, id int64) error

	// Attendance operations

	// ReplaceAttendance swaps the attendee list of a session in one step.
	// Records that are neither guests nor linked to a player are registered
	// as new players first; nothing is written if any step fails.
	ReplaceAttendance(ctx context.Context, sessionID int64, records []model.AttendanceRecord) (*AttendanceResult, error)
	ListAttendance(ctx context.Context, sessionID int64) ([]model.AttendanceEntry, error)

	// Team operations
	ReplaceTeams(ctx context.Context, sessionID int64, teams []*model.Team) error
	ListTeams(ctx context.Context, sessionID int64) ([]*model.Team, error)

	// Match operations
	CreateMatch(ctx context.Context, match *model.Match) error
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id int64) (*model.Match, error)
	ListMatches(ctx context.Context, sessionID int64) ([]*model.Match, error)

	// Settlement operations
	CreateSettlement(ctx context.Context, settlement *model.Settlement) error
	SaveSettlement(ctx context.Context, settlement *model.Settlement) error
	GetSettlement(ctx context.Context, id int64) (*model.Settlement, error)
	// ListSettlements returns every settlement when sessionID is 0
	ListSettlements(ctx context.Context, sessionID int64) ([]*model.Settlement, error)

	// Notification operations
	CreateNotification(ctx context.Context, userID int64, notification *model.Notification) error
	SaveNotification(ctx context.Context, userID int64, notification *model.Notification) error
	ListNotifications(ctx context.Context, userID int64) ([]*model.Notification, error)
}
