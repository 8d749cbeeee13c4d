package wizard

import (
	"context"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// TokenFunc returns the bearer token to send with each wizard request
type TokenFunc func() string

type apiBackend struct {
	sessions *clubapi.SessionsAPI
	token    TokenFunc
}

// NewBackend adapts the sessions API to the wizard. The token is read on
// every call so a re-login between steps is picked up.
func NewBackend(sessions *clubapi.SessionsAPI, token TokenFunc) Backend {
	return &apiBackend{sessions: sessions, token: token}
}

func (b *apiBackend) CreateSession(ctx context.Context, req clubapi.CreateSessionRequest) (*model.Session, error) {
	return b.sessions.Create(ctx, b.token(), req)
}

func (b *apiBackend) Parse(ctx context.Context, sessionID int64, text string) (*model.ParseResult, error) {
	return b.sessions.Parse(ctx, b.token(), sessionID, text)
}

func (b *apiBackend) SaveAttendance(ctx context.Context, sessionID int64, records []model.AttendanceRecord) error {
	_, err := b.sessions.SaveAttendance(ctx, b.token(), sessionID, records)
	return err
}
