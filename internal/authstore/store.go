// Package authstore holds the logged-in identity of the CLI and persists it
// across runs.
package authstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

var (
	ErrEmptyToken  = errors.New("token is required")
	ErrNoUser      = errors.New("user is required")
	ErrNotLoggedIn = errors.New("로그인이 필요합니다.")

	// ErrCorruptRecord is wrapped by persisters when a stored record cannot be decoded
	ErrCorruptRecord = errors.New("corrupt auth record")
)

// Record is the persisted shape of the auth state
type Record struct {
	Token  string        `json:"token"`
	User   *model.User   `json:"user"`
	Player *model.Player `json:"player"`
}

// State is a snapshot of the auth state with its derived flags
type State struct {
	Token      string
	User       *model.User
	Player     *model.Player
	IsAdmin    bool
	IsLoggedIn bool
}

// Persister stores the single auth record
type Persister interface {
	// Load returns nil and no error when nothing has been saved
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// Store is the process-wide auth state. Mutations are serialized and
// written to the persister before they become visible.
type Store struct {
	persister Persister
	logger    *zap.Logger

	mu  sync.RWMutex
	rec Record
}

// Open rehydrates the store from persister. A usable record is adopted
// as-is without being written back, so a persister TTL keeps counting from
// the last Login. An incomplete or undecodable record is cleared and the
// store starts logged out.
func Open(ctx context.Context, persister Persister, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{persister: persister, logger: logger}

	rec, err := persister.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptRecord) {
			return nil, fmt.Errorf("load auth record: %w", err)
		}
		logger.Warn("discarding unreadable auth record", zap.Error(err))
		rec = nil
	}
	if rec == nil || rec.Token == "" || rec.User == nil {
		if err := s.Logout(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.rec = Record{Token: rec.Token, User: copyUser(rec.User), Player: copyPlayer(rec.Player)}
	logger.Debug("restored login", zap.Int64("user_id", rec.User.ID), zap.String("role", string(rec.User.Role)))
	return s, nil
}

// State returns a snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Token:      s.rec.Token,
		User:       copyUser(s.rec.User),
		Player:     copyPlayer(s.rec.Player),
		IsAdmin:    s.rec.User != nil && s.rec.User.Role == model.RoleAdmin,
		IsLoggedIn: s.rec.Token != "",
	}
}

// Token returns the current bearer token, or ""
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Token
}

// Login replaces token, user and player together
func (s *Store) Login(ctx context.Context, token string, user model.User, player *model.Player) error {
	if token == "" {
		return ErrEmptyToken
	}
	rec := Record{Token: token, User: &user, Player: copyPlayer(player)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persister.Save(ctx, rec); err != nil {
		return fmt.Errorf("save auth record: %w", err)
	}
	s.rec = rec
	s.logger.Debug("logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// Logout resets to the empty state
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("clear auth record: %w", err)
	}
	s.rec = Record{}
	return nil
}

// SetPlayer patches only the linked player; nil unlinks
func (s *Store) SetPlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.Token == "" {
		return ErrNotLoggedIn
	}
	rec := s.rec
	rec.Player = copyPlayer(player)
	if err := s.persister.Save(ctx, rec); err != nil {
		return fmt.Errorf("save auth record: %w", err)
	}
	s.rec = rec
	return nil
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func copyPlayer(p *model.Player) *model.Player {
	if p == nil {
		return nil
	}
	cp := *p
	if p.UserID != nil {
		id := *p.UserID
		cp.UserID = &id
	}
	return &cp
}
