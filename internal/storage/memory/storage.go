package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out.
type Storage struct {
	mu sync.RWMutex

	nextID        int64
	accounts      map[int64]*model.Account
	usernameIndex map[string]int64
	players       map[int64]*model.Player
	ratings       map[int64][]model.Rating
	sessions      map[int64]*model.Session
	attendance    map[int64][]model.AttendanceEntry
	teams         map[int64][]*model.Team
	matches       map[int64]*model.Match
	settlements   map[int64]*model.Settlement
	notifications map[int64][]*model.Notification
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[int64]*model.Account),
		usernameIndex: make(map[string]int64),
		players:       make(map[int64]*model.Player),
		ratings:       make(map[int64][]model.Rating),
		sessions:      make(map[int64]*model.Session),
		attendance:    make(map[int64][]model.AttendanceEntry),
		teams:         make(map[int64][]*model.Team),
		matches:       make(map[int64]*model.Match),
		settlements:   make(map[int64]*model.Settlement),
		notifications: make(map[int64][]*model.Notification),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// id hands out one sequence shared by every entity; callers hold the write lock
func (s *Storage) id() int64 {
	s.nextID++
	return s.nextID
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := usernameKey(account.User.Username)
	if _, ok := s.usernameIndex[key]; ok {
		return model.ErrUsernameExists
	}
	account.User.ID = s.id()
	cp := *account
	s.accounts[cp.User.ID] = &cp
	s.usernameIndex[key] = cp.User.ID
	return nil
}

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.User.ID]; !ok {
		return model.ErrUserNotFound
	}
	cp := *account
	s.accounts[cp.User.ID] = &cp
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, userID int64) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[usernameKey(username)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

// Player operations

func copyPlayer(p *model.Player) *model.Player {
	cp := *p
	if p.UserID != nil {
		id := *p.UserID
		cp.UserID = &id
	}
	return &cp
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player.ID = s.id()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

func (s *Storage) GetPlayerByUser(ctx context.Context, userID int64) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.UserID != nil && *p.UserID == userID {
			return copyPlayer(p), nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, copyPlayer(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Storage) AddRating(ctx context.Context, rating model.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[rating.PlayerID]; !ok {
		return model.ErrPlayerNotFound
	}
	s.ratings[rating.PlayerID] = append(s.ratings[rating.PlayerID], rating)
	return nil
}

func (s *Storage) ListRatings(ctx context.Context, playerID int64) ([]model.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Rating(nil), s.ratings[playerID]...), nil
}

// Session operations

func (s *Storage) copySession(session *model.Session) *model.Session {
	cp := *session
	cp.AttendeeCount = len(s.attendance[session.ID])
	return &cp
}

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = s.id()
	cp := *session
	s.sessions[cp.ID] = &cp
	return nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return model.ErrSessionNotFound
	}
	cp := *session
	s.sessions[cp.ID] = &cp
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id int64) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s.copySession(session), nil
}

func matchesFilter(session *model.Session, f storage.SessionFilter) bool {
	if f.Status != "" && session.Status != f.Status {
		return false
	}
	if f.Year == 0 && f.Month == 0 {
		return true
	}
	d, err := session.Date()
	if err != nil {
		return false
	}
	if f.Year != 0 && d.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(d.Month()) != f.Month {
		return false
	}
	return true
}

// ListSessions returns matching sessions newest first
func (s *Storage) ListSessions(ctx context.Context, filter storage.SessionFilter) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if matchesFilter(session, filter) {
			out = append(out, s.copySession(session))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SessionDate != out[j].SessionDate {
			return out[i].SessionDate > out[j].SessionDate
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteSession removes the session and everything hanging off it
func (s *Storage) DeleteSession(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return model.ErrSessionNotFound
	}
	delete(s.sessions, id)
	delete(s.attendance, id)
	delete(s.teams, id)
	for mid, m := range s.matches {
		if m.SessionID == id {
			delete(s.matches, mid)
		}
	}
	for sid, st := range s.settlements {
		if st.SessionID == id {
			delete(s.settlements, sid)
		}
	}
	return nil
}

// Attendance operations

func (s *Storage) ReplaceAttendance(ctx context.Context, sessionID int64, records []model.AttendanceRecord) (*storage.AttendanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, model.ErrSessionNotFound
	}
	// Validate everything before writing anything
	for _, rec := range records {
		if rec.PlayerID != nil {
			if _, ok := s.players[*rec.PlayerID]; !ok {
				return nil, model.ErrPlayerNotFound
			}
		}
	}

	result := &storage.AttendanceResult{}
	entries := make([]model.AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entry := model.AttendanceEntry{
			SessionID: sessionID,
			IsGuest:   rec.IsGuest,
			Name:      rec.Name,
		}
		switch {
		case rec.IsGuest:
			name := rec.Name
			if rec.GuestName != nil {
				name = *rec.GuestName
			}
			entry.GuestName = &name
		case rec.PlayerID != nil:
			id := *rec.PlayerID
			entry.PlayerID = &id
		default:
			player := &model.Player{ID: s.id(), Name: rec.Name}
			s.players[player.ID] = player
			result.Registered = append(result.Registered, *copyPlayer(player))
			id := player.ID
			entry.PlayerID = &id
		}
		entry.ID = s.id()
		entries = append(entries, entry)
	}
	s.attendance[sessionID] = entries
	result.Saved = len(entries)
	return result, nil
}

func (s *Storage) ListAttendance(ctx context.Context, sessionID int64) ([]model.AttendanceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, model.ErrSessionNotFound
	}
	out := make([]model.AttendanceEntry, 0, len(s.attendance[sessionID]))
	for _, e := range s.attendance[sessionID] {
		if e.PlayerID != nil {
			id := *e.PlayerID
			e.PlayerID = &id
		}
		if e.GuestName != nil {
			name := *e.GuestName
			e.GuestName = &name
		}
		out = append(out, e)
	}
	return out, nil
}

// Team operations

func copyTeam(t *model.Team) *model.Team {
	cp := *t
	cp.Members = append([]model.TeamMember(nil), t.Members...)
	return &cp
}

func (s *Storage) ReplaceTeams(ctx context.Context, sessionID int64, teams []*model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return model.ErrSessionNotFound
	}
	stored := make([]*model.Team, 0, len(teams))
	for _, t := range teams {
		t.ID = s.id()
		t.SessionID = sessionID
		stored = append(stored, copyTeam(t))
	}
	s.teams[sessionID] = stored
	return nil
}

func (s *Storage) ListTeams(ctx context.Context, sessionID int64) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, model.ErrSessionNotFound
	}
	out := make([]*model.Team, 0, len(s.teams[sessionID]))
	for _, t := range s.teams[sessionID] {
		out = append(out, copyTeam(t))
	}
	return out, nil
}

// Match operations

func copyMatch(m *model.Match) *model.Match {
	cp := *m
	cp.Events = append([]model.MatchEvent(nil), m.Events...)
	return &cp
}

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[match.SessionID]; !ok {
		return model.ErrSessionNotFound
	}
	match.ID = s.id()
	s.matches[match.ID] = copyMatch(match)
	return nil
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[match.ID]; !ok {
		return model.ErrMatchNotFound
	}
	s.matches[match.ID] = copyMatch(match)
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id int64) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return copyMatch(match), nil
}

func (s *Storage) ListMatches(ctx context.Context, sessionID int64) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Match, 0)
	for _, m := range s.matches {
		if sessionID == 0 || m.SessionID == sessionID {
			out = append(out, copyMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SessionID != out[j].SessionID {
			return out[i].SessionID < out[j].SessionID
		}
		return out[i].MatchNo < out[j].MatchNo
	})
	return out, nil
}

// Settlement operations

func copySettlement(st *model.Settlement) *model.Settlement {
	cp := *st
	if st.PlayerID != nil {
		id := *st.PlayerID
		cp.PlayerID = &id
	}
	return &cp
}

func (s *Storage) CreateSettlement(ctx context.Context, settlement *model.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settlement.ID = s.id()
	s.settlements[settlement.ID] = copySettlement(settlement)
	return nil
}

func (s *Storage) SaveSettlement(ctx context.Context, settlement *model.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settlements[settlement.ID]; !ok {
		return model.ErrSettlementNotFound
	}
	s.settlements[settlement.ID] = copySettlement(settlement)
	return nil
}

func (s *Storage) GetSettlement(ctx context.Context, id int64) (*model.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settlements[id]
	if !ok {
		return nil, model.ErrSettlementNotFound
	}
	return copySettlement(st), nil
}

func (s *Storage) ListSettlements(ctx context.Context, sessionID int64) ([]*model.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Settlement, 0)
	for _, st := range s.settlements {
		if sessionID == 0 || st.SessionID == sessionID {
			out = append(out, copySettlement(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Notification operations

func (s *Storage) CreateNotification(ctx context.Context, userID int64, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = s.id()
	cp := *notification
	s.notifications[userID] = append(s.notifications[userID], &cp)
	return nil
}

func (s *Storage) SaveNotification(ctx context.Context, userID int64, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications[userID] {
		if n.ID == notification.ID {
			cp := *notification
			s.notifications[userID][i] = &cp
			return nil
		}
	}
	return model.ErrNotificationNotFound
}

// ListNotifications returns a user's notifications newest first
func (s *Storage) ListNotifications(ctx context.Context, userID int64) ([]*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.notifications[userID]
	out := make([]*model.Notification, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		cp := *list[i]
		out = append(out, &cp)
	}
	return out, nil
}
