package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/schedule"
	"github.com/dlehdeod1/newcornerkicks/internal/services/notify"
	"github.com/dlehdeod1/newcornerkicks/internal/services/poll"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// FeeReason labels the settlements created when a session completes
const FeeReason = "참가비"

// Config holds session defaults
type Config struct {
	DefaultTitle string
	MemberFee    int64
	GuestFee     int64
}

// DefaultConfig returns the club's usual title and fees
func DefaultConfig() Config {
	return Config{
		DefaultTitle: "코너킥스 수요 풋살 20:00",
		MemberFee:    5000,
		GuestFee:     10000,
	}
}

// Controller manages the session lifecycle and its attendee list
type Controller struct {
	storage storage.Storage
	notify  *notify.Service
	clock   clock.Clock
	cfg     Config
	logger  *zap.Logger

	// statusMu makes check, bill and save in UpdateStatus one step
	statusMu sync.Mutex
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	notify *notify.Service,
	clock clock.Clock,
	cfg Config,
	logger *zap.Logger,
) *Controller {
	if cfg.DefaultTitle == "" {
		cfg.DefaultTitle = DefaultConfig().DefaultTitle
	}
	return &Controller{
		storage: storage,
		notify:  notify,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// Create schedules a new recruiting session and tells every member about it
func (c *Controller) Create(ctx context.Context, req clubapi.CreateSessionRequest) (*model.Session, error) {
	date := strings.TrimSpace(req.SessionDate)
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, model.ErrInvalidDate
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = c.cfg.DefaultTitle
	}

	session := &model.Session{
		SessionDate: date,
		Title:       title,
		Status:      model.SessionRecruiting,
	}
	if err := c.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created", zap.Int64("session_id", session.ID), zap.String("date", date))

	// A missed notification does not undo the session
	if err := c.notify.Broadcast(ctx, "새 일정이 등록되었습니다", fmt.Sprintf("%s %s", date, title)); err != nil {
		c.logger.Warn("failed to notify members", zap.Int64("session_id", session.ID), zap.Error(err))
	}
	return session, nil
}

// Get returns one session
func (c *Controller) Get(ctx context.Context, id int64) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// List returns the sessions matching filter, newest first
func (c *Controller) List(ctx context.Context, filter storage.SessionFilter) ([]*model.Session, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	return c.storage.ListSessions(ctx, filter)
}

// UpdateStatus moves a session along its lifecycle. Completing a session
// bills every attendee.
func (c *Controller) UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) (*model.Session, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	c.statusMu.Lock()
	defer c.statusMu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Status.CanTransition(status) {
		return nil, model.ErrInvalidTransition
	}

	if status == model.SessionCompleted {
		if err := c.bill(ctx, session.ID); err != nil {
			return nil, err
		}
	}

	from := session.Status
	session.Status = status
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session status changed",
		zap.Int64("session_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return session, nil
}

// bill creates one fee settlement per attendee
func (c *Controller) bill(ctx context.Context, sessionID int64) error {
	entries, err := c.storage.ListAttendance(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		st := &model.Settlement{
			SessionID: sessionID,
			PlayerID:  e.PlayerID,
			Name:      e.Name,
			Amount:    c.cfg.MemberFee,
			Reason:    FeeReason,
		}
		if e.IsGuest {
			st.Amount = c.cfg.GuestFee
		}
		if err := c.storage.CreateSettlement(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a session with its attendance, teams, matches and settlements
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	c.logger.Info("session deleted", zap.Int64("session_id", id))
	return nil
}

// Parse classifies pasted poll text against the current roster.
// Nothing is stored.
func (c *Controller) Parse(ctx context.Context, id int64, text string) (*model.ParseResult, error) {
	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return nil, err
	}
	players, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	result := poll.Parse(text, poll.NewIndex(players))
	return &result, nil
}

// SaveAttendance replaces the attendee list; unknown names become players
func (c *Controller) SaveAttendance(ctx context.Context, id int64, records []model.AttendanceRecord) (*clubapi.SaveAttendanceResponse, error) {
	res, err := c.storage.ReplaceAttendance(ctx, id, records)
	if err != nil {
		return nil, err
	}
	for _, p := range res.Registered {
		c.logger.Info("player registered from attendance", zap.Int64("player_id", p.ID), zap.String("name", p.Name))
	}
	return &clubapi.SaveAttendanceResponse{Saved: res.Saved, Registered: len(res.Registered)}, nil
}

// Attendance returns the stored attendee list
func (c *Controller) Attendance(ctx context.Context, id int64) ([]model.AttendanceEntry, error) {
	return c.storage.ListAttendance(ctx, id)
}

// Settlements returns the settlements billed for one session
func (c *Controller) Settlements(ctx context.Context, id int64) ([]*model.Settlement, error) {
	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return nil, err
	}
	return c.storage.ListSettlements(ctx, id)
}

// MarkPaid flags a settlement as paid
func (c *Controller) MarkPaid(ctx context.Context, settlementID int64) (*model.Settlement, error) {
	st, err := c.storage.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	st.Paid = true
	if err := c.storage.SaveSettlement(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
