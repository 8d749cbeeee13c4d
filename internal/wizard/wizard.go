// Package wizard implements the three-step session creation flow:
// pick a date, paste poll text, review the classified attendees and save.
package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/schedule"
)

// Step is a wizard state
type Step int

const (
	StepDate Step = iota
	StepParse
	StepPreview
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepParse:
		return "parse"
	case StepPreview:
		return "preview"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultTitle is the club title used when none is configured
const DefaultTitle = "코너킥스 수요 풋살 20:00"

// UnknownWarning is shown in preview when some names could not be resolved
const UnknownWarning = "등록되지 않은 이름이 있습니다. 저장하면 새 선수로 자동 등록됩니다."

var (
	ErrBusy         = errors.New("다른 요청이 진행 중입니다.")
	ErrWrongStep    = errors.New("현재 단계에서 할 수 없는 작업입니다.")
	ErrDateRequired = errors.New("날짜를 입력해주세요.")
	ErrInvalidDate  = errors.New("날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)")
	ErrEmptyText    = errors.New("투표 내용을 붙여넣어 주세요.")
)

// Backend performs the three round trips of the wizard
type Backend interface {
	CreateSession(ctx context.Context, req clubapi.CreateSessionRequest) (*model.Session, error)
	Parse(ctx context.Context, sessionID int64, text string) (*model.ParseResult, error)
	SaveAttendance(ctx context.Context, sessionID int64, records []model.AttendanceRecord) error
}

// Options configures a Wizard
type Options struct {
	// Clock supplies today's date for the default match day
	Clock clock.Clock
	// DefaultTitle pre-fills the title field
	DefaultTitle string
	// OnComplete is called with the session id after attendance is saved
	OnComplete func(sessionID int64)
	Logger     *zap.Logger
}

// Wizard is the session creation state machine.
// It owns the parse result exclusively and allows one request in flight at a time.
type Wizard struct {
	backend    Backend
	onComplete func(sessionID int64)
	logger     *zap.Logger

	mu        sync.Mutex
	step      Step
	loading   bool
	errMsg    string
	date      string
	title     string
	text      string
	sessionID int64
	result    *model.ParseResult
}

// New creates a wizard in the date step with the defaults filled in
func New(backend Backend, opts Options) *Wizard {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	title := opts.DefaultTitle
	if title == "" {
		title = DefaultTitle
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Wizard{
		backend:    backend,
		onComplete: opts.OnComplete,
		logger:     logger,
		step:       StepDate,
		date:       schedule.FormatDate(schedule.NextWednesday(clk.Now())),
		title:      title,
	}
}

// Step returns the current state
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Loading reports whether a request is in flight
func (w *Wizard) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// Err returns the message of the last failure, or ""
func (w *Wizard) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Date returns the date field
func (w *Wizard) Date() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.date
}

// Title returns the title field
func (w *Wizard) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Text returns the poll text field
func (w *Wizard) Text() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.text
}

// SessionID returns the id captured when the session was created, or 0
func (w *Wizard) SessionID() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionID
}

// Result returns a copy of the parse result while in preview, else nil
func (w *Wizard) Result() *model.ParseResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return nil
	}
	cp := *w.result
	cp.Attendees = append([]model.Attendee(nil), w.result.Attendees...)
	return &cp
}

// ShowUnknownWarning reports whether preview must warn about auto-registration
func (w *Wizard) ShowUnknownWarning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result != nil && w.result.UnknownCount > 0
}

// WarningMessage returns the preview warning, or "" when none applies
func (w *Wizard) WarningMessage() string {
	if w.ShowUnknownWarning() {
		return UnknownWarning
	}
	return ""
}

// SetDate edits the date field
func (w *Wizard) SetDate(date string) error {
	return w.edit(StepDate, func() { w.date = date })
}

// SetTitle edits the title field
func (w *Wizard) SetTitle(title string) error {
	return w.edit(StepDate, func() { w.title = title })
}

// SetText edits the poll text field
func (w *Wizard) SetText(text string) error {
	return w.edit(StepParse, func() { w.text = text })
}

func (w *Wizard) edit(step Step, apply func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return ErrBusy
	}
	if w.step != step {
		return ErrWrongStep
	}
	apply()
	return nil
}

// begin checks the gate for an async transition and marks the wizard busy.
// validate runs under the lock and may reject the transition without a request.
func (w *Wizard) begin(step Step, validate func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return ErrBusy
	}
	if w.step != step {
		return ErrWrongStep
	}
	w.errMsg = ""
	if validate != nil {
		if err := validate(); err != nil {
			w.errMsg = err.Error()
			return err
		}
	}
	w.loading = true
	return nil
}

// finish clears the busy flag and either records the failure or advances
func (w *Wizard) finish(err error, advance func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.errMsg = httpclient.MessageOf(err)
		return err
	}
	advance()
	return nil
}

// CreateSession creates the session server-side and moves to the parse step
func (w *Wizard) CreateSession(ctx context.Context) error {
	var req clubapi.CreateSessionRequest
	err := w.begin(StepDate, func() error {
		date := strings.TrimSpace(w.date)
		if date == "" {
			return ErrDateRequired
		}
		if _, err := schedule.ParseDate(date); err != nil {
			return ErrInvalidDate
		}
		req = clubapi.CreateSessionRequest{SessionDate: date, Title: strings.TrimSpace(w.title)}
		return nil
	})
	if err != nil {
		return err
	}

	session, err := w.backend.CreateSession(ctx, req)
	if err == nil && session == nil {
		err = &httpclient.RequestError{Message: httpclient.InvalidResponseMessage}
	}
	return w.finish(err, func() {
		w.logger.Debug("session created", zap.Int64("session_id", session.ID), zap.String("date", req.SessionDate))
		w.sessionID = session.ID
		w.step = StepParse
	})
}

// Parse sends the poll text for classification and moves to preview
func (w *Wizard) Parse(ctx context.Context) error {
	var (
		sessionID int64
		text      string
	)
	err := w.begin(StepParse, func() error {
		if strings.TrimSpace(w.text) == "" {
			return ErrEmptyText
		}
		sessionID, text = w.sessionID, w.text
		return nil
	})
	if err != nil {
		return err
	}

	result, err := w.backend.Parse(ctx, sessionID, text)
	if err == nil && result == nil {
		err = &httpclient.RequestError{Message: httpclient.InvalidResponseMessage}
	}
	return w.finish(err, func() {
		w.logger.Debug("poll parsed",
			zap.Int64("session_id", sessionID),
			zap.Int("total", result.TotalCount),
			zap.Int("unknown", result.UnknownCount),
		)
		w.result = result
		w.step = StepPreview
	})
}

// Save submits every previewed attendee in one call. On failure the
// preview is kept so the user can retry without parsing again.
func (w *Wizard) Save(ctx context.Context) error {
	var (
		sessionID int64
		records   []model.AttendanceRecord
	)
	err := w.begin(StepPreview, func() error {
		sessionID = w.sessionID
		records = ToRecords(w.result.Attendees)
		return nil
	})
	if err != nil {
		return err
	}

	err = w.backend.SaveAttendance(ctx, sessionID, records)
	if err := w.finish(err, func() {
		w.result = nil
		w.step = StepDone
	}); err != nil {
		return err
	}

	w.logger.Debug("attendance saved", zap.Int64("session_id", sessionID), zap.Int("count", len(records)))
	if w.onComplete != nil {
		w.onComplete(sessionID)
	}
	return nil
}

// Previous steps back: preview to parse (dropping the result), parse to date
func (w *Wizard) Previous() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return ErrBusy
	}
	switch w.step {
	case StepPreview:
		w.result = nil
		w.step = StepParse
	case StepParse:
		w.step = StepDate
	default:
		return ErrWrongStep
	}
	w.errMsg = ""
	return nil
}

// Cancel discards all wizard memory and returns to an empty date step
func (w *Wizard) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loading {
		return ErrBusy
	}
	w.step = StepDate
	w.errMsg = ""
	w.text = ""
	w.sessionID = 0
	w.result = nil
	return nil
}

// ToRecords maps attendees to their persisted shape. The guest name is the
// display name for guests and null otherwise.
func ToRecords(attendees []model.Attendee) []model.AttendanceRecord {
	records := make([]model.AttendanceRecord, 0, len(attendees))
	for _, a := range attendees {
		rec := model.AttendanceRecord{
			IsGuest: a.IsGuest,
			Name:    a.Name,
		}
		if a.PlayerID != nil {
			id := *a.PlayerID
			rec.PlayerID = &id
		}
		if a.IsGuest {
			name := a.Name
			rec.GuestName = &name
		}
		records = append(records, rec)
	}
	return records
}
