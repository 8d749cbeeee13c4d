package clubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// SessionsAPI covers /sessions routes
type SessionsAPI struct {
	doer httpclient.Doer
}

func sessionPath(id int64, suffix string) string {
	return fmt.Sprintf("/sessions/%d%s", id, suffix)
}

// Query encodes the non-zero filters
func (p ListSessionsParams) Query() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.Year > 0 {
		q.Set("year", strconv.Itoa(p.Year))
	}
	if p.Month > 0 {
		q.Set("month", strconv.Itoa(p.Month))
	}
	return q
}

// List returns sessions matching params
func (a *SessionsAPI) List(ctx context.Context, params ListSessionsParams) ([]model.Session, error) {
	var out []model.Session
	req := httpclient.Request{Method: http.MethodGet, Path: "/sessions", Query: params.Query()}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one session
func (a *SessionsAPI) Get(ctx context.Context, id int64) (*model.Session, error) {
	var out model.Session
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(id, "")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create schedules a new session
func (a *SessionsAPI) Create(ctx context.Context, token string, body CreateSessionRequest) (*model.Session, error) {
	var out model.Session
	req := httpclient.Request{Method: http.MethodPost, Path: "/sessions", Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus requests a lifecycle transition
func (a *SessionsAPI) UpdateStatus(ctx context.Context, token string, id int64, status model.SessionStatus) (*model.Session, error) {
	var out model.Session
	req := httpclient.Request{
		Method: http.MethodPatch,
		Path:   sessionPath(id, "/status"),
		Body:   UpdateStatusRequest{Status: status},
		Token:  token,
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a session
func (a *SessionsAPI) Delete(ctx context.Context, token string, id int64) error {
	req := httpclient.Request{Method: http.MethodDelete, Path: sessionPath(id, ""), Token: token}
	return a.doer.Do(ctx, req, nil)
}

// Parse asks the server to classify pasted poll text
func (a *SessionsAPI) Parse(ctx context.Context, token string, id int64, text string) (*model.ParseResult, error) {
	var out model.ParseResult
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   sessionPath(id, "/parse"),
		Body:   ParseRequest{Text: text},
		Token:  token,
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveAttendance replaces the attendee list in one call
func (a *SessionsAPI) SaveAttendance(ctx context.Context, token string, id int64, records []model.AttendanceRecord) (*SaveAttendanceResponse, error) {
	var out SaveAttendanceResponse
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   sessionPath(id, "/attendance"),
		Body:   SaveAttendanceRequest{Attendees: records},
		Token:  token,
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Attendance lists the stored attendees of a session
func (a *SessionsAPI) Attendance(ctx context.Context, id int64) ([]model.AttendanceEntry, error) {
	var out []model.AttendanceEntry
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(id, "/attendance")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
