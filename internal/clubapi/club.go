package clubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// TeamsAPI covers /sessions/{id}/teams
type TeamsAPI struct {
	doer httpclient.Doer
}

// ListBySession returns the teams of one session
func (a *TeamsAPI) ListBySession(ctx context.Context, sessionID int64) ([]model.Team, error) {
	var out []model.Team
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(sessionID, "/teams")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Assign replaces the team assignment of one session
func (a *TeamsAPI) Assign(ctx context.Context, token string, sessionID int64, body AssignTeamsRequest) ([]model.Team, error) {
	var out []model.Team
	req := httpclient.Request{Method: http.MethodPost, Path: sessionPath(sessionID, "/teams"), Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Auto lets the server split the session's players into balanced teams
func (a *TeamsAPI) Auto(ctx context.Context, token string, sessionID int64, teams int) ([]model.Team, error) {
	var out []model.Team
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   sessionPath(sessionID, "/teams/auto"),
		Body:   AutoTeamsRequest{Teams: teams},
		Token:  token,
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RankingsAPI covers ranking routes
type RankingsAPI struct {
	doer httpclient.Doer
}

func yearQuery(year int) url.Values {
	if year <= 0 {
		return nil
	}
	return url.Values{"year": {strconv.Itoa(year)}}
}

// Season returns the season ranking; year 0 means the server's current season
func (a *RankingsAPI) Season(ctx context.Context, year int) ([]model.RankingEntry, error) {
	var out []model.RankingEntry
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/rankings", Query: yearQuery(year)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MVP returns the MVP ranking of one session
func (a *RankingsAPI) MVP(ctx context.Context, sessionID int64) ([]model.RankingEntry, error) {
	var out []model.RankingEntry
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(sessionID, "/mvp")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettlementsAPI covers prize-money routes
type SettlementsAPI struct {
	doer httpclient.Doer
}

// BySession returns the settlements of one session
func (a *SettlementsAPI) BySession(ctx context.Context, sessionID int64) ([]model.Settlement, error) {
	var out []model.Settlement
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(sessionID, "/settlements")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary returns the season summary
func (a *SettlementsAPI) Summary(ctx context.Context, year int) (*model.SettlementSummary, error) {
	var out model.SettlementSummary
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/settlements/summary", Query: yearQuery(year)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkPaid flags a settlement as paid
func (a *SettlementsAPI) MarkPaid(ctx context.Context, token string, id int64) (*model.Settlement, error) {
	var out model.Settlement
	req := httpclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/settlements/%d/paid", id), Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NotificationsAPI covers /notifications
type NotificationsAPI struct {
	doer httpclient.Doer
}

// List returns the current user's notifications
func (a *NotificationsAPI) List(ctx context.Context, token string) ([]model.Notification, error) {
	var out []model.Notification
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/notifications", Token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one notification as read
func (a *NotificationsAPI) MarkRead(ctx context.Context, token string, id int64) error {
	req := httpclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/notifications/%d/read", id), Token: token}
	return a.doer.Do(ctx, req, nil)
}

// MarkAllRead flags every notification as read
func (a *NotificationsAPI) MarkAllRead(ctx context.Context, token string) error {
	req := httpclient.Request{Method: http.MethodPost, Path: "/notifications/read-all", Token: token}
	return a.doer.Do(ctx, req, nil)
}

// Watch follows the live notification stream, calling fn for each new
// notification until ctx is done or fn returns an error
func (a *NotificationsAPI) Watch(ctx context.Context, token string, fn func(model.Notification) error) error {
	streamer, ok := a.doer.(httpclient.Streamer)
	if !ok {
		return httpclient.ErrStreamUnsupported
	}
	req := httpclient.Request{Path: "/notifications/stream", Token: token}
	return streamer.Stream(ctx, req, func(ev httpclient.Event) error {
		if ev.Name != NotificationEvent {
			return nil
		}
		var n model.Notification
		if err := json.Unmarshal([]byte(ev.Data), &n); err != nil {
			return &httpclient.RequestError{Status: http.StatusOK, Message: httpclient.InvalidResponseMessage, Err: err}
		}
		return fn(n)
	})
}

// AdminAPI covers /admin
type AdminAPI struct {
	doer httpclient.Doer
}

// Stats returns the dashboard summary
func (a *AdminAPI) Stats(ctx context.Context, token string) (*model.AdminStats, error) {
	var out model.AdminStats
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/admin/stats", Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists every account
func (a *AdminAPI) Users(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/admin/users", Token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRole changes a user's role
func (a *AdminAPI) SetRole(ctx context.Context, token string, userID int64, role model.Role) (*model.User, error) {
	var out model.User
	req := httpclient.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/admin/users/%d/role", userID),
		Body:   SetRoleRequest{Role: role},
		Token:  token,
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
