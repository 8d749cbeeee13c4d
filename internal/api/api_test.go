package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlehdeod1/newcornerkicks/internal/api/apierr"
	"github.com/dlehdeod1/newcornerkicks/internal/api/sse"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/factory"
	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
	"github.com/dlehdeod1/newcornerkicks/internal/wizard"
)

// testServer wires the router over a seeded test app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	app := factory.NewTestApp()
	require.NoError(t, app.Seed(context.Background()))
	return &testServer{handler: app.Handler(), app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/auth/login", clubapi.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp clubapi.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func (ts *testServer) adminToken(t *testing.T) string {
	return ts.login(t, factory.SeedAdminUsername, factory.SeedAdminPassword)
}

func (ts *testServer) memberToken(t *testing.T) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/auth/register", clubapi.RegisterRequest{Username: "member", Password: "password1"}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp clubapi.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestUnknownRouteIsJSON(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, errorMessage(t, rr))
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var me clubapi.MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, model.RoleAdmin, me.User.Role)
	require.NotNil(t, me.Player)
	assert.Equal(t, factory.SeedPlayers[0].Name, me.Player.Name)
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/login", clubapi.LoginRequest{Username: "admin", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, errorMessage(t, rr))

	rr = ts.request(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "password is required", errorMessage(t, rr))
}

func TestRegisterDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.memberToken(t)

	rr := ts.request(http.MethodPost, "/api/auth/register", clubapi.RegisterRequest{Username: "MEMBER", Password: "password1"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAuthorization(t *testing.T) {
	ts := newTestServer(t)
	member := ts.memberToken(t)
	body := clubapi.CreateSessionRequest{SessionDate: "2025-02-12"}

	rr := ts.request(http.MethodPost, "/api/sessions", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/sessions", body, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/sessions", body, member)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodGet, "/api/admin/stats", nil, member)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// reads are public
	rr = ts.request(http.MethodGet, "/api/sessions", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestBadPathAndQuery(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/sessions/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/sessions?year=twenty", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/sessions?status=paused", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/sessions/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// The rest drive the router through the real client

func newClient(t *testing.T, ts *testServer) *clubapi.API {
	t.Helper()
	srv := httptest.NewServer(ts.handler)
	t.Cleanup(srv.Close)
	return clubapi.New(httpclient.New(srv.URL + "/api"))
}

func TestWizardAgainstServer(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)
	token := ts.adminToken(t)
	ctx := context.Background()

	var completed int64
	w := wizard.New(wizard.NewBackend(client.Sessions, func() string { return token }), wizard.Options{
		Clock:      ts.app.MockClock,
		OnComplete: func(id int64) { completed = id },
	})
	require.Equal(t, "2025-02-12", w.Date())
	require.NoError(t, w.SetTitle(""))

	require.NoError(t, w.CreateSession(ctx))
	sessionID := w.SessionID()

	stored, err := client.Sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, session.DefaultConfig().DefaultTitle, stored.Title)

	// a two-rune and a three-rune unknown name
	require.NoError(t, w.SetText("도윤\n나그네"))
	require.NoError(t, w.Parse(ctx))
	result := w.Result()
	require.NotNil(t, result)
	require.Len(t, result.Attendees, 2)
	assert.Equal(t, model.AttendeeUnknown, result.Attendees[0].Kind())
	assert.Equal(t, model.AttendeeGuest, result.Attendees[1].Kind())
	assert.True(t, w.ShowUnknownWarning())

	require.NoError(t, w.Save(ctx))
	assert.Equal(t, sessionID, completed)

	attendance, err := client.Sessions.Attendance(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, attendance, 2)
	assert.NotNil(t, attendance[0].PlayerID)
	assert.True(t, attendance[1].IsGuest)
}

func TestClientSeesServerErrorMessage(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)

	_, err := client.Auth.Login(context.Background(), "admin", "nope")
	require.Error(t, err)

	var reqErr *httpclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다.", reqErr.Message)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)
	token := ts.adminToken(t)
	ctx := context.Background()

	created, err := client.Sessions.Create(ctx, token, clubapi.CreateSessionRequest{SessionDate: "2025-02-12", Title: "번개"})
	require.NoError(t, err)

	players, err := client.Players.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, players)

	_, err = client.Sessions.SaveAttendance(ctx, token, created.ID, []model.AttendanceRecord{{PlayerID: &players[0].ID, Name: players[0].Name}})
	require.NoError(t, err)

	teams, err := client.Teams.Assign(ctx, token, created.ID, clubapi.AssignTeamsRequest{Teams: []clubapi.TeamAssignment{
		{Name: "A", PlayerIDs: []int64{players[0].ID}},
		{Name: "B", PlayerIDs: []int64{players[1].ID}},
	}})
	require.NoError(t, err)
	require.Len(t, teams, 2)

	m, err := client.Matches.Create(ctx, token, clubapi.CreateMatchRequest{SessionID: created.ID, TeamAID: teams[0].ID, TeamBID: teams[1].ID})
	require.NoError(t, err)
	_, err = client.Matches.AddEvent(ctx, token, m.ID, model.MatchEvent{Type: model.EventGoal, PlayerID: players[0].ID})
	require.NoError(t, err)
	m, err = client.Matches.RecordScore(ctx, token, m.ID, clubapi.ScoreRequest{ScoreA: 1, Finished: true})
	require.NoError(t, err)
	assert.Equal(t, model.MatchFinished, m.Status)

	mvp, err := client.Rankings.MVP(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, mvp, 1)
	assert.Equal(t, 3.0, mvp[0].Score)

	_, err = client.Sessions.UpdateStatus(ctx, token, created.ID, model.SessionCompleted)
	require.NoError(t, err)

	_, err = client.Sessions.UpdateStatus(ctx, token, created.ID, model.SessionRecruiting)
	var reqErr *httpclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.Status)

	settlements, err := client.Settlements.BySession(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, settlements, 1)
	paid, err := client.Settlements.MarkPaid(ctx, token, settlements[0].ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	stats, err := client.Admin.Stats(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Zero(t, stats.UnpaidSettlements)

	notifications, err := client.Notifications.List(ctx, token)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.NoError(t, client.Notifications.MarkAllRead(ctx, token))

	require.NoError(t, client.Sessions.Delete(ctx, token, created.ID))
	_, err = client.Sessions.Get(ctx, created.ID)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
}

func TestPlayersOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)
	member := ts.memberToken(t)
	ctx := context.Background()

	p, err := client.Players.Create(ctx, member, clubapi.CreatePlayerRequest{Name: "새선수"})
	require.NoError(t, err)

	linked, err := client.Players.LinkUser(ctx, member, p.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.UserID)

	rated, err := client.Players.Rate(ctx, member, p.ID, clubapi.RatingRequest{Score: 9})
	require.NoError(t, err)
	assert.InDelta(t, 9.0, rated.Rating, 0.001)

	// the seeded first player belongs to the admin
	_, err = client.Players.LinkUser(ctx, member, 2)
	var reqErr *httpclient.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.Status)
}

func TestAdminRoleChange(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)
	admin := ts.adminToken(t)
	member := ts.memberToken(t)
	ctx := context.Background()

	me, err := client.Auth.Me(ctx, member)
	require.NoError(t, err)

	updated, err := client.Admin.SetRole(ctx, admin, me.User.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	// the member's existing token now carries admin rights
	_, err = client.Admin.Stats(ctx, member)
	require.NoError(t, err)

	users, err := client.Admin.Users(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAutoTeamsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	client := newClient(t, ts)
	token := ts.adminToken(t)
	ctx := context.Background()

	created, err := client.Sessions.Create(ctx, token, clubapi.CreateSessionRequest{SessionDate: "2025-02-12"})
	require.NoError(t, err)
	players, err := client.Players.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(players), 4)

	records := make([]model.AttendanceRecord, 0, 4)
	for _, p := range players[:4] {
		p := p
		records = append(records, model.AttendanceRecord{PlayerID: &p.ID, Name: p.Name})
	}
	_, err = client.Sessions.SaveAttendance(ctx, token, created.ID, records)
	require.NoError(t, err)

	teams, err := client.Teams.Auto(ctx, token, created.ID, 2)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Len(t, teams[0].Members, 2)
	assert.Len(t, teams[1].Members, 2)

	rr := ts.request(http.MethodPost, "/api/sessions/1/teams/auto", clubapi.AutoTeamsRequest{Teams: 7}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/sessions/1/teams/auto", clubapi.AutoTeamsRequest{Teams: 2}, ts.memberToken(t))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestNotificationStream(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.handler)
	t.Cleanup(srv.Close)
	member := ts.memberToken(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/notifications/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+member)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewScanner(resp.Body)
	next := func() string {
		for events.Scan() {
			if line := events.Text(); strings.HasPrefix(line, "event: ") {
				return strings.TrimPrefix(line, "event: ")
			}
		}
		return ""
	}
	require.Equal(t, "connected", next())

	// creating a session notifies every account
	rr := ts.request(http.MethodPost, "/api/sessions", clubapi.CreateSessionRequest{SessionDate: "2025-02-12"}, ts.adminToken(t))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Equal(t, sse.NotificationEvent, next())
	require.True(t, events.Scan())
	var n model.Notification
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(events.Text(), "data: ")), &n))
	assert.NotEmpty(t, n.Title)

	rr = ts.request(http.MethodGet, "/api/notifications/stream", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
