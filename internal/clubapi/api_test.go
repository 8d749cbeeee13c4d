package clubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// recordingDoer captures requests and answers with a canned JSON body
type recordingDoer struct {
	requests []httpclient.Request
	response string
}

func (d *recordingDoer) Do(_ context.Context, req httpclient.Request, out any) error {
	d.requests = append(d.requests, req)
	if out == nil || d.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(d.response), out)
}

func (d *recordingDoer) last(t *testing.T) httpclient.Request {
	t.Helper()
	require.NotEmpty(t, d.requests)
	return d.requests[len(d.requests)-1]
}

func int64p(v int64) *int64 { return &v }

func TestSessionsCreate(t *testing.T) {
	d := &recordingDoer{response: `{"id": 12, "sessionDate": "2025-02-12", "status": "recruiting"}`}
	api := New(d)

	session, err := api.Sessions.Create(context.Background(), "tok", CreateSessionRequest{SessionDate: "2025-02-12"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), session.ID)

	req := d.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/sessions", req.Path)
	assert.Equal(t, "tok", req.Token)
	assert.Equal(t, CreateSessionRequest{SessionDate: "2025-02-12"}, req.Body)
}

func TestCreateSessionOmitsEmptyTitle(t *testing.T) {
	data, err := json.Marshal(CreateSessionRequest{SessionDate: "2025-02-12"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionDate":"2025-02-12"}`, string(data))
}

func TestSessionsParseAndSave(t *testing.T) {
	d := &recordingDoer{response: `{"totalCount": 0, "playerCount": 0, "guestCount": 0, "unknownCount": 0, "attendees": []}`}
	api := New(d)

	_, err := api.Sessions.Parse(context.Background(), "tok", 5, "민수\n철수")
	require.NoError(t, err)
	req := d.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/sessions/5/parse", req.Path)
	assert.Equal(t, ParseRequest{Text: "민수\n철수"}, req.Body)

	d.response = `{"saved": 1, "registered": 0}`
	records := []model.AttendanceRecord{{PlayerID: int64p(42), Name: "철수"}}
	ack, err := api.Sessions.SaveAttendance(context.Background(), "tok", 5, records)
	require.NoError(t, err)
	assert.Equal(t, 1, ack.Saved)
	req = d.last(t)
	assert.Equal(t, "/sessions/5/attendance", req.Path)
	assert.Equal(t, SaveAttendanceRequest{Attendees: records}, req.Body)
}

func TestSaveAttendanceWireShape(t *testing.T) {
	guest := "민호"
	body := SaveAttendanceRequest{Attendees: []model.AttendanceRecord{
		{PlayerID: nil, IsGuest: true, GuestName: &guest, Name: "민호"},
		{PlayerID: int64p(42), IsGuest: false, GuestName: nil, Name: "철수"},
	}}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"attendees":[
		{"playerId":null,"isGuest":true,"guestName":"민호","name":"민호"},
		{"playerId":42,"isGuest":false,"guestName":null,"name":"철수"}
	]}`, string(data))
}

func TestSessionsListQuery(t *testing.T) {
	d := &recordingDoer{response: `[]`}
	api := New(d)

	_, err := api.Sessions.List(context.Background(), ListSessionsParams{Status: model.SessionClosed, Year: 2025})
	require.NoError(t, err)
	req := d.last(t)
	assert.Equal(t, "/sessions", req.Path)
	assert.Equal(t, url.Values{"status": {"closed"}, "year": {"2025"}}, req.Query)
	assert.Empty(t, req.Token)

	_, err = api.Sessions.List(context.Background(), ListSessionsParams{})
	require.NoError(t, err)
	assert.Empty(t, d.last(t).Query)
}

func TestIdenticalInputsIssueIdenticalRequests(t *testing.T) {
	d := &recordingDoer{}
	api := New(d)

	_ = api.Sessions.Delete(context.Background(), "tok", 3)
	_ = api.Sessions.Delete(context.Background(), "tok", 3)
	require.Len(t, d.requests, 2)
	assert.Equal(t, d.requests[0], d.requests[1])
	assert.Equal(t, httpclient.Request{Method: http.MethodDelete, Path: "/sessions/3", Token: "tok"}, d.requests[0])
}

func TestRoutes(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		call   func(api *API)
		method string
		path   string
		token  string
	}{
		{"status", func(a *API) { _, _ = a.Sessions.UpdateStatus(ctx, "t", 1, model.SessionClosed) }, http.MethodPatch, "/sessions/1/status", "t"},
		{"attendance", func(a *API) { _, _ = a.Sessions.Attendance(ctx, 1) }, "", "/sessions/1/attendance", ""},
		{"me", func(a *API) { _, _ = a.Auth.Me(ctx, "t") }, http.MethodGet, "/auth/me", "t"},
		{"login", func(a *API) { _, _ = a.Auth.Login(ctx, "u", "p") }, http.MethodPost, "/auth/login", ""},
		{"players", func(a *API) { _, _ = a.Players.List(ctx) }, "", "/players", ""},
		{"link", func(a *API) { _, _ = a.Players.LinkUser(ctx, "t", 9) }, http.MethodPost, "/players/9/link", "t"},
		{"rate", func(a *API) { _, _ = a.Players.Rate(ctx, "t", 9, RatingRequest{Score: 8}) }, http.MethodPost, "/players/9/ratings", "t"},
		{"matches", func(a *API) { _, _ = a.Matches.ListBySession(ctx, 2) }, "", "/sessions/2/matches", ""},
		{"score", func(a *API) { _, _ = a.Matches.RecordScore(ctx, "t", 4, ScoreRequest{ScoreA: 1}) }, http.MethodPatch, "/matches/4/score", "t"},
		{"event", func(a *API) {
			_, _ = a.Matches.AddEvent(ctx, "t", 4, model.MatchEvent{Type: model.EventGoal, PlayerID: 1})
		}, http.MethodPost, "/matches/4/events", "t"},
		{"teams", func(a *API) { _, _ = a.Teams.Assign(ctx, "t", 2, AssignTeamsRequest{}) }, http.MethodPost, "/sessions/2/teams", "t"},
		{"auto-teams", func(a *API) { _, _ = a.Teams.Auto(ctx, "t", 2, 3) }, http.MethodPost, "/sessions/2/teams/auto", "t"},
		{"rankings", func(a *API) { _, _ = a.Rankings.Season(ctx, 0) }, "", "/rankings", ""},
		{"mvp", func(a *API) { _, _ = a.Rankings.MVP(ctx, 2) }, "", "/sessions/2/mvp", ""},
		{"settlements", func(a *API) { _, _ = a.Settlements.BySession(ctx, 2) }, "", "/sessions/2/settlements", ""},
		{"paid", func(a *API) { _, _ = a.Settlements.MarkPaid(ctx, "t", 8) }, http.MethodPost, "/settlements/8/paid", "t"},
		{"notifications", func(a *API) { _, _ = a.Notifications.List(ctx, "t") }, "", "/notifications", "t"},
		{"read-all", func(a *API) { _ = a.Notifications.MarkAllRead(ctx, "t") }, http.MethodPost, "/notifications/read-all", "t"},
		{"stats", func(a *API) { _, _ = a.Admin.Stats(ctx, "t") }, "", "/admin/stats", "t"},
		{"role", func(a *API) { _, _ = a.Admin.SetRole(ctx, "t", 3, model.RoleAdmin) }, http.MethodPatch, "/admin/users/3/role", "t"},
		{"health", func(a *API) { _, _ = a.Health(ctx) }, http.MethodGet, "/health", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &recordingDoer{}
			tc.call(New(d))
			req := d.last(t)
			assert.Equal(t, tc.method, req.Method)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, tc.token, req.Token)
		})
	}
}

func TestSummaryYearQuery(t *testing.T) {
	d := &recordingDoer{response: `{"year": 2025, "players": []}`}
	summary, err := New(d).Settlements.Summary(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, url.Values{"year": {"2025"}}, d.last(t).Query)
}
