package clubapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// MatchesAPI covers /matches and /sessions/{id}/matches
type MatchesAPI struct {
	doer httpclient.Doer
}

// ListBySession returns the matches of one session
func (a *MatchesAPI) ListBySession(ctx context.Context, sessionID int64) ([]model.Match, error) {
	var out []model.Match
	if err := a.doer.Do(ctx, httpclient.Request{Path: sessionPath(sessionID, "/matches")}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one match with its events
func (a *MatchesAPI) Get(ctx context.Context, id int64) (*model.Match, error) {
	var out model.Match
	if err := a.doer.Do(ctx, httpclient.Request{Path: fmt.Sprintf("/matches/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create schedules a match between two teams
func (a *MatchesAPI) Create(ctx context.Context, token string, body CreateMatchRequest) (*model.Match, error) {
	var out model.Match
	req := httpclient.Request{Method: http.MethodPost, Path: "/matches", Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordScore sets the scoreboard of a match
func (a *MatchesAPI) RecordScore(ctx context.Context, token string, id int64, body ScoreRequest) (*model.Match, error) {
	var out model.Match
	req := httpclient.Request{Method: http.MethodPatch, Path: fmt.Sprintf("/matches/%d/score", id), Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEvent records a goal, assist or save
func (a *MatchesAPI) AddEvent(ctx context.Context, token string, id int64, event model.MatchEvent) (*model.Match, error) {
	var out model.Match
	req := httpclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/matches/%d/events", id), Body: event, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
