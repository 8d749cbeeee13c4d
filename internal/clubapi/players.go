package clubapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// PlayersAPI covers /players routes
type PlayersAPI struct {
	doer httpclient.Doer
}

// List returns every player
func (a *PlayersAPI) List(ctx context.Context) ([]model.Player, error) {
	var out []model.Player
	if err := a.doer.Do(ctx, httpclient.Request{Path: "/players"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one player
func (a *PlayersAPI) Get(ctx context.Context, id int64) (*model.Player, error) {
	var out model.Player
	if err := a.doer.Do(ctx, httpclient.Request{Path: fmt.Sprintf("/players/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a player profile
func (a *PlayersAPI) Create(ctx context.Context, token string, body CreatePlayerRequest) (*model.Player, error) {
	var out model.Player
	req := httpclient.Request{Method: http.MethodPost, Path: "/players", Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a player profile
func (a *PlayersAPI) Update(ctx context.Context, token string, id int64, body UpdatePlayerRequest) (*model.Player, error) {
	var out model.Player
	req := httpclient.Request{Method: http.MethodPatch, Path: fmt.Sprintf("/players/%d", id), Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkUser links the player profile to the user behind token
func (a *PlayersAPI) LinkUser(ctx context.Context, token string, id int64) (*model.Player, error) {
	var out model.Player
	req := httpclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/players/%d/link", id), Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rate submits a rating for a player
func (a *PlayersAPI) Rate(ctx context.Context, token string, id int64, body RatingRequest) (*model.Player, error) {
	var out model.Player
	req := httpclient.Request{Method: http.MethodPost, Path: fmt.Sprintf("/players/%d/ratings", id), Body: body, Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
