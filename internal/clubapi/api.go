// Package clubapi holds typed façades over the club's JSON API.
// Each method maps to exactly one route and only builds the request.
package clubapi

import (
	"context"
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
)

// API groups every resource module
type API struct {
	Auth          *AuthAPI
	Sessions      *SessionsAPI
	Players       *PlayersAPI
	Matches       *MatchesAPI
	Teams         *TeamsAPI
	Rankings      *RankingsAPI
	Settlements   *SettlementsAPI
	Notifications *NotificationsAPI
	Admin         *AdminAPI

	doer httpclient.Doer
}

// New wires every resource module to the same Doer
func New(doer httpclient.Doer) *API {
	return &API{
		Auth:          &AuthAPI{doer: doer},
		Sessions:      &SessionsAPI{doer: doer},
		Players:       &PlayersAPI{doer: doer},
		Matches:       &MatchesAPI{doer: doer},
		Teams:         &TeamsAPI{doer: doer},
		Rankings:      &RankingsAPI{doer: doer},
		Settlements:   &SettlementsAPI{doer: doer},
		Notifications: &NotificationsAPI{doer: doer},
		Admin:         &AdminAPI{doer: doer},
		doer:          doer,
	}
}

// Health checks that the server is reachable
func (a *API) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := a.doer.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
