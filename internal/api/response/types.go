package response

import (
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
)

// Login converts an auth session into the login response body
func Login(s *auth.Session) clubapi.LoginResponse {
	return clubapi.LoginResponse{
		Token:  s.Token,
		User:   s.User,
		Player: s.Player,
	}
}

// Me converts an auth session into the /auth/me body
func Me(s *auth.Session) clubapi.MeResponse {
	return clubapi.MeResponse{
		User:   s.User,
		Player: s.Player,
	}
}

// List dereferences stored values and never returns nil, so an empty
// collection encodes as [] rather than null
func List[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}

// Health is the liveness body
func Health() clubapi.HealthResponse {
	return clubapi.HealthResponse{Status: "ok"}
}
