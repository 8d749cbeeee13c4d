package clubapi

import (
	"context"
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
)

// AuthAPI covers /auth routes
type AuthAPI struct {
	doer httpclient.Doer
}

// Login exchanges credentials for a token
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   LoginRequest{Username: username, Password: password},
	}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and logs it in
func (a *AuthAPI) Register(ctx context.Context, body RegisterRequest) (*LoginResponse, error) {
	var out LoginResponse
	req := httpclient.Request{Method: http.MethodPost, Path: "/auth/register", Body: body}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user and linked player behind token
func (a *AuthAPI) Me(ctx context.Context, token string) (*MeResponse, error) {
	var out MeResponse
	req := httpclient.Request{Method: http.MethodGet, Path: "/auth/me", Token: token}
	if err := a.doer.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
