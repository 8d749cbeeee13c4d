package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RequestIDHeader carries a per-request id for log correlation
const RequestIDHeader = "X-Request-ID"

// Request describes one call to the club API
type Request struct {
	// Method defaults to GET
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Token is sent as a bearer token when non-empty
	Token string
}

// Doer issues API requests and decodes the response into out
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

// Client is a JSON-over-HTTP client for the club API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	validate   *validator.Validate
	timeout    time.Duration
	reads      singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds each round trip with a context deadline. Event
// streams are not bounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client rooted at baseURL (e.g. http://localhost:8787/api)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements Doer
var _ Doer = (*Client)(nil)

// Do performs the request. Every failure is returned as a *RequestError.
// Identical concurrent GETs share one round trip; each caller decodes its own copy.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		data []byte
		err  error
	)
	if method == http.MethodGet && req.Body == nil {
		data, err = c.sharedGet(ctx, req.Token+" "+target, target, req)
	} else {
		data, err = c.roundTrip(ctx, method, target, req)
	}
	if err != nil {
		return err
	}

	return c.decode(data, out)
}

// sharedGet joins an in-flight GET for key or starts one. The round trip is
// detached from ctx so a caller leaving early never fails the others.
func (c *Client) sharedGet(ctx context.Context, key, target string, req Request) ([]byte, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.reads.DoChan(key, func() (any, error) {
		return c.roundTrip(detached, http.MethodGet, target, req)
	})
	select {
	case <-ctx.Done():
		return nil, &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("request failed: %w", ctx.Err())}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Token: token}, out)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Token: token, Body: body}, out)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path, token string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Token: token, Body: body}, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path, token string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Token: token}, nil)
}

func (c *Client) roundTrip(ctx context.Context, method, target string, req Request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: DefaultErrorMessage, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Int("size", len(data)),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}

	return data, nil
}

// decode unmarshals a 2xx body into out and validates its shape
func (c *Client) decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &RequestError{Status: http.StatusOK, Message: InvalidResponseMessage, Err: fmt.Errorf("empty response body")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Status: http.StatusOK, Message: InvalidResponseMessage, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if err := c.validateValue(out); err != nil {
		return &RequestError{Status: http.StatusOK, Message: InvalidResponseMessage, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

// validateValue runs struct validation on a decoded struct or on each struct element of a slice
func (c *Client) validateValue(out any) error {
	rv := reflect.Indirect(reflect.ValueOf(out))
	switch rv.Kind() {
	case reflect.Struct:
		return c.validate.Struct(rv.Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			el := reflect.Indirect(rv.Index(i))
			if el.Kind() != reflect.Struct {
				continue
			}
			if err := c.validate.Struct(el.Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}
