package httpclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStreamUnsupported is returned when a Doer cannot open event streams
var ErrStreamUnsupported = errors.New("event streams are not supported by this client")

// Event is one server-sent event
type Event struct {
	Name string
	Data string
}

// Streamer opens a server-sent event stream and hands each event to handle
// until the stream ends, ctx is done or handle returns an error
type Streamer interface {
	Stream(ctx context.Context, req Request, handle func(Event) error) error
}

// Ensure Client implements Streamer
var _ Streamer = (*Client)(nil)

// Stream issues a GET and reads the body as text/event-stream. The client
// timeout does not apply; the stream lives as long as ctx.
func (c *Client) Stream(ctx context.Context, req Request, handle func(Event) error) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+req.Path, nil)
	if err != nil {
		return &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	hc := *c.httpClient
	hc.Timeout = 0
	resp, err := hc.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return errorFromResponse(resp.StatusCode, data)
	}

	c.logger.Debug("event stream opened", zap.String("path", req.Path))
	err = readEvents(resp.Body, handle)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// readEvents parses event/data fields; comment lines and other fields are skipped
func readEvents(r io.Reader, handle func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var (
		ev   Event
		data []string
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(data) > 0 || ev.Name != "" {
				ev.Data = strings.Join(data, "\n")
				if ev.Name == "" {
					ev.Name = "message"
				}
				if err := handle(ev); err != nil {
					return err
				}
			}
			ev, data = Event{}, nil
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return &RequestError{Message: DefaultErrorMessage, Err: fmt.Errorf("stream read failed: %w", err)}
	}
	return nil
}
