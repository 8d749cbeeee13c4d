package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func TestDoSendsJSONWithBearerToken(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "민수"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	var out item
	err := c.Post(context.Background(), "/players", "tok-123", map[string]string{"name": "민수"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/players", got.URL.Path)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get(RequestIDHeader))
	assert.JSONEq(t, `{"name":"민수"}`, string(gotBody))
	assert.Equal(t, item{ID: 7, Name: "민수"}, out)
}

func TestDoDefaultsToGetWithoutToken(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	var out []item
	err := c.Do(context.Background(), Request{Path: "/sessions", Query: url.Values{"status": {"recruiting"}}}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "recruiting", got.URL.Query().Get("status"))
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Empty(t, got.Header.Get("Content-Type"))
}

func TestServerErrorMessageIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "이미 등록된 날짜입니다."}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Post(context.Background(), "/sessions", "t", map[string]string{}, nil)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusConflict, re.Status)
	assert.Equal(t, "이미 등록된 날짜입니다.", re.Message)
	assert.Equal(t, "이미 등록된 날짜입니다.", MessageOf(err))
}

func TestServerErrorWithoutMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	err := New(srv.URL).Get(context.Background(), "/sessions", "", nil)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, DefaultErrorMessage, re.Message)
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := New(srv.URL).Get(context.Background(), "/health", "", nil)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 0, re.Status)
	assert.Equal(t, DefaultErrorMessage, re.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestResponseShapeIsValidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing-field":
			_, _ = w.Write([]byte(`{"id": 1}`))
		case "/bad-json":
			_, _ = w.Write([]byte(`{"id": "one"}`))
		case "/bad-item":
			_, _ = w.Write([]byte(`[{"id": 1, "name": "a"}, {"id": 0, "name": "b"}]`))
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	for _, path := range []string{"/missing-field", "/bad-json", "/empty"} {
		var out item
		err := c.Get(context.Background(), path, "", &out)
		var re *RequestError
		require.ErrorAs(t, err, &re, path)
		assert.Equal(t, InvalidResponseMessage, re.Message, path)
	}

	var list []item
	err := c.Get(context.Background(), "/bad-item", "", &list)
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Err.Error(), "item 1")
}

func TestEmptyBodyIsFineWithoutOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Delete(context.Background(), "/sessions/1", "t"))
}

func TestConcurrentIdenticalGetsShareOneRoundTrip(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_ = json.NewEncoder(w).Encode(item{ID: 1, Name: "a"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	var wg sync.WaitGroup
	results := make([]item, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Get(context.Background(), "/players/1", "", &results[i]))
		}(i)
	}

	// Let the goroutines pile up behind the first request
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		assert.Equal(t, item{ID: 1, Name: "a"}, r)
	}
}

func TestCancelledCallerDoesNotFailSharedGet(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_ = json.NewEncoder(w).Encode(item{ID: 1, Name: "a"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		var got item
		firstErr <- c.Get(firstCtx, "/health", "", &got)
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	var second item
	secondErr := make(chan error, 1)
	go func() {
		secondErr <- c.Get(context.Background(), "/health", "", &second)
	}()
	// Give the second caller time to join the in-flight request
	time.Sleep(20 * time.Millisecond)

	cancel()
	err := <-firstErr
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, item{ID: 1, Name: "a"}, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestTimeoutBoundsEachRequest(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}
		_ = json.NewEncoder(w).Encode(item{ID: 1, Name: "a"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(50*time.Millisecond))

	err := c.Get(context.Background(), "/slow", "", nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var got item
	require.NoError(t, c.Get(context.Background(), "/fast", "", &got))
	assert.Equal(t, item{ID: 1, Name: "a"}, got)
}

func TestMutationsAreNeverShared(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Post(context.Background(), "/notifications/read-all", "t", struct{}{}, nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), hits.Load())
}

func TestMessageOfPlainError(t *testing.T) {
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "boom", MessageOf(errors.New("boom")))
}
