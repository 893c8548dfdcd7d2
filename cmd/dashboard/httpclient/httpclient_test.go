package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/trace"
	"post-dashboard/internal/logger"
)

func TestNewRequestJoinsPathAndQuery(t *testing.T) {
	c := NewBaseClient("http://api.local/base", Config{})

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/posts", url.Values{"limit": {"10"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://api.local/base/posts?limit=10", req.URL.String())
}

func TestNewRequestRejectsQueryInPath(t *testing.T) {
	c := NewBaseClient("http://api.local", Config{})

	_, err := c.NewRequest(context.Background(), http.MethodGet, "/posts?limit=1", nil, nil)
	assert.Error(t, err)
}

func TestBearerTokenAttachedFromInjectedSource(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tokens := TokenSourceFunc(func(ctx context.Context) (string, error) { return "tok-1", nil })
	c := NewBaseClient(srv.URL, Config{Tokens: tokens})

	ctx := trace.WithRequestAndSpan(context.Background(), "req-42", 0)
	req, err := c.NewRequest(ctx, http.MethodGet, "/posts", nil, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "req-42", gotRequestID)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestEmptyTokenSendsNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	tokens := TokenSourceFunc(func(ctx context.Context) (string, error) { return "", nil })
	c := NewBaseClient(srv.URL, Config{Tokens: tokens})

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestTokenFailureNeverReachesServer(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	boom := errors.New("store unavailable")
	tokens := TokenSourceFunc(func(ctx context.Context) (string, error) { return "", boom })
	c := NewBaseClient(srv.URL, Config{Tokens: tokens})

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	_, err = c.Do(req)

	require.Error(t, err)
	var tokenErr *TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestNoRetryOnServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL, Config{})
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLoginBodyNotLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.Log
	logger.Log = logger.NewLoggerTo("debug", &logs)
	t.Cleanup(func() { logger.Log = prev })

	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL, Config{})
	body := `{"email":"a@b.c","password":"S3cretPassw0rd"}`
	req, err := c.NewRequest(context.Background(), http.MethodPost, "/auth/login", nil, bytes.NewBufferString(body))
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, body, received)
	assert.NotContains(t, logs.String(), "S3cretPassw0rd")
	assert.Contains(t, logs.String(), "[redacted]")
}

func TestRequestBodyLoggedForOtherPaths(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.Log
	logger.Log = logger.NewLoggerTo("debug", &logs)
	t.Cleanup(func() { logger.Log = prev })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewBaseClient(srv.URL, Config{})
	req, err := c.NewRequest(context.Background(), http.MethodPost, "/posts", nil, bytes.NewBufferString(`{"title":"hello"}`))
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, logs.String(), "hello")
}
