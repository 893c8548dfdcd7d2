package postclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/internal/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(httpclient.NewBaseClient(srv.URL, httpclient.Config{}))
}

func TestListOmitsEmptyParams(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":1,"userId":"u1","title":"a","tags":["x"]}],"nextCursor":"abc"}`))
	})

	page, err := c.List(context.Background(), ListParams{Limit: 10, Category: "QNA"})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"limit": {"10"}, "category": {"QNA"}}, gotQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ID("1"), page.Items[0].ID)
	assert.Equal(t, "abc", page.NextCursor)
}

func TestListNon200IsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"db down"}`))
	})

	_, err := c.List(context.Background(), ListParams{Limit: 10})

	var se *apperr.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "db down", se.Detail)
	assert.NotErrorIs(t, err, apperr.ErrTransport)
}

func TestListTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := New(httpclient.NewBaseClient(url, httpclient.Config{}))

	_, err := c.List(context.Background(), ListParams{Limit: 10})

	assert.ErrorIs(t, err, apperr.ErrTransport)
	assert.NotErrorIs(t, err, apperr.ErrHTTPStatus)
}

func TestDetailNon200IsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Detail(context.Background(), "42")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDetailDecodesStringID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/p-1", r.URL.Path)
		w.Write([]byte(`{"id":"p-1","title":"hello","category":"FREE","tags":[]}`))
	})

	post, err := c.Detail(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, ID("p-1"), post.ID)
	assert.Equal(t, "FREE", post.Category)
}

func TestCreateRequires201(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"created", http.StatusCreated, false},
		{"ok is not created", http.StatusOK, true},
		{"bad request", http.StatusBadRequest, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got WriteRequest
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				b, _ := io.ReadAll(r.Body)
				require.NoError(t, json.Unmarshal(b, &got))
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"id":7,"title":"t"}`))
			})

			post, err := c.Create(context.Background(), WriteRequest{Title: "t", Body: "b", Category: "NOTICE", Tags: []string{"go"}})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ID("7"), post.ID)
			assert.Equal(t, []string{"go"}, got.Tags)
		})
	}
}

func TestUpdateRequires200(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	err := c.Update(context.Background(), WriteRequest{ID: "9", Title: "t", Body: "b", Category: "QNA"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/posts/9", path)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	err = c.Update(context.Background(), WriteRequest{ID: "9"})
	assert.ErrorIs(t, err, apperr.ErrHTTPStatus)
}

func TestUpdateWithoutIDNeverCallsBackend(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	err := c.Update(context.Background(), WriteRequest{Title: "t"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.False(t, called)
}

func TestCreateUndecodableBodyLogsWarning(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.Log
	logger.Log = logger.NewLoggerTo("warn", &logs)
	t.Cleanup(func() { logger.Log = prev })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`created!`))
	})

	post, err := c.Create(context.Background(), WriteRequest{Title: "t", Body: "b", Category: "FREE"})

	require.NoError(t, err)
	assert.Empty(t, post.ID)
	assert.Contains(t, logs.String(), "post create response not decodable")
}
