package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/cache"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/clients/authclient"
	"post-dashboard/cmd/dashboard/clients/chartclient"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/dto"
	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/cmd/dashboard/handlers"
	"post-dashboard/cmd/dashboard/httpclient"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/session"
	"post-dashboard/cmd/dashboard/table"
	"post-dashboard/cmd/dashboard/workspace"
)

const upstreamToken = "upstream-token"

// fakeBackend 는 대시보드가 호출하는 REST 백엔드를 흉내 낸다.
type fakeBackend struct {
	mu          sync.Mutex
	posts       map[string]postclient.Post
	createCalls int
	listQueries []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{posts: map[string]postclient.Post{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+upstreamToken {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req authclient.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": upstreamToken, "user": map[string]any{"id": 7, "email": req.Email}})
	})
	mux.HandleFunc("GET /posts", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.listQueries = append(b.listQueries, r.URL.RawQuery)
		b.mu.Unlock()

		start, next := 1, "abc"
		if r.URL.Query().Get("nextCursor") == "abc" {
			start, next = 11, ""
		}
		items := make([]postclient.Post, 0, 10)
		for i := start; i < start+10; i++ {
			items = append(items, postclient.Post{ID: postclient.ID(fmt.Sprint(i)), Title: fmt.Sprintf("post %d", i), Category: "FREE", Tags: []string{"t"}})
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "nextCursor": next})
	}))
	mux.HandleFunc("POST /posts", authed(func(w http.ResponseWriter, r *http.Request) {
		var in postclient.WriteRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.createCalls++
		id := fmt.Sprint(100 + b.createCalls)
		p := postclient.Post{ID: postclient.ID(id), UserID: in.UserID, Title: in.Title, Body: in.Body, Category: in.Category, Tags: in.Tags}
		b.posts[id] = p
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, p)
	}))
	mux.HandleFunc("GET /posts/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		p, ok := b.posts[r.PathValue("id")]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, p)
	}))
	mux.HandleFunc("PATCH /posts/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		var in postclient.WriteRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.posts[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
			return
		}
		p.Title, p.Body, p.Category, p.Tags = in.Title, in.Body, in.Category, in.Tags
		b.posts[string(p.ID)] = p
		writeJSON(w, http.StatusOK, p)
	}))
	mux.HandleFunc("GET /mock/weekly-mood-trend", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []chartclient.MoodRow{{Week: "W1", Happy: 3, Tired: 2, Stressed: 1}})
	}))
	mux.HandleFunc("GET /mock/popular-snack-brands", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []chartclient.SnackShare{{Name: "Pocky", Share: 40}, {Name: "Oreo", Share: 60}})
	}))
	return mux
}

type harness struct {
	engine  *gin.Engine
	backend *fakeBackend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	sessions, err := session.NewManager("test-secret", "test", time.Hour)
	require.NoError(t, err)
	base := httpclient.NewBaseClient(srv.URL, httpclient.Config{Timeout: 2 * time.Second, Tokens: session.TokenSource{}})
	postSvc := services.NewPostService(postclient.New(base), cache.NewMemory(16, time.Minute))

	engine := New(Deps{
		Auth:       services.NewAuthService(authclient.New(base), sessions),
		Posts:      postSvc,
		Charts:     services.NewChartService(chartclient.New(base)),
		Workspaces: workspace.NewRegistry(8, time.Minute, postSvc, 10, 200),
		Guard:      editor.NewGuard(nil),
		Cookie:     handlers.CookieConfig{Name: "sid"},
	})
	return &harness{engine: engine, backend: backend}
}

func (h *harness) do(t *testing.T, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"","password":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	cookie := h.login(t)
	w = h.do(t, http.MethodGet, "/api/v1/auth/session", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.SessionDTO](t, w)
	assert.Equal(t, "7", got.UserID)
	assert.Equal(t, "a@b.c", got.Email)
}

func TestRoutesRequireSession(t *testing.T) {
	h := newHarness(t)

	for _, target := range []string{"/api/v1/board", "/api/v1/posts/1", "/api/v1/charts/bar", "/api/v1/auth/session"} {
		w := h.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestBoardInfiniteScroll(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)

	w := h.do(t, http.MethodGet, "/api/v1/board", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[dto.BoardResponseDTO](t, w)
	assert.Equal(t, 10, first.Count)
	assert.Equal(t, "abc", first.NextCursor)
	assert.Equal(t, "1", first.Table.Rows[0].ID)
	assert.Equal(t, "/post/write?id=1", first.Table.Rows[0].Link)

	w = h.do(t, http.MethodPost, "/api/v1/board/sentinel", `{"distance":500}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	far := decode[dto.BoardResponseDTO](t, w)
	assert.False(t, far.Fetched)
	assert.Equal(t, 10, far.Count)

	w = h.do(t, http.MethodPost, "/api/v1/board/sentinel", `{"distance":120}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	near := decode[dto.BoardResponseDTO](t, w)
	assert.True(t, near.Fetched)
	assert.Equal(t, 20, near.Count)
	assert.False(t, near.HasNext)
	for i, row := range near.Table.Rows {
		assert.Equal(t, fmt.Sprint(i+1), row.ID)
	}

	w = h.do(t, http.MethodPut, "/api/v1/board/filter", `{"category":"qna","order":"DESC"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[dto.BoardResponseDTO](t, w)
	assert.Equal(t, 10, reset.Count)
	assert.Equal(t, "QNA", reset.Filter.Category)
	assert.Equal(t, "desc", reset.Filter.Order)

	last := h.backend.listQueries[len(h.backend.listQueries)-1]
	assert.Contains(t, last, "category=QNA")
	assert.NotContains(t, last, "nextCursor")

	w = h.do(t, http.MethodPut, "/api/v1/board/filter", `{"sort":"views"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestColumnLayout(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)

	w := h.do(t, http.MethodPatch, "/api/v1/board/columns/body", `{"width":5,"visible":false}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[[]table.ColumnState](t, w)
	for _, c := range state {
		if c.Key == "body" {
			assert.Equal(t, table.MinColumnWidth, c.Width)
			assert.False(t, c.Visible)
		}
	}

	w = h.do(t, http.MethodGet, "/api/v1/board", "", cookie)
	board := decode[dto.BoardResponseDTO](t, w)
	assert.NotContains(t, board.Table.Headers, "게시글 본문")
	assert.Len(t, board.Table.Rows[0].Cells, len(table.Columns)-1)

	w = h.do(t, http.MethodPatch, "/api/v1/board/columns/views", `{"width":50}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(t, http.MethodPatch, "/api/v1/board/columns/title", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndEditPost(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)

	w := h.do(t, http.MethodPost, "/api/v1/posts", `{"title":"여행","body":"프 놈 펜 다녀왔어요"}`, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponseDTO](t, w).Error, "프놈펜")
	assert.Equal(t, 0, h.backend.createCalls)

	w = h.do(t, http.MethodPost, "/api/v1/posts", `{"title":"hello","body":"world","tags":"Go, go, Gin, a, b, c, d"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.PostWriteResponseDTO](t, w)
	assert.True(t, created.Created)
	assert.Equal(t, "read_only", created.State)

	w = h.do(t, http.MethodGet, "/api/v1/posts/"+created.ID, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	post := decode[dto.PostDTO](t, w)
	assert.Equal(t, "hello", post.Title)
	assert.Equal(t, "NOTICE", post.Category)
	assert.Equal(t, "7", post.UserID)
	assert.Equal(t, []string{"Go", "Gin", "a", "b", "c"}, post.Tags)

	w = h.do(t, http.MethodPatch, "/api/v1/posts/"+created.ID, `{"title":"hello2","body":"world","category":"free","tags":"x"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, http.MethodGet, "/api/v1/posts/"+created.ID, "", cookie)
	post = decode[dto.PostDTO](t, w)
	assert.Equal(t, "hello2", post.Title)
	assert.Equal(t, "FREE", post.Category)
	assert.Equal(t, []string{"x"}, post.Tags)

	w = h.do(t, http.MethodGet, "/api/v1/posts/999", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagPreview(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)

	w := h.do(t, http.MethodPost, "/api/v1/editor/tags", `{"tags":["a","b","c","d","e"],"input":"f"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, decode[dto.TagPreviewResponseDTO](t, w).Tags)

	w = h.do(t, http.MethodPost, "/api/v1/editor/tags", `{"tags":["a","b"],"input":"","action":"backspace"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a"}, decode[dto.TagPreviewResponseDTO](t, w).Tags)

	w = h.do(t, http.MethodPost, "/api/v1/editor/tags", `{"action":"undo"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCharts(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)

	w := h.do(t, http.MethodGet, "/api/v1/charts/bar?colors[snack.Oreo]=%23abcdef", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	panel := decode[chart.Panel](t, w)
	require.Len(t, panel.Charts, 2)
	assert.Equal(t, "#ABCDEF", panel.Charts[1].Colors["Oreo"])

	// 색상은 세션에 유지된다.
	w = h.do(t, http.MethodGet, "/api/v1/charts/donut", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	panel = decode[chart.Panel](t, w)
	assert.Equal(t, "#ABCDEF", panel.Charts[1].Colors["Oreo"])

	w = h.do(t, http.MethodGet, "/api/v1/charts/pie", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(t, http.MethodGet, "/api/v1/charts/bar?colors[snack.Oreo]=red", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// multi-line 데이터셋은 이 백엔드에 없으므로 업스트림 404 가 502 로 나간다.
	w = h.do(t, http.MethodGet, "/api/v1/charts/multi-line", "", cookie)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLogoutDropsWorkspace(t *testing.T) {
	h := newHarness(t)
	cookie := h.login(t)
	h.do(t, http.MethodPatch, "/api/v1/board/columns/id", `{"visible":false}`, cookie)

	w := h.do(t, http.MethodPost, "/api/v1/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// 같은 토큰으로 다시 들어오면 새 작업 공간이 만들어진다.
	w = h.do(t, http.MethodGet, "/api/v1/board", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[dto.BoardResponseDTO](t, w)
	assert.Contains(t, board.Table.Headers, "ID")
}
