package board

import (
	"context"
	"errors"
	"sync"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/internal/logger"
)

var (
	// ErrFetchInFlight 는 다음 페이지 요청 중에 또 다음 페이지를 요청한 경우다.
	ErrFetchInFlight = errors.New("board: fetch already in flight")
	// ErrSuperseded 는 응답이 도착했을 때 필터가 이미 바뀌어 결과를 버린 경우다.
	ErrSuperseded = errors.New("board: response superseded by newer filter")
	// ErrStaleCursor 는 현재 nextCursor 가 아닌 커서로 이어 붙이려 한 경우다.
	ErrStaleCursor = errors.New("board: cursor does not continue current list")
)

const (
	DefaultPageSize       = 10
	DefaultPrefetchMargin = 200
)

// PageSource 는 목록 한 페이지를 가져오는 쪽이다.
type PageSource interface {
	ListPosts(ctx context.Context, params postclient.ListParams) (postclient.Page, error)
}

// Controller 는 한 세션의 무한 스크롤 목록 상태를 관리한다.
// 동시에 하나의 fetch 만 진행되며, 필터가 바뀌면 version 이 올라가
// 이전 필터로 보낸 요청의 응답은 버려진다.
type Controller struct {
	src      PageSource
	pageSize int
	margin   int

	mu         sync.Mutex
	filter     Filter
	version    uint64
	fetching   bool
	loaded     bool
	rows       []postclient.Post
	nextCursor string
	lastErr    error
}

func NewController(src PageSource, pageSize, prefetchMargin int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if prefetchMargin <= 0 {
		prefetchMargin = DefaultPrefetchMargin
	}
	return &Controller{src: src, pageSize: pageSize, margin: prefetchMargin}
}

// Snapshot 은 화면에 그릴 목록 상태의 복사본이다.
type Snapshot struct {
	Filter     Filter            `json:"filter"`
	Rows       []postclient.Post `json:"rows"`
	NextCursor string            `json:"nextCursor,omitempty"`
	HasNext    bool              `json:"hasNext"`
	Fetching   bool              `json:"fetching"`
	Loaded     bool              `json:"loaded"`
	Error      string            `json:"error,omitempty"`
}

type dispatch struct {
	version uint64
	params  postclient.ListParams
}

// Load 는 filter 와 cursor 로 한 페이지를 가져온다.
// filter 가 현재와 다르거나 cursor 가 비어 있으면 목록을 비우고 처음부터 시작하고,
// 같은 filter 에 직전 nextCursor 를 주면 뒤에 이어 붙인다.
func (c *Controller) Load(ctx context.Context, f Filter, cursor string) (postclient.Page, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return postclient.Page{}, err
	}

	c.mu.Lock()
	var d dispatch
	if f != c.filter || cursor == "" {
		d = c.resetLocked(f)
	} else {
		if c.fetching {
			c.mu.Unlock()
			return postclient.Page{}, ErrFetchInFlight
		}
		if cursor != c.nextCursor {
			c.mu.Unlock()
			return postclient.Page{}, ErrStaleCursor
		}
		d = c.beginLocked(cursor)
	}
	c.mu.Unlock()

	return c.run(ctx, d)
}

// SetFilter 는 필터를 바꾸고 첫 페이지를 불러온다.
func (c *Controller) SetFilter(ctx context.Context, f Filter) (postclient.Page, error) {
	return c.Load(ctx, f, "")
}

// EnsureLoaded 는 아직 한 번도 불러오지 않았다면 첫 페이지를 불러온다.
func (c *Controller) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded || c.fetching {
		c.mu.Unlock()
		return nil
	}
	d := c.resetLocked(c.filter)
	c.mu.Unlock()

	_, err := c.run(ctx, d)
	if errors.Is(err, ErrSuperseded) {
		return nil
	}
	return err
}

// FetchNext 는 다음 페이지를 가져온다.
// 이미 요청 중이거나 nextCursor 가 없으면 아무것도 하지 않고 false 를 반환한다.
func (c *Controller) FetchNext(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.fetching || !c.loaded || c.nextCursor == "" {
		c.mu.Unlock()
		return false, nil
	}
	d := c.beginLocked(c.nextCursor)
	c.mu.Unlock()

	if _, err := c.run(ctx, d); err != nil {
		if errors.Is(err, ErrSuperseded) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// OnSentinel 은 목록 끝 sentinel 이 뷰포트에서 distance 만큼 떨어져 있다고 알린다.
// prefetch margin 안으로 들어오면 다음 페이지를 가져온다.
func (c *Controller) OnSentinel(ctx context.Context, distance int) (bool, error) {
	if distance > c.margin {
		return false, nil
	}
	return c.FetchNext(ctx)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]postclient.Post, len(c.rows))
	copy(rows, c.rows)
	s := Snapshot{
		Filter:     c.filter,
		Rows:       rows,
		NextCursor: c.nextCursor,
		HasNext:    c.nextCursor != "",
		Fetching:   c.fetching,
		Loaded:     c.loaded,
	}
	if c.lastErr != nil {
		s.Error = apperr.UserMessage(c.lastErr)
	}
	return s
}

func (c *Controller) resetLocked(f Filter) dispatch {
	c.version++
	c.filter = f
	c.rows = nil
	c.nextCursor = ""
	c.loaded = false
	c.lastErr = nil
	return c.beginLocked("")
}

func (c *Controller) beginLocked(cursor string) dispatch {
	c.fetching = true
	return dispatch{version: c.version, params: c.filter.Params(c.pageSize, cursor)}
}

func (c *Controller) run(ctx context.Context, d dispatch) (postclient.Page, error) {
	page, err := c.src.ListPosts(ctx, d.params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if d.version != c.version {
		logger.DebugWithFields("board: discarded stale page", logger.Fields{
			"dispatched_version": d.version,
			"current_version":    c.version,
		})
		return postclient.Page{}, ErrSuperseded
	}
	c.fetching = false
	if err != nil {
		c.lastErr = err
		return postclient.Page{}, err
	}
	c.lastErr = nil
	c.rows = append(c.rows, page.Items...)
	c.nextCursor = page.NextCursor
	c.loaded = true
	return page, nil
}
