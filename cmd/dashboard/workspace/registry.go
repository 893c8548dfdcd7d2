package workspace

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"post-dashboard/cmd/dashboard/board"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/table"
	"post-dashboard/internal/logger"
)

// Workspace 는 로그인 세션 하나가 가진 화면 상태다.
type Workspace struct {
	Board  *board.Controller
	Layout *table.Layout
	Colors *chart.Colorers
}

// Registry 는 세션 id 별 Workspace 를 보관한다.
// 크기가 넘치거나 idle 시간이 지나면 가장 오래된 것부터 버린다.
type Registry struct {
	mu    sync.Mutex
	items *expirable.LRU[string, *Workspace]
	newFn func() *Workspace
}

func NewRegistry(size int, idle time.Duration, src board.PageSource, pageSize, prefetchMargin int) *Registry {
	if size <= 0 {
		size = 1024
	}
	onEvict := func(id string, _ *Workspace) {
		logger.DebugWithFields("workspace evicted", logger.Fields{"session_id": id})
	}
	return &Registry{
		items: expirable.NewLRU[string, *Workspace](size, onEvict, idle),
		newFn: func() *Workspace {
			return &Workspace{
				Board:  board.NewController(src, pageSize, prefetchMargin),
				Layout: table.NewLayout(),
				Colors: chart.NewColorers(),
			}
		},
	}
}

// Get 은 세션의 Workspace 를 돌려주고 없으면 만든다. 조회할 때마다 idle 만료가 연장된다.
func (r *Registry) Get(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.items.Get(sessionID)
	if !ok {
		ws = r.newFn()
	}
	r.items.Add(sessionID, ws)
	return ws
}

// Drop 은 로그아웃한 세션의 Workspace 를 지운다.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Remove(sessionID)
}

func (r *Registry) Len() int {
	return r.items.Len()
}
