package board

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/clients/postclient"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []postclient.ListParams
	pages map[string]postclient.Page
	err   error
}

func (f *fakeSource) ListPosts(_ context.Context, p postclient.ListParams) (postclient.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	if f.err != nil {
		return postclient.Page{}, f.err
	}
	return f.pages[p.NextCursor], nil
}

func makePosts(from, n int) []postclient.Post {
	out := make([]postclient.Post, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, postclient.Post{ID: postclient.ID(fmt.Sprint(i)), Title: fmt.Sprintf("post %d", i)})
	}
	return out
}

func twoPageSource() *fakeSource {
	return &fakeSource{pages: map[string]postclient.Page{
		"":    {Items: makePosts(1, 10), NextCursor: "abc"},
		"abc": {Items: makePosts(11, 10)},
	}}
}

func TestLoadAppendsSecondPageInOrder(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)
	ctx := context.Background()

	_, err := c.Load(ctx, Filter{}, "")
	require.NoError(t, err)
	assert.Len(t, c.Snapshot().Rows, 10)

	_, err = c.Load(ctx, Filter{}, "abc")
	require.NoError(t, err)

	rows := c.Snapshot().Rows
	require.Len(t, rows, 20)
	for i, r := range rows {
		assert.Equal(t, postclient.ID(fmt.Sprint(i+1)), r.ID)
	}
	assert.Equal(t, "abc", src.calls[1].NextCursor)
	assert.Equal(t, 10, src.calls[1].Limit)
	assert.False(t, c.Snapshot().HasNext)
}

func TestSequentialLoadsNeverShrink(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)
	ctx := context.Background()

	_, err := c.Load(ctx, Filter{Category: "QNA"}, "")
	require.NoError(t, err)
	before := len(c.Snapshot().Rows)

	fetched, err := c.FetchNext(ctx)
	require.NoError(t, err)
	assert.True(t, fetched)

	assert.GreaterOrEqual(t, len(c.Snapshot().Rows), before)
}

func TestFilterChangeResetsList(t *testing.T) {
	tests := []struct {
		name string
		next Filter
	}{
		{"sort", Filter{Sort: SortTitle}},
		{"order", Filter{Order: OrderAsc}},
		{"category", Filter{Category: "FREE"}},
		{"search", Filter{Search: "go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := twoPageSource()
			c := NewController(src, 10, 200)
			ctx := context.Background()
			_, err := c.Load(ctx, Filter{}, "")
			require.NoError(t, err)
			_, err = c.Load(ctx, Filter{}, "abc")
			require.NoError(t, err)
			require.Len(t, c.Snapshot().Rows, 20)

			_, err = c.SetFilter(ctx, tt.next)
			require.NoError(t, err)

			assert.Len(t, c.Snapshot().Rows, 10)
			last := src.calls[len(src.calls)-1]
			assert.Empty(t, last.NextCursor)
			assert.Equal(t, tt.next, c.Snapshot().Filter)
		})
	}
}

func TestFetchNextNoopWithoutCursor(t *testing.T) {
	src := &fakeSource{pages: map[string]postclient.Page{"": {Items: makePosts(1, 3)}}}
	c := NewController(src, 10, 200)
	ctx := context.Background()

	fetched, err := c.FetchNext(ctx)
	require.NoError(t, err)
	assert.False(t, fetched)

	_, err = c.Load(ctx, Filter{}, "")
	require.NoError(t, err)

	fetched, err = c.FetchNext(ctx)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Len(t, src.calls, 1)
}

func TestTransportErrorSurfacesAndKeepsRows(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)
	ctx := context.Background()
	_, err := c.Load(ctx, Filter{}, "")
	require.NoError(t, err)

	src.err = &apperr.TransportError{Op: "posts List", Err: context.DeadlineExceeded}
	_, err = c.FetchNext(ctx)

	assert.ErrorIs(t, err, apperr.ErrTransport)
	snap := c.Snapshot()
	assert.Len(t, snap.Rows, 10)
	assert.NotEmpty(t, snap.Error)
	assert.True(t, snap.HasNext)
}

func TestInvalidFilterRejectedBeforeFetch(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)

	_, err := c.Load(context.Background(), Filter{Category: "SPAM"}, "")

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, src.calls)
}

func TestStaleCursorRejected(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)
	ctx := context.Background()
	_, err := c.Load(ctx, Filter{}, "")
	require.NoError(t, err)

	_, err = c.Load(ctx, Filter{}, "zzz")

	assert.ErrorIs(t, err, ErrStaleCursor)
	assert.Len(t, c.Snapshot().Rows, 10)
}

func TestOnSentinelHonoursMargin(t *testing.T) {
	src := twoPageSource()
	c := NewController(src, 10, 200)
	ctx := context.Background()
	_, err := c.Load(ctx, Filter{}, "")
	require.NoError(t, err)

	fetched, err := c.OnSentinel(ctx, 450)
	require.NoError(t, err)
	assert.False(t, fetched)

	fetched, err = c.OnSentinel(ctx, 200)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Len(t, c.Snapshot().Rows, 20)
}

// blockingSource 는 release 가 닫힐 때까지 응답을 붙잡아 둔다.
type blockingSource struct {
	started chan postclient.ListParams
	release chan struct{}
	pages   map[string]postclient.Page
}

func (b *blockingSource) ListPosts(_ context.Context, p postclient.ListParams) (postclient.Page, error) {
	b.started <- p
	<-b.release
	return b.pages[p.Category+"|"+p.NextCursor], nil
}

func TestSecondFetchWhileInFlightIsSuppressed(t *testing.T) {
	src := &blockingSource{
		started: make(chan postclient.ListParams, 4),
		release: make(chan struct{}),
		pages: map[string]postclient.Page{
			"|":    {Items: makePosts(1, 10), NextCursor: "abc"},
			"|abc": {Items: makePosts(11, 10)},
		},
	}
	c := NewController(src, 10, 200)
	ctx := context.Background()

	close(src.release)
	_, err := c.Load(ctx, Filter{}, "")
	require.NoError(t, err)
	<-src.started

	src.release = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := c.FetchNext(ctx)
		done <- err
	}()
	<-src.started

	fetched, err := c.FetchNext(ctx)
	require.NoError(t, err)
	assert.False(t, fetched)

	_, err = c.Load(ctx, Filter{}, "abc")
	assert.ErrorIs(t, err, ErrFetchInFlight)

	close(src.release)
	require.NoError(t, <-done)
	assert.Len(t, c.Snapshot().Rows, 20)
}

func TestStaleResponseDiscardedAfterFilterChange(t *testing.T) {
	src := &blockingSource{
		started: make(chan postclient.ListParams, 4),
		release: make(chan struct{}),
		pages: map[string]postclient.Page{
			"|":     {Items: makePosts(1, 10), NextCursor: "abc"},
			"FREE|": {Items: makePosts(100, 2)},
		},
	}
	c := NewController(src, 10, 200)
	ctx := context.Background()

	oldDone := make(chan error, 1)
	go func() {
		_, err := c.Load(ctx, Filter{}, "")
		oldDone <- err
	}()
	<-src.started

	newDone := make(chan error, 1)
	go func() {
		_, err := c.SetFilter(ctx, Filter{Category: "FREE"})
		newDone <- err
	}()
	<-src.started

	close(src.release)
	assert.ErrorIs(t, <-oldDone, ErrSuperseded)
	require.NoError(t, <-newDone)

	rows := c.Snapshot().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, postclient.ID("100"), rows[0].ID)
	assert.False(t, c.Snapshot().Fetching)
}
