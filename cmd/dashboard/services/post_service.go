package services

import (
	"context"
	"sync"

	"post-dashboard/cmd/dashboard/cache"
	"post-dashboard/cmd/dashboard/clients/postclient"
	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/internal/logger"
)

// PostAPI 는 게시글 백엔드 호출이다. postclient.Client 가 구현한다.
type PostAPI interface {
	List(ctx context.Context, params postclient.ListParams) (postclient.Page, error)
	Detail(ctx context.Context, id string) (postclient.Post, error)
	Create(ctx context.Context, in postclient.WriteRequest) (postclient.Post, error)
	Update(ctx context.Context, in postclient.WriteRequest) error
}

// PostService 는 목록/상세/생성/수정을 묶는다.
//
// - 상세 조회는 cache 를 먼저 보고, 수정이 성공하면 해당 id 의 캐시를 지운다.
// - 캐시 오류는 로그만 남기고 백엔드 호출로 넘어간다.
// - 조회 도중 수정이 끝났으면 조회 결과는 캐시에 넣지 않는다.
type PostService struct {
	client PostAPI
	cache  cache.DetailCache

	// mu 는 gens 와, 캐시 Set/Invalidate 의 순서를 함께 보호한다.
	mu   sync.Mutex
	gens map[string]uint64
}

func NewPostService(client PostAPI, c cache.DetailCache) *PostService {
	return &PostService{client: client, cache: c, gens: map[string]uint64{}}
}

func (s *PostService) generation(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[id]
}

// ListPosts 는 board.PageSource 구현이다.
func (s *PostService) ListPosts(ctx context.Context, params postclient.ListParams) (postclient.Page, error) {
	return s.client.List(ctx, params)
}

func (s *PostService) Detail(ctx context.Context, id string) (postclient.Post, error) {
	if post, ok, err := s.cache.Get(ctx, id); err != nil {
		logger.WarnWithFields("post detail cache get failed", logger.Fields{"post_id": id, "error": err.Error()})
	} else if ok {
		return post, nil
	}

	gen := s.generation(id)
	post, err := s.client.Detail(ctx, id)
	if err != nil {
		return postclient.Post{}, err
	}
	if post.ID == "" {
		post.ID = postclient.ID(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[id] != gen {
		logger.DebugWithFields("post detail changed during fetch, skip cache", logger.Fields{"post_id": id})
		return post, nil
	}
	if err := s.cache.Set(ctx, post); err != nil {
		logger.WarnWithFields("post detail cache set failed", logger.Fields{"post_id": id, "error": err.Error()})
	}
	return post, nil
}

// CreatePost 는 editor.Submitter 구현이다. 백엔드가 돌려준 id 를 반환한다(없으면 빈 문자열).
func (s *PostService) CreatePost(ctx context.Context, d editor.Draft) (string, error) {
	created, err := s.client.Create(ctx, toWriteRequest(d))
	if err != nil {
		return "", err
	}
	return string(created.ID), nil
}

// UpdatePost 는 editor.Submitter 구현이다. 성공하면 상세 캐시를 무효화한다.
func (s *PostService) UpdatePost(ctx context.Context, d editor.Draft) error {
	if err := s.client.Update(ctx, toWriteRequest(d)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[d.ID]++
	if err := s.cache.Invalidate(ctx, d.ID); err != nil {
		logger.WarnWithFields("post detail cache invalidate failed", logger.Fields{"post_id": d.ID, "error": err.Error()})
	}
	return nil
}

func toWriteRequest(d editor.Draft) postclient.WriteRequest {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return postclient.WriteRequest{
		ID:       d.ID,
		UserID:   d.UserID,
		Title:    d.Title,
		Body:     d.Body,
		Category: d.Category,
		Tags:     tags,
	}
}

// DraftFromPost 는 상세 조회 결과를 편집기 Draft 로 바꾼다.
func DraftFromPost(p postclient.Post) editor.Draft {
	return editor.Draft{
		ID:       string(p.ID),
		UserID:   p.UserID,
		Title:    p.Title,
		Body:     p.Body,
		Category: p.Category,
		Tags:     p.Tags,
	}
}
