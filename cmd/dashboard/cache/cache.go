package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"post-dashboard/cmd/dashboard/clients/postclient"
)

// DetailCache 는 게시글 상세 조회 결과 캐시다.
// 세션 간에 공유되며 게시글 id 를 키로 쓴다.
type DetailCache interface {
	Get(ctx context.Context, id string) (postclient.Post, bool, error)
	Set(ctx context.Context, post postclient.Post) error
	Invalidate(ctx context.Context, id string) error
}

// Memory 는 프로세스 내 LRU 캐시다. 항목은 ttl 이 지나면 만료된다.
type Memory struct {
	lru *expirable.LRU[string, postclient.Post]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 512
	}
	return &Memory{lru: expirable.NewLRU[string, postclient.Post](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, id string) (postclient.Post, bool, error) {
	p, ok := m.lru.Get(id)
	return p, ok, nil
}

func (m *Memory) Set(_ context.Context, post postclient.Post) error {
	if post.ID == "" {
		return nil
	}
	m.lru.Add(string(post.ID), post)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, id string) error {
	m.lru.Remove(id)
	return nil
}

// Redis 는 여러 대시보드 인스턴스가 공유하는 캐시다. 값은 JSON 으로 저장한다.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func detailKey(id string) string {
	return fmt.Sprintf("post:detail:%s", id)
}

func (r *Redis) Get(ctx context.Context, id string) (postclient.Post, bool, error) {
	raw, err := r.client.Get(ctx, detailKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return postclient.Post{}, false, nil
	}
	if err != nil {
		return postclient.Post{}, false, err
	}
	var p postclient.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		// 깨진 값은 지우고 miss 로 처리한다.
		r.client.Del(ctx, detailKey(id))
		return postclient.Post{}, false, nil
	}
	return p, true, nil
}

func (r *Redis) Set(ctx context.Context, post postclient.Post) error {
	if post.ID == "" {
		return nil
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, detailKey(string(post.ID)), raw, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context, id string) error {
	return r.client.Del(ctx, detailKey(id)).Err()
}
