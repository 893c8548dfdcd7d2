package main

import (
	"context"
	"fmt"
	"time"

	"post-dashboard/internal/logger"
	"post-dashboard/cmd/mockapi/auth"
	"post-dashboard/config"
	"post-dashboard/models"
	"post-dashboard/repositories"
)

const samplePostCount = 60

var sampleCategories = []string{"NOTICE", "QNA", "FREE"}

var sampleTags = [][]string{
	{"공지"},
	{"go", "backend"},
	{"react", "frontend", "질문"},
	{},
	{"일상"},
}

// seed 는 로그인 계정을 만들거나 비밀번호를 갱신하고, 글이 하나도 없으면 샘플 글을 넣는다.
func seed(ctx context.Context, cfg config.MockAPIConfig, users *repositories.UserRepository, posts *repositories.PostRepository) error {
	if cfg.UserEmail == "" || cfg.UserPassword == "" {
		logger.Log.Warn("MOCK_USER_EMAIL / MOCK_USER_PASSWORD not set, skipping user seed")
	} else {
		hash, err := auth.HashPassword(cfg.UserPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := users.UpsertByEmail(ctx, &models.User{Email: cfg.UserEmail, Name: "admin", PasswordHash: hash}); err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}
		logger.InfoWithFields("seed user ready", logger.Fields{"email": cfg.UserEmail})
	}

	n, err := posts.Count(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if n > 0 {
		return nil
	}

	base := time.Now().UTC().Add(-samplePostCount * time.Hour)
	for i := 0; i < samplePostCount; i++ {
		p := &models.Post{
			UserID:    "seed",
			Title:     fmt.Sprintf("샘플 게시글 %d", i+1),
			Body:      fmt.Sprintf("샘플 본문입니다. 번호 %d", i+1),
			Category:  sampleCategories[i%len(sampleCategories)],
			Tags:      sampleTags[i%len(sampleTags)],
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := posts.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert sample post: %w", err)
		}
	}
	logger.InfoWithFields("sample posts seeded", logger.Fields{"count": samplePostCount})
	return nil
}
