package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"newsprep/internal/model"
)

// HeadlineCache keeps recently served headline pages in Redis so repeated
// listings do not hit the news provider or the database. Keys are scoped by
// category and paging, values expire after the configured TTL.
type HeadlineCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewHeadlineCache(client *redisv9.Client, ttl time.Duration) *HeadlineCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HeadlineCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *HeadlineCache) Get(ctx context.Context, category string, page, limit int) ([]model.Article, bool, error) {
	raw, err := c.client.Get(ctx, c.key(category, page, limit)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get headlines failed: %w", err)
	}

	var articles []model.Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached headlines failed: %w", err)
	}
	return articles, true, nil
}

func (c *HeadlineCache) Set(ctx context.Context, category string, page, limit int, articles []model.Article) error {
	payload, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("marshal headline cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(category, page, limit), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set headlines failed: %w", err)
	}
	return nil
}

func (c *HeadlineCache) key(category string, page, limit int) string {
	if category == "" {
		category = "general"
	}
	return fmt.Sprintf("news:headlines:%s:%d:%d", category, page, limit)
}
