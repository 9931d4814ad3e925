// Package cache — кэш подборки избранных материалов в Redis.
package cache

//go:generate mockgen -source=cache.go -destination=../../mocks/cache.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/redis/go-redis/v9"
)

// FeaturedCache — минимальный контракт кэша подборки «избранного».
type FeaturedCache interface {
	// Get возвращает подборку и признак её наличия в кэше.
	Get(ctx context.Context) ([]models.ContentItem, bool, error)
	// Set сохраняет подборку с TTL.
	Set(ctx context.Context, items []models.ContentItem, ttl time.Duration) error
	// Invalidate сбрасывает подборку после изменения материалов.
	Invalidate(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "blog:".
func NewRedisCache(redisURL, prefix string) (FeaturedCache, error) {
	if prefix == "" {
		prefix = "blog:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

// newWithClient — для тестов с заранее созданным клиентом.
func newWithClient(rdb *redis.Client, prefix string) *redisCache {
	return &redisCache{rdb: rdb, prefix: prefix}
}

func (c *redisCache) key() string { return c.prefix + "featured" }

// Храним подборку одной JSON-строкой.
func (c *redisCache) Get(ctx context.Context) ([]models.ContentItem, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var items []models.ContentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}

	return items, true, nil
}

func (c *redisCache) Set(ctx context.Context, items []models.ContentItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(), raw, ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key()).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
