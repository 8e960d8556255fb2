// Package cache puts a redis read-through cache in front of the list repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
)

// ListCache caches ListByProject results per user and project. Every write
// through it evicts the affected project's entry, so the board's reload after
// a mutation always sees the write.
type ListCache struct {
	base   repositories.ListRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewListCache wraps base. A nil client or a zero ttl disables caching.
func NewListCache(base repositories.ListRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListCache {
	if base == nil {
		panic("cache.NewListCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &ListCache{
		base:   base,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

var _ repositories.ListRepository = (*ListCache)(nil)

func (c *ListCache) ListByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
	key := listsKey(userID, projectID)
	if lists, ok := c.load(ctx, key); ok {
		return lists, nil
	}

	lists, err := c.base.ListByProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, lists)
	return lists, nil
}

func (c *ListCache) GetByID(ctx context.Context, id int64, userID string) (*models.List, error) {
	return c.base.GetByID(ctx, id, userID)
}

func (c *ListCache) Create(ctx context.Context, list *models.List) error {
	if err := c.base.Create(ctx, list); err != nil {
		return err
	}
	c.evict(ctx, list.CreatorID, list.ProjectID)
	return nil
}

func (c *ListCache) Update(ctx context.Context, list *models.List) error {
	if err := c.base.Update(ctx, list); err != nil {
		return err
	}
	c.evict(ctx, list.CreatorID, list.ProjectID)
	return nil
}

func (c *ListCache) Delete(ctx context.Context, id int64, userID string) (*models.List, error) {
	deleted, err := c.base.Delete(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	c.evict(ctx, userID, deleted.ProjectID)
	return deleted, nil
}

func (c *ListCache) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	if err := c.base.DeleteByProject(ctx, projectID, userID); err != nil {
		return err
	}
	c.evict(ctx, userID, projectID)
	return nil
}

func (c *ListCache) load(ctx context.Context, key string) ([]models.List, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// redis trouble falls back to the repository
			c.logger.Warn("list cache read failed", "key", key, "error", err)
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var lists []models.List
	if err := json.Unmarshal(data, &lists); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return lists, true
}

func (c *ListCache) store(ctx context.Context, key string, lists []models.List) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(lists)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", "key", key, "error", err)
	}
}

func (c *ListCache) evict(ctx context.Context, userID string, projectID int64) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, listsKey(userID, projectID)).Err(); err != nil {
		c.logger.Warn("list cache evict failed", "project_id", projectID, "error", err)
	}
}

func listsKey(userID string, projectID int64) string {
	return fmt.Sprintf("lists:%s:%d", userID, projectID)
}

// NewRedisClient parses a redis:// URL and pings the server
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
