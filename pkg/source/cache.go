package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/arremate/leilao-finder/pkg/types"
)

// CachedSource is a read-through Redis cache in front of another source.
// Cache failures degrade to the inner source, they never fail a listing
// fetch.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewCachedSource(inner Source, addr, password string, db int, ttl time.Duration, log *slog.Logger) *CachedSource {
	if log == nil {
		log = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &CachedSource{inner: inner, client: client, ttl: ttl, log: log}
}

func (c *CachedSource) ListItems(ctx context.Context, contentType types.ContentType) ([]types.Item, error) {
	key := "listings:" + string(contentType)
	data, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var items []types.Item
		if err = sonic.Unmarshal([]byte(data), &items); err == nil {
			return items, nil
		}
		c.log.Warn("dropping undecodable cache entry", "key", key, "err", err)
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn("listing cache read failed", "key", key, "err", err)
	}

	items, err := c.inner.ListItems(ctx, contentType)
	if err != nil {
		return nil, err
	}
	if encoded, err := sonic.Marshal(items); err == nil {
		if err = c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.log.Warn("listing cache write failed", "key", key, "err", err)
		}
	}
	return items, nil
}

func (c *CachedSource) GetOptionsForCategory(category string, contentType types.ContentType) []string {
	return c.inner.GetOptionsForCategory(category, contentType)
}

func (c *CachedSource) Close() error {
	return c.client.Close()
}
