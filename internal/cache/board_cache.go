package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// BoardCache keeps the rendered full-board response in Redis, keyed by board
// id, so repeated board fetches skip the nested query. Any mutation under a
// board invalidates its entry. A nil *BoardCache is valid and disables
// caching, which is how the server degrades when Redis is unreachable or
// not configured.
type BoardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a ready cache. It returns nil when addr
// is empty or the server does not answer a ping within two seconds.
func New(addr, password string, ttl time.Duration) *BoardCache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &BoardCache{client: client, ttl: ttl}
}

func key(boardID string) string {
	return "board:" + boardID
}

func (c *BoardCache) Get(ctx context.Context, boardID string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key(boardID)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *BoardCache) Set(ctx context.Context, boardID string, payload []byte) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key(boardID), payload, c.ttl)
}

func (c *BoardCache) Invalidate(ctx context.Context, boardID string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key(boardID))
}
