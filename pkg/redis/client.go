package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/flagsapp/flags-backend/pkg/config"
)

// keyNamespace prefixes every key the app writes.
const keyNamespace = "flags"

type Client struct {
	rdb *goredis.Client
}

// Connect builds a client from either a redis URL or discrete address fields
// and verifies the connection.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	var opts *goredis.Options

	if cfg.URL != "" {
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := &Client{rdb: goredis.NewClient(opts)}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Key builds a namespaced key from its parts.
func Key(parts ...string) string {
	key := keyNamespace
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

// IncrWithTTL atomically increments key and, on first increment, arms its
// expiry. Returns the post-increment count.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// FixedWindowAllow implements a fixed-window counter: returns false once the
// key's count within ttl exceeds limit.
func (c *Client) FixedWindowAllow(ctx context.Context, key string, limit int64, ttl time.Duration) (bool, error) {
	count, err := c.IncrWithTTL(ctx, key, ttl)
	if err != nil {
		return false, err
	}
	return count <= limit, nil
}
