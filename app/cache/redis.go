package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/source"
)

const keyPrefix = "collection:"

// Cache keeps collection snapshots in Redis hashes. Keys expire after
// retention so abandoned types do not linger.
type Cache struct {
	client    *redis.Client
	retention time.Duration
}

func NewCache(ctx context.Context, addr string, retention time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", addr)

	return &Cache{
		client:    client,
		retention: retention,
	}, nil
}

func (c *Cache) GetSnapshot(ctx context.Context, t content.Type) (*source.Snapshot, error) {
	key := GenerateCollectionKey(t)

	fields, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	snapshot, err := parseSnapshot(t, fields)
	if err != nil {
		// Unreadable entries are dropped and treated as a miss.
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			slog.Warn("Failed to delete invalid snapshot", "key", key, "error", delErr)
		}
		return nil, nil
	}

	return snapshot, nil
}

func (c *Cache) PutSnapshot(ctx context.Context, snapshot source.Snapshot) error {
	key := GenerateCollectionKey(snapshot.Type)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"payload", snapshot.Payload,
			"fetched_at", snapshot.FetchedAt.UnixMilli())
		if c.retention > 0 {
			pipe.Expire(ctx, key, c.retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func GenerateCollectionKey(t content.Type) string {
	return keyPrefix + string(t)
}

func parseSnapshot(t content.Type, fields map[string]string) (*source.Snapshot, error) {
	payload, ok := fields["payload"]
	if !ok {
		return nil, errors.New("missing payload")
	}

	millis, err := strconv.ParseInt(fields["fetched_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid fetched_at: %w", err)
	}

	return &source.Snapshot{
		Type:      t,
		Payload:   []byte(payload),
		FetchedAt: time.UnixMilli(millis).UTC(),
	}, nil
}
