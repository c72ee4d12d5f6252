package blobstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/floroz/gavel-auctions/internal/domain/images"
)

// NewRedisClient connects to Redis and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	poolSize := runtime.NumCPU() * 8
	if poolSize > 512 {
		poolSize = 512
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       db,
		PoolSize: poolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rc, nil
}

// RedisStore implements images.Store on plain Redis string keys.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore namespaces every filename under prefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(filename string) string {
	return s.prefix + filename
}

func (s *RedisStore) Put(ctx context.Context, filename string, data []byte) error {
	if err := s.client.Set(ctx, s.key(filename), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", filename, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(filename)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, images.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, filename string) error {
	n, err := s.client.Del(ctx, s.key(filename)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", filename, err)
	}
	if n == 0 {
		return images.ErrImageNotFound
	}
	return nil
}
