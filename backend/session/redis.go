package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *goredis.Client
}

func NewRedisStore(addr string, db int) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(userID), token, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, userID uint) (string, error) {
	val, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Client exposes the underlying connection so other components (the
// realtime bus) can share it.
func (s *RedisStore) Client() *goredis.Client {
	return s.rdb
}

func key(userID uint) string {
	return fmt.Sprintf("token:%d", userID)
}
