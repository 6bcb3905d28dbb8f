package storage

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisKV backs cart/wishlist persistence with Redis so sessions survive
// process restarts.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisKV) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
