package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sessionID, identifier string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(sessionID), identifier, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
