package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "postcraft:cache"

// RedisStore persists cache entries in Redis with a TTL matching the cache's
// retention window.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisEnvelope struct {
	UpdatedAt time.Time       `json:"updatedAt"`
	Data      json.RawMessage `json:"data"`
}

// NewRedisStore connects to Redis at addr. prefix may be empty.
func NewRedisStore(addr, password, prefix string) (*RedisStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis store addr is required")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
	}, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, time.Time{}, false, err
	}
	return env.Data, env.UpdatedAt, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, raw []byte, updatedAt time.Time, ttl time.Duration) error {
	env, err := json.Marshal(redisEnvelope{UpdatedAt: updatedAt, Data: raw})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), env, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
