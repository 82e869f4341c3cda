package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"gameguide-backend/pkg/kv"
)

// RedisStore implements kv.Store on top of a single Redis logical DB.
type RedisStore struct {
	Client *redis.Client
	name   string
}

var _ kv.Store = (*RedisStore)(nil)

// NewRedisClient builds a pooled client; it does not dial until first use.
func NewRedisClient(host, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// NewRedisStore wraps client as a named namespace ("guides", "metadata", "admin").
// The name only shows up in logs and errors.
func NewRedisStore(client *redis.Client, name string) *RedisStore {
	return &RedisStore{Client: client, name: name}
}

func (r *RedisStore) Connect(ctx context.Context) error {
	log.Info().Str("store", r.name).Msg("[REDIS] Connecting to Redis...")

	if err := r.Ping(ctx); err != nil {
		return err
	}

	log.Info().Str("store", r.name).Msg("[REDIS] Connected successfully")
	return nil
}

func (r *RedisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%s: get %s: %w", r.name, key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%s: decode %s: %w", r.name, key, err)
	}
	return true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", r.name, key, err)
	}

	if ttl < 0 {
		ttl = 0
	}

	if err := r.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("%s: set %s: %w", r.name, key, err)
	}
	return nil
}

func (r *RedisStore) SetKeepTTL(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: encode %s: %w", r.name, key, err)
	}

	if err := r.Client.Set(ctx, key, raw, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("%s: set %s: %w", r.name, key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: delete: %w", r.name, err)
	}
	return nil
}

func (r *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.Client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: ttl %s: %w", r.name, key, err)
	}
	return ttl, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if r.Client == nil {
		return kv.ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: redis ping failed: %w", r.name, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
