package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"salon/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatch            = 100
	Nil                   = redis.Nil
)

// ErrNoExpiry rejects entries that would never expire.
var ErrNoExpiry = errors.New("cache entry needs a positive ttl")

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear unlinks every key matching pattern, one scan page at a time.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer scope.TraceIfError(&err)

	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, clearBatch).Result()
		if err != nil {
			return fmt.Errorf("scan %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", pattern).Int("keys", len(keys)).Msg("Failed to clear cache")

				return fmt.Errorf("unlink %s: %w", pattern, err)
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to delete cache entry")

		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// Get decodes the entry into value. A miss wraps Nil.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		scope.SetAttribute("cache.hit", false)

		if !errors.Is(err, redis.Nil) {
			scope.TraceError(err)
		}

		return fmt.Errorf("get %s: %w", key, err)
	}

	scope.SetAttribute("cache.hit", true)

	if s, ok := value.(*string); ok {
		*s = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Corrupt cache entry")

		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

// Save stores value for duration seconds; strings are stored raw, anything else as JSON.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if duration <= 0 {
		return fmt.Errorf("save %s: %w", key, ErrNoExpiry)
	}

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to write cache entry")

		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}

// Load returns the cached value under key, or calls loader and stores its
// result in the background. Loader errors are never cached.
func Load[T any](ctx context.Context, cache RedisCache, key string, ttl int, loader func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	err := cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, Nil) {
		log.Warn().Err(err).Str("key", key).Msg("Cache unavailable, loading from source")
	}

	value, err := loader(ctx)
	if err != nil {
		return value, err
	}

	go func() {
		if err := cache.Save(context.WithoutCancel(ctx), key, value, ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to save cache")
		}
	}()

	return value, nil
}
