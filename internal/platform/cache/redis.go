package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/mystats/internal/platform/logging"
)

const redisScanBatch = 256

// RedisStore is a Cache shared across instances. Values are stored as JSON.
// Redis failures degrade to calling the loader.
type RedisStore[V any] struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
	flight    singleflight.Group
	logger    *logging.Logger
}

func NewRedisStore[V any](client redis.UniversalClient, namespace string, ttl time.Duration, logger *logging.Logger) *RedisStore[V] {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore[V]{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

// NewRedisClient parses a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis %s", opts.Addr)
	}
	return client, nil
}

func (s *RedisStore[V]) GetOrLoad(ctx context.Context, key string, loader Loader[V]) (V, bool, error) {
	var zero V
	if loader == nil {
		return zero, false, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, err := loader(ctx)
		return value, false, err
	}

	if value, ok := s.get(ctx, key); ok {
		return value, true, nil
	}

	loaded := false
	result, err, _ := s.flight.Do(key, func() (any, error) {
		loaded = true
		value, loadErr := loader(context.WithoutCancel(ctx))
		if loadErr != nil {
			return nil, loadErr
		}
		s.set(ctx, key, value)
		return value, nil
	})
	if err != nil {
		return zero, false, err
	}
	return result.(V), !loaded, nil
}

func (s *RedisStore[V]) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := escapeGlob(s.namespace+prefix) + "*"
	iter := s.client.Scan(ctx, 0, pattern, redisScanBatch).Iterator()

	batch := make([]string, 0, redisScanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == redisScanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return crerr.Wrapf(err, "delete redis keys prefix=%s", prefix)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return crerr.Wrapf(err, "scan redis keys prefix=%s", prefix)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return crerr.Wrapf(err, "delete redis keys prefix=%s", prefix)
		}
	}
	return nil
}

func (s *RedisStore[V]) get(ctx context.Context, key string) (V, bool) {
	var value V
	payload, err := s.client.Get(ctx, s.namespace+key).Bytes()
	if err != nil {
		if !crerr.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "redis cache read failed", "key", key, "error", err)
		}
		return value, false
	}
	if err := sonic.Unmarshal(payload, &value); err != nil {
		s.logger.WarnContext(ctx, "redis cache payload corrupt", "key", key, "error", err)
		return value, false
	}
	return value, true
}

func (s *RedisStore[V]) set(ctx context.Context, key string, value V) {
	payload, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, s.namespace+key, payload, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache write failed", "key", key, "error", err)
	}
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
