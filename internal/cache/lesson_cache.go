// Package cache provides an optional Redis-backed cache for generated
// lessons, keyed by a hash of the generation parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"linguastory-backend/internal/config"
	"linguastory-backend/internal/logging"
	"linguastory-backend/internal/model"
)

// LessonCache stores generated lessons so identical requests skip the
// provider. Misses are never errors.
type LessonCache interface {
	Get(ctx context.Context, params model.LessonParams) (*model.Lesson, bool)
	Set(ctx context.Context, params model.LessonParams, lesson *model.Lesson)
}

// Key derives the cache key for a parameter set.
func Key(params model.LessonParams) string {
	raw, _ := json.Marshal(params)
	sum := sha256.Sum256(raw)
	return "lesson:" + hex.EncodeToString(sum[:])
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logging.Logger
}

// NewFromConfig builds a Redis cache, or a no-op cache when no address is
// configured.
func NewFromConfig(cfg config.CacheConfig, log *logging.Logger) LessonCache {
	if cfg.Addr == "" {
		return NopCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache{
		client: client,
		ttl:    time.Duration(cfg.TTLMinutes) * time.Minute,
		log:    log,
	}
}

func (c *redisCache) Get(ctx context.Context, params model.LessonParams) (*model.Lesson, bool) {
	raw, err := c.client.Get(ctx, Key(params)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnw("lesson cache read failed", "err", err)
		}
		return nil, false
	}

	var lesson model.Lesson
	if err := json.Unmarshal([]byte(raw), &lesson); err != nil {
		c.log.Warnw("lesson cache entry is malformed", "err", err)
		return nil, false
	}
	return &lesson, true
}

func (c *redisCache) Set(ctx context.Context, params model.LessonParams, lesson *model.Lesson) {
	raw, err := json.Marshal(lesson)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(params), raw, c.ttl).Err(); err != nil {
		c.log.Warnw("lesson cache write failed", "err", err)
	}
}

// NopCache disables caching.
type NopCache struct{}

func (NopCache) Get(context.Context, model.LessonParams) (*model.Lesson, bool) { return nil, false }
func (NopCache) Set(context.Context, model.LessonParams, *model.Lesson)        {}
