package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lumenlearn/content-backend/internal/locales"
	"github.com/lumenlearn/content-backend/internal/logger"
	"github.com/lumenlearn/content-backend/internal/types"
)

// RenderCache caches resolved lesson renders per (lesson, requested locale).
// A nil *RenderCache is a no-op so local development can run without Redis.
type RenderCache struct {
	log      *logger.Logger
	rdb      *goredis.Client
	registry *locales.Registry
	ttl      time.Duration
}

func NewRenderCache(log *logger.Logger, registry *locales.Registry, addr string, ttl time.Duration) (*RenderCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RenderCache{
		log:      log.With("service", "RenderCache"),
		rdb:      rdb,
		registry: registry,
		ttl:      ttl,
	}, nil
}

func renderKey(lessonID uuid.UUID, locale string) string {
	return fmt.Sprintf("render:%s:%s", lessonID, locale)
}

func (c *RenderCache) Get(ctx context.Context, lessonID uuid.UUID, locale string) (*types.RenderedLesson, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, renderKey(lessonID, locale)).Bytes()
	if err != nil {
		return nil, false
	}
	var out types.RenderedLesson
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("Dropping undecodable cache entry", "lesson_id", lessonID, "locale", locale, "error", err)
		return nil, false
	}
	return &out, true
}

func (c *RenderCache) Set(ctx context.Context, rendered *types.RenderedLesson) {
	if c == nil || c.rdb == nil || rendered == nil {
		return
	}
	raw, err := json.Marshal(rendered)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, renderKey(rendered.LessonID, rendered.RequestedLocale), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", "lesson_id", rendered.LessonID, "error", err)
	}
}

// InvalidateLesson drops the cached render for every configured locale of a
// lesson. Called after every successful save.
func (c *RenderCache) InvalidateLesson(ctx context.Context, lessonID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := make([]string, 0, len(c.registry.List()))
	for _, l := range c.registry.List() {
		keys = append(keys, renderKey(lessonID, l.Code))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", "lesson_id", lessonID, "error", err)
	}
}

func (c *RenderCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
