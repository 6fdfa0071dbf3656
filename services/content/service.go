package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"facestudio/utils"

	"go.uber.org/zap"
)

const defaultCacheTTL = 10 * time.Minute

func (s *DefaultContentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultContentService) ttl() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return defaultCacheTTL
}

// cached serves key from the cache or fills it with load. Cache trouble only costs a reload.
func cached[T any](ctx context.Context, s *DefaultContentService, key string, load func() (T, error)) (T, error) {
	if s.Cache != nil {
		raw, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			s.logger().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}

	v, err := load()
	if err != nil || s.Cache == nil {
		return v, err
	}
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.Cache.Set(ctx, key, raw, s.ttl())
	}
	if err != nil {
		s.logger().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (s *DefaultContentService) invalidate(ctx context.Context, prefix string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.DeletePrefix(ctx, prefix); err != nil {
		s.logger().Warn("Cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// pageBounds clamps page like a paginator that serves the last page for out-of-range requests.
func pageBounds(page, size, total int) (int, int) {
	if page < 1 {
		page = 1
	}
	if total > 0 {
		last := (total + size - 1) / size
		if page > last {
			page = last
		}
	}
	return page, (page - 1) * size
}

func treatmentKey(parts ...any) string {
	return "content:treatments:" + fmt.Sprint(parts...)
}

func articleKey(kind string, parts ...any) string {
	return "content:" + kind + ":" + fmt.Sprint(parts...)
}
