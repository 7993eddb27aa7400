package cache

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/data/redisStore"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

// RedisResultCache remembers finished extraction results keyed by the
// SHA-256 of the uploaded bytes, so re-uploading the same file does not
// pay for two more model calls.
type RedisResultCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisResultCache returns nil when redis is offline; the pipeline
// treats a nil cache as "no cache" and keeps working.
func GetRedisResultCache(ctx context.Context) *RedisResultCache {
	store := redisStore.GetRedisStore(ctx, config.RedisResultCache)
	if store == nil {
		return nil
	}
	return &RedisResultCache{
		store:  store,
		logger: logger_i.NewLogger("ResultCache"),
	}
}

func (c *RedisResultCache) GetResult(ctx context.Context, key string) (docModel.ExtractionResult, bool) {
	var result docModel.ExtractionResult

	value, err := c.store.Get(ctx, cacheKey(key))
	if c.store.IsNil(err) {
		return result, false
	} else if err != nil {
		c.logger.Warn("cache lookup failed", "error", err)
		return result, false
	}

	if err := json.Unmarshal([]byte(value), &result); err != nil {
		c.logger.Warn("cached result is corrupt, dropping it", "error", err)
		_ = c.store.Del(ctx, cacheKey(key))
		return docModel.ExtractionResult{}, false
	}
	return result, true
}

func (c *RedisResultCache) SaveResult(ctx context.Context, key string, result docModel.ExtractionResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("marshal result failed", "error", err)
		return
	}
	if err := c.store.Set(ctx, cacheKey(key), data, config.ResultCacheTTL); err != nil {
		c.logger.Warn("cache store failed", "error", err)
	}
}

func cacheKey(contentHash string) string {
	return "docscan:result:" + contentHash
}

// TestResultCache wires an externally constructed store (miniredis).
func TestResultCache(store *redisStore.Store) *RedisResultCache {
	return &RedisResultCache{
		store:  store,
		logger: logger_i.NewLogger("test result cache"),
	}
}
