package classify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/models"
)

const cacheTTL = 24 * time.Hour

// Cached fronts a Classifier with a Redis result cache keyed by content
// hash. Cache failures are logged and ignored; the cache never makes a
// run fail. Fallback results are not cached, so a later run retries the
// service for them.
type Cached struct {
	next Classifier
	rdb  *redis.Client
	log  *zap.Logger
}

func NewCached(next Classifier, rdb *redis.Client, log *zap.Logger) *Cached {
	return &Cached{next: next, rdb: rdb, log: log}
}

func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "drivemeta:classify:" + hex.EncodeToString(sum[:])
}

func (c *Cached) Classify(ctx context.Context, content string) (models.Classification, error) {
	key := cacheKey(content)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var result models.Classification
		if jerr := json.Unmarshal([]byte(cached), &result); jerr == nil {
			return result, nil
		}
		// unreadable entry, fall through and overwrite
	} else if err != redis.Nil {
		c.log.Warn("classification cache read failed", zap.Error(err))
	}

	result, err := c.next.Classify(ctx, content)
	if err != nil {
		return result, err
	}

	if !result.Fallback {
		if data, jerr := json.Marshal(result); jerr == nil {
			if serr := c.rdb.Set(ctx, key, data, cacheTTL).Err(); serr != nil {
				c.log.Warn("classification cache write failed", zap.Error(serr))
			}
		}
	}
	return result, nil
}
