package shared

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"inn/shared/cache"
	"inn/shared/constant"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins the given parts into a namespaced cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, cacheKeySeparator)
}

// BuildCacheKeyWithQuery builds a cache key whose suffix encodes the given query shapes,
// so distinct pagination/filter combinations occupy distinct cache entries.
func BuildCacheKeyWithQuery(prefix string, queries ...any) string {
	parts := []string{prefix}

	for _, query := range queries {
		encoded, err := json.Marshal(query)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode cache key query part")

			continue
		}

		parts = append(parts, string(encoded))
	}

	return strings.Join(parts, cacheKeySeparator)
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}
