// Package cache keeps property search results in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "lightbnb:search"

// SearchCache is a read-through cache for property searches.
//
// Entries are namespaced by a generation counter; Invalidate bumps the
// counter so every older entry becomes unreachable and expires on its TTL.
type SearchCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewSearchCache creates a SearchCache whose entries live for ttl.
func NewSearchCache(client redis.Cmdable, ttl time.Duration, logger *zerolog.Logger) *SearchCache {
	return &SearchCache{client: client, ttl: ttl, logger: logger}
}

func generationKey() string {
	return keyPrefix + ":gen"
}

// searchKey derives the entry key for opts and limit under generation gen.
func searchKey(gen string, opts model.FilterOptions, limit int) (string, error) {
	raw, err := json.Marshal(struct {
		Options model.FilterOptions `json:"options"`
		Limit   int                 `json:"limit"`
	}{opts, limit})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%s:%s", keyPrefix, gen, hex.EncodeToString(sum[:])), nil
}

// Get returns the cached listings for opts and limit and whether there was
// a hit. The returned key names the slot under the generation current at the
// time of the read; pass it to Set so that a result read before an
// Invalidate lands in a slot nothing reads anymore.
func (c *SearchCache) Get(ctx context.Context, opts model.FilterOptions, limit int) (string, []model.PropertyListing, bool, error) {
	gen, err := c.client.Get(ctx, generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", nil, false, errors.Wrap(err, "failed to read search cache generation")
	}

	key, err := searchKey(gen, opts, limit)
	if err != nil {
		return "", nil, false, errors.Wrap(err, "failed to derive search cache key")
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return key, nil, false, nil
	}
	if err != nil {
		return key, nil, false, errors.Wrap(err, "failed to read search cache")
	}

	var listings []model.PropertyListing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return key, nil, false, errors.Wrap(err, "failed to decode cached search")
	}

	c.logger.Debug().Str("key", key).Msg("search cache hit")
	return key, listings, true, nil
}

// Set stores listings under a key previously returned by Get.
func (c *SearchCache) Set(ctx context.Context, key string, listings []model.PropertyListing) error {
	if key == "" {
		return errors.New("empty search cache key")
	}

	raw, err := json.Marshal(listings)
	if err != nil {
		return errors.Wrap(err, "failed to encode search results")
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write search cache")
	}
	return nil
}

// Invalidate makes every cached search stale.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey()).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate search cache")
	}
	return nil
}
