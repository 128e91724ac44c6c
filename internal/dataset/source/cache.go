package source

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"covidboard/internal/dataset"
	"covidboard/internal/dataset/models"
	platformredis "covidboard/internal/platform/redis"
)

// CachedHTTP wraps an HTTP source with a Redis payload cache so restarts and
// admin reloads within the TTL reuse the last upstream drop instead of
// re-fetching it. Cache failures degrade to a direct fetch, never an error.
type CachedHTTP struct {
	next   *HTTP
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedHTTP builds the caching wrapper. A nil Redis client makes it a
// transparent pass-through.
func NewCachedHTTP(next *HTTP, client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *CachedHTTP {
	return &CachedHTTP{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedHTTP) Name() string { return c.next.Name() }

func (c *CachedHTTP) Load(ctx context.Context) ([]models.Observation, error) {
	if c.client == nil {
		return c.next.Load(ctx)
	}

	key := c.key()
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return decodeBytes(payload, c.next.schema, c.next.asOf)
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "dataset cache read failed, fetching upstream",
			"source", c.Name(),
			"error", err,
		)
	}

	payload, err = c.next.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "dataset cache write failed",
			"source", c.Name(),
			"error", err,
		)
	}
	return decodeBytes(payload, c.next.schema, c.next.asOf)
}

func (c *CachedHTTP) key() string {
	sum := sha256.Sum256([]byte(c.next.url))
	return fmt.Sprintf("covidboard:dataset:%s", hex.EncodeToString(sum[:8]))
}

func decodeBytes(payload []byte, schema dataset.Schema, asOf time.Time) ([]models.Observation, error) {
	return decode(bytes.NewReader(payload), schema, asOf)
}
