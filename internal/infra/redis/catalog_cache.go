package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"onetime-quiz-service/internal/domain"
)

const catalogKey = "quiz:catalog"

// CatalogSource loads the question catalog from a backing store (e.g., Postgres).
type CatalogSource interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
}

// CatalogCache keeps the full catalog as a JSON blob in Redis and falls back
// to the source on cache miss. The catalog is always read and scored as a
// unit, so a single key is enough.
type CatalogCache struct {
	client *redis.Client
	source CatalogSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogCache(client *redis.Client, source CatalogSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := c.fromCache(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.fromCache(ctx); ok {
			return questions, nil
		}

		questions, err := c.source.ListQuestions(ctx)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(questions); err == nil {
			// best-effort: a failed SET just means the next call loads again
			_ = c.client.Set(ctx, catalogKey, data, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *CatalogCache) fromCache(ctx context.Context) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
