package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
)

// CatalogCache stores the catalog as JSON under quiz:catalog:{name} and falls
// back to a loader on cache miss. Replicas share one copy per TTL window.
type CatalogCache struct {
	client *redis.Client
	loader app.CatalogLoader
	name   string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogCache(client *redis.Client, loader app.CatalogLoader, name string, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		loader: loader,
		name:   name,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	if cat, ok := c.fromCache(ctx); ok {
		return cat, nil
	}

	result, err, _ := c.sf.Do(c.name, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cat, ok := c.fromCache(ctx); ok {
			return cat, nil
		}

		cat, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(cat.Data()); err == nil {
			// best effort, a failed write only costs another load
			_ = c.client.Set(ctx, c.key(), raw, c.ttlWithJitter()).Err()
		}
		return cat, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Catalog), nil
}

// fromCache treats unreadable or invalid cached content as a miss.
func (c *CatalogCache) fromCache(ctx context.Context) (*domain.Catalog, bool) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		return nil, false
	}
	var data domain.CatalogData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	cat, err := domain.NewCatalog(data)
	if err != nil {
		return nil, false
	}
	return cat, true
}

func (c *CatalogCache) key() string {
	return "quiz:catalog:" + c.name
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
