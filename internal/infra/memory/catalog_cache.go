package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
)

// CatalogCache keeps the last loaded catalog for a TTL so repeated loads
// (startup, validate, render) hit the backing store once.
type CatalogCache struct {
	loader app.CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	catalog   *domain.Catalog
	expiresAt time.Time
}

func NewCatalogCache(loader app.CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	if cat, ok := c.cached(c.clock()); ok {
		return cat, nil
	}

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		if cat, ok := c.cached(now); ok {
			return cat, nil
		}

		cat, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.catalog = cat
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return cat, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Catalog), nil
}

func (c *CatalogCache) cached(now time.Time) (*domain.Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.catalog == nil || !c.expiresAt.After(now) {
		return nil, false
	}
	return c.catalog, true
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
