package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a TTL cache in front of a quote provider. Entries older than
// the TTL are never served, only refreshed. Failed lookups are never
// cached, so the next call retries the provider immediately.
type Cache struct {
	provider Provider
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]Quote

	group singleflight.Group
	now   func() time.Time
}

func NewCache(provider Provider, ttl time.Duration) *Cache {
	return &Cache{
		provider: provider,
		ttl:      ttl,
		entries:  make(map[string]Quote),
		now:      time.Now,
	}
}

// Get returns a quote no older than the TTL, refreshing from the
// provider when needed. Concurrent requests for the same symbol share a
// single provider call.
func (c *Cache) Get(ctx context.Context, symbol string) (Quote, error) {
	if quote, ok := c.lookupFresh(symbol); ok {
		return quote, nil
	}

	result, err, _ := c.group.Do(symbol, func() (interface{}, error) {
		// Another flight may have refreshed the entry while this
		// call waited on the group lock.
		if quote, ok := c.lookupFresh(symbol); ok {
			return quote, nil
		}

		quote, err := c.provider.Lookup(ctx, symbol)
		if err != nil {
			return Quote{}, fmt.Errorf("%w: lookup failed for %s: %v", ErrUnavailable, symbol, err)
		}

		quote.Symbol = symbol
		quote.FetchedAt = c.now()

		c.mu.Lock()
		c.entries[symbol] = quote
		c.mu.Unlock()

		slog.Debug("Quote refreshed", "symbol", symbol, "strike", quote.Strike.String(), "price", quote.Price.String())

		return quote, nil
	})
	if err != nil {
		return Quote{}, err
	}

	return result.(Quote), nil
}

func (c *Cache) lookupFresh(symbol string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	quote, ok := c.entries[symbol]
	if !ok {
		return Quote{}, false
	}
	if c.now().Sub(quote.FetchedAt) >= c.ttl {
		return Quote{}, false
	}
	return quote, true
}

// Len reports the number of entries currently held, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
