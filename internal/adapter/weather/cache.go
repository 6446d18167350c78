package weather

import (
	"context"
	"fmt"
	"sync"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
)

// CachedGateway wraps a WeatherGateway with an in-memory LRU cache over
// historical series. Snapshot calls pass through; the scheduler already
// rate-limits them, and current conditions must stay fresh.
type CachedGateway struct {
	inner   domain.WeatherGateway
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedGateway creates a cache decorator around a weather gateway.
func NewCachedGateway(inner domain.WeatherGateway, maxEntries int, metrics *observability.Metrics) *CachedGateway {
	return &CachedGateway{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGateway) Snapshot(ctx context.Context) (domain.WeatherSnapshot, error) {
	return c.inner.Snapshot(ctx)
}

func (c *CachedGateway) HistoricalDaily(ctx context.Context, city string, years int) ([]domain.DailyWeather, error) {
	key := fmt.Sprintf("hist:%s|%d", city, years)
	if series, ok := c.cache.get(key); ok {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return series, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	series, err := c.inner.HistoricalDaily(ctx, city, years)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty series so transient failures can be retried.
	if len(series) > 0 {
		c.cache.put(key, series)
	}
	return series, nil
}

// lruCache is a simple thread-safe LRU cache for daily weather series.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.DailyWeather
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.DailyWeather, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.DailyWeather) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
