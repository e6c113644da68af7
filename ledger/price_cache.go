package ledger

import (
	"sync"
	"time"
)

// MaxPriceMapSize bounds the memoized lookups kept per commodity. When the
// cache holds more entries than this, the oldest half is dropped before the
// next insertion.
const MaxPriceMapSize = 8

type priceKey struct {
	start     time.Time
	end       time.Time
	commodity *Commodity
}

type priceEntry struct {
	point PricePoint
	found bool
}

// priceCache memoizes FindPrice results, including misses, in insertion
// order. It is safe for concurrent use.
type priceCache struct {
	mu      sync.Mutex
	entries map[priceKey]priceEntry
	order   []priceKey
}

func (c *priceCache) get(key priceKey) (PricePoint, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e.point, e.found, ok
}

func (c *priceCache) put(key priceKey, point PricePoint, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil {
		c.entries = make(map[priceKey]priceEntry)
	}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = priceEntry{point: point, found: found}
		return
	}
	if len(c.order) > MaxPriceMapSize {
		for _, k := range c.order[:MaxPriceMapSize/2] {
			delete(c.entries, k)
		}
		c.order = append(c.order[:0], c.order[MaxPriceMapSize/2:]...)
	}
	c.entries[key] = priceEntry{point: point, found: found}
	c.order = append(c.order, key)
}

func (c *priceCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.order = nil
}

func (c *priceCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.order)
}
