// Package cache memoizes indicator results for repeated identical requests.
package cache

import (
	"encoding/binary"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/zeebo/xxh3"
)

const (
	// DefaultTTL is how long a cached result stays valid.
	DefaultTTL = 5 * time.Second
	// DefaultMaxEntries bounds the number of cached results.
	DefaultMaxEntries = 100
	// evictFraction of the entries, oldest first, is dropped when the cache is full.
	evictFraction = 0.2
)

type Cache interface {
	Reset()
}

// Key identifies one calculation: the indicator, its resolved parameters and a
// fingerprint of every input column.
type Key struct {
	Indicator   types.IndicatorType
	Params      types.IndicatorParams
	Fingerprint uint64
}

type entry struct {
	result    types.IndicatorResult
	createdAt time.Time
}

// ResultCache is a TTL bounded, size bounded result cache. It stores and
// returns deep copies, so callers may freely modify what they get back.
type ResultCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	entries    map[Key]entry
}

// NewResultCache creates a cache. Non-positive arguments select the defaults.
func NewResultCache(ttl time.Duration, maxEntries int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &ResultCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[Key]entry),
	}
}

// NewKey fingerprints the input columns with xxh3. Each column is hashed
// with its length so that moving a value between columns changes the key.
func NewKey(indicator types.IndicatorType, params types.IndicatorParams, in types.SeriesInput) Key {
	h := xxh3.New()
	buf := make([]byte, 8)

	for _, column := range [][]float64{in.Close, in.High, in.Low, in.Volume} {
		binary.LittleEndian.PutUint64(buf, uint64(len(column)))
		_, _ = h.Write(buf)

		for _, v := range column {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			_, _ = h.Write(buf)
		}
	}

	return Key{
		Indicator:   indicator,
		Params:      params,
		Fingerprint: h.Sum64(),
	}
}

// Get returns a copy of the cached result for key, if present and not expired.
func (c *ResultCache) Get(key Key) (types.IndicatorResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return types.IndicatorResult{}, false
	}

	if c.expired(e) {
		delete(c.entries, key)

		return types.IndicatorResult{}, false
	}

	return e.result.Clone(), true
}

// Set stores a copy of result under key.
func (c *ResultCache) Set(key Key, result types.IndicatorResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict()
	}

	c.entries[key] = entry{
		result:    result.Clone(),
		createdAt: c.now(),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Reset implements Cache.
func (c *ResultCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]entry)
}

func (c *ResultCache) expired(e entry) bool {
	return c.now().Sub(e.createdAt) > c.ttl
}

// evict drops expired entries and, if the cache is still full, the oldest
// fifth of what remains. Must be called with mu held.
func (c *ResultCache) evict() {
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.maxEntries {
		return
	}

	keys := make([]Key, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].createdAt.Before(c.entries[keys[j]].createdAt)
	})

	count := int(math.Ceil(float64(len(keys)) * evictFraction))
	for _, key := range keys[:count] {
		delete(c.entries, key)
	}
}
