package pseudolru

import (
	"math"
	"sync"
	"sync/atomic"
)

// notCached marks a handle that holds no payload. It doubles as the
// age floor: an empty handle loses every age comparison, so the
// eviction search reclaims abandoned slots before touching live ones.
const notCached = math.MinInt64

// An Item is the cache's handle for one admitted payload.
// Callers keep Items in their own structures and ask each one for its
// payload when needed; the cache may empty any Item between accesses.
// Items are created by [Cache.Admit] and remain usable for the life of
// the program, cached or not.
//
// Payload access goes through the Item's own lock and never the
// cache's structural lock, so reads stay cheap under eviction load.
type Item[Value any] struct {
	cache    *Cache[Value]
	value    Value
	lastUsed atomic.Int64
	mu       sync.Mutex
	inserted bool // Guarded by cache.mu, not mu.
}

// Get returns the payload if it is still cached, refreshing its
// recency so the eviction search sees it as just used;
// otherwise it returns the zero value and false.
// Get does not count toward the cache's hit/miss ratios; see
// [Item.Load].
func (item *Item[Value]) Get() (Value, bool) {
	item.mu.Lock()
	defer item.mu.Unlock()
	if item.lastUsed.Load() == notCached {
		var zero Value
		return zero, false
	}
	item.lastUsed.Store(item.cache.nextStamp())
	return item.value, true
}

// Load returns the cached payload if present, counting a hit.
// Otherwise it counts a miss and calls fetch, caching and returning
// the value on success.
// If fetch returns an error, the value is not cached.
//
// fetch runs outside of every lock: concurrent Loads on an empty Item
// may each invoke it, and the last result wins. Callers that need
// exactly-once creation must serialize around the Item themselves.
func (item *Item[Value]) Load(fetch func() (Value, error)) (Value, error) {
	if value, cached := item.Get(); cached {
		item.cache.hits.Add(1)
		return value, nil
	}
	item.cache.misses.Add(1)
	value, err := fetch()
	if err != nil {
		return value, err
	}
	item.Set(value)
	return value, nil
}

// Set caches value on the handle, stamping it as just used.
// The first Set of an Item's life claims a cache slot, evicting
// another entry if the cache is full; later Sets refill the handle
// in place and never claim a second slot, even after the cache has
// recycled the original one. A refilled Item whose slot was recycled
// is readable but no longer counts against capacity.
func (item *Item[Value]) Set(value Value) {
	cache := item.cache
	cache.mu.Lock()
	defer cache.mu.Unlock()
	stamp := cache.nextStamp()
	item.mu.Lock()
	item.value = value
	item.lastUsed.Store(stamp)
	item.mu.Unlock()
	if !item.inserted {
		item.inserted = true
		cache.place(item)
	}
}

// Invalidate drops the payload, reporting whether one was present.
// The handle stays usable: a later Set or Load refills it.
// The slot it occupied is reclaimed lazily, the next time an eviction
// search or resize encounters it.
func (item *Item[Value]) Invalidate() bool {
	_, had := item.drop()
	return had
}

// drop empties the handle and returns the payload it held.
func (item *Item[Value]) drop() (Value, bool) {
	item.mu.Lock()
	defer item.mu.Unlock()
	var zero Value
	if item.lastUsed.Load() == notCached {
		return zero, false
	}
	value := item.value
	item.value = zero
	item.lastUsed.Store(notCached)
	return value, true
}

// Cached reports whether the handle currently holds a payload.
func (item *Item[Value]) Cached() bool {
	return item.lastUsed.Load() != notCached
}

// olderThan reports whether item was used less recently than other.
// Empty handles are older than everything.
func (item *Item[Value]) olderThan(other *Item[Value]) bool {
	return item.lastUsed.Load() < other.lastUsed.Load()
}

// newerThan is olderThan's complement, shaped for [minmax.Partial].
func (item *Item[Value]) newerThan(other *Item[Value]) bool {
	return other.olderThan(item)
}
