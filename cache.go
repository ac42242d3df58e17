package pseudolru

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cachekit/go-pseudolru/internal/minmax"
)

const (
	// CandidateZoneSize is the number of trailing slots reserved as the
	// pool of eviction candidates.
	CandidateZoneSize = 16
	// DefaultSampleSize is the eviction search width used when
	// [WithSampleSize] is not given.
	DefaultSampleSize = 10
	// DefaultCapacity is used by [FromConfig] when the file names none.
	DefaultCapacity = 1024
	// MinimumCapacity defines the lowest capacity [New] accepts at the
	// default sample size. [WithSampleSize] moves the floor with it;
	// New reports the exact requirement in its error.
	MinimumCapacity = CandidateZoneSize + DefaultSampleSize + ringHeadroom

	// ringHeadroom keeps the ring wider than a single search's sample
	// count even after the protected third is carved out.
	ringHeadroom = 10
)

// Cache holds a fixed number of payloads and frees space by evicting
// the approximately least recently used one, found by Monte-Carlo
// search over a flat slot array rather than by exact access ordering.
// Methods are safe for concurrent use.
// Constructed by [New].
type Cache[Value any] struct {
	slots   []*Item[Value]
	rng     Random
	onEvict func(Value)
	cursor, size,
	sampleSize int
	stamp atomic.Int64
	hits, misses,
	evictions atomic.Uint64
	mu sync.Mutex
}

func capacityFloor(sampleSize int) int {
	return CandidateZoneSize + sampleSize + ringHeadroom
}

// New creates a [Cache] with the given capacity.
// Capacity must be at least [MinimumCapacity], or when [WithSampleSize]
// raises the search width, at least CandidateZoneSize+sampleSize+10.
func New[Value any](capacity int, options ...Option[Value]) (*Cache[Value], error) {
	cache := &Cache[Value]{
		sampleSize: DefaultSampleSize,
	}
	for _, apply := range options {
		apply(cache)
	}
	if floor := capacityFloor(cache.sampleSize); capacity < floor {
		return nil, minCapacityError(capacity, floor)
	}
	if cache.rng == nil {
		cache.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cache.slots = make([]*Item[Value], capacity)
	cache.cursor = capacity - 1
	return cache, nil
}

// Admit wraps value in a new [Item] and stores it, evicting the
// approximately least recently used payload when full. The returned
// handle is the only way to reach the payload again; the cache itself
// is deliberately keyless.
func (c *Cache[Value]) Admit(value Value) *Item[Value] {
	item := &Item[Value]{cache: c}
	item.lastUsed.Store(notCached)
	item.Set(value)
	return item
}

// Clear detaches every slot and starts a fresh clock epoch. Capacity
// and the hit/miss counters are untouched, and so are previously
// issued handles: an Item that was live before Clear still answers Get
// with its old payload even though the cache no longer tracks it.
// Use [Cache.EvictAll] to empty the handles too.
func (c *Cache[Value]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// EvictAll force-empties every tracked handle, then clears the cache.
func (c *Cache[Value]) EvictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.slots {
		if item != nil {
			c.discard(item)
		}
	}
	c.reset()
}

// reset reallocates the slot array. Caller must hold mu.
func (c *Cache[Value]) reset() {
	c.slots = make([]*Item[Value], len(c.slots))
	c.size = 0
	c.cursor = len(c.slots) - 1
	c.stamp.Store(0)
}

// Resize rebuilds the cache at newCapacity and returns how many
// payloads were evicted to fit. Requests below the construction floor
// are clamped up to it.
//
// Survivors are relaid deterministically in age order, oldest at the
// tail (the candidate zone convention), so shrinking sacrifices the
// oldest entries rather than running eviction searches. Tracked
// empty handles order as oldest of all and are shed first.
func (c *Cache[Value]) Resize(newCapacity int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if floor := capacityFloor(c.sampleSize); newCapacity < floor {
		newCapacity = floor
	}
	keep := make([]*Item[Value], 0, c.size)
	for _, item := range c.slots {
		if item != nil {
			keep = append(keep, item)
		}
	}
	slices.SortFunc(keep, func(a, b *Item[Value]) int {
		return cmp.Compare(a.lastUsed.Load(), b.lastUsed.Load())
	})
	var evicted int
	if overflow := len(keep) - newCapacity; overflow > 0 {
		for _, item := range keep[:overflow] {
			if _, had := c.discard(item); had {
				evicted++
			}
		}
		keep = keep[overflow:]
	}
	c.slots = make([]*Item[Value], newCapacity)
	for i, item := range keep {
		c.slots[newCapacity-1-i] = item
	}
	c.size = len(keep)
	if c.cursor = newCapacity - c.size - 1; c.cursor < 0 {
		c.cursor = newCapacity - CandidateZoneSize - 1
	}
	return evicted
}

// place claims the cursor slot for item and advances the cursor.
// The first pass over a fresh slot array walks all of it, tail first,
// so the earliest admissions settle nearest the tail; once the cursor
// wraps it stays inside the ring region, and the candidate zone is
// only ever touched by eviction swaps and resizes.
// Caller must hold mu.
func (c *Cache[Value]) place(item *Item[Value]) {
	if c.size == len(c.slots) {
		c.evictOne()
	}
	if debugging {
		occupant := c.slots[c.cursor]
		assert(occupant == nil || !occupant.Cached(),
			"placing over a slot that still holds a live entry")
	}
	c.slots[c.cursor] = item
	c.size++
	if c.cursor--; c.cursor < 0 {
		c.cursor = c.ringCapacity() - 1
	}
}

// evictOne empties the best candidate found by search and swaps it to
// the cursor slot so the next admission overwrites it. It does nothing
// unless the cache is full.
// Caller must hold mu.
func (c *Cache[Value]) evictOne() (Value, bool) {
	if c.size < len(c.slots) {
		var zero Value
		return zero, false
	}
	victim := c.findVictim()
	c.slots[victim], c.slots[c.cursor] = c.slots[c.cursor], c.slots[victim]
	c.size--
	value, had := c.discard(c.slots[c.cursor])
	c.orderCandidates()
	return value, had
}

// discard empties item, counting the eviction and notifying the
// callback when a live payload was dropped. Reclaiming an already
// empty handle counts as nothing.
// Caller must hold mu.
func (c *Cache[Value]) discard(item *Item[Value]) (Value, bool) {
	value, had := item.drop()
	if had {
		c.evictions.Add(1)
		if c.onEvict != nil {
			c.onEvict(value)
		}
	}
	return value, had
}

// findVictim runs the eviction search and returns the slot index of
// the approximately oldest entry. The cache must be full.
//
// The candidate zone is partially ordered so its tail holds the oldest
// known candidate. Each round samples one slot from the aged two
// thirds of the ring; a sample older than the current tail trades
// places with it and the zone is reordered. The displaced candidate
// stays live in the sampled ring slot.
// Caller must hold mu.
func (c *Cache[Value]) findVictim() int {
	if debugging {
		assert(c.size == len(c.slots),
			"eviction search on a cache below capacity")
	}
	c.orderCandidates()
	var (
		tail = len(c.slots) - 1
		// Ring positions run newest (just above the cursor) to oldest
		// (the cursor slot, reached as position size). The third nearest
		// the cursor is too recently created to be worth sampling.
		protected = c.ringCapacity() / 3
		low       = CandidateZoneSize + protected + 1
		high      = c.size + 1
	)
	for i := 0; i < c.sampleSize; i++ {
		slot := c.slotIndex(c.nextInRange(low, high))
		if c.slots[slot].olderThan(c.slots[tail]) {
			c.slots[slot], c.slots[tail] = c.slots[tail], c.slots[slot]
			c.orderCandidates()
		}
	}
	return tail
}

// orderCandidates restores the candidate zone invariant: newest
// candidate first, oldest at the tail, the middle unspecified.
// Caller must hold mu.
func (c *Cache[Value]) orderCandidates() {
	zone := len(c.slots) - CandidateZoneSize
	minmax.Partial(c.slots, zone, CandidateZoneSize, (*Item[Value]).newerThan)
}

// slotIndex maps a logical position onto the slot array.
//
// Positions below CandidateZoneSize address the candidate zone from
// its tail: position 0 is the oldest candidate. Every other position
// is a cursor-relative ring offset: position CandidateZoneSize+k
// addresses the slot k above the cursor, so k=1 is the newest
// admission, age rises with k, and position size wraps around to the
// cursor slot itself, which on a full cache holds the oldest ring
// entry.
// Caller must hold mu.
func (c *Cache[_]) slotIndex(position int) int {
	last := len(c.slots) - 1
	if position < CandidateZoneSize {
		return last - position
	}
	index := (c.cursor + position - CandidateZoneSize) % c.ringCapacity()
	if debugging {
		assert(index >= 0 && index <= last-CandidateZoneSize,
			"ring position mapped outside the ring region")
	}
	return index
}

// nextInRange draws a position in [low, high).
// Caller must hold mu; the sampler is not otherwise synchronized.
func (c *Cache[_]) nextInRange(low, high int) int {
	return low + c.rng.Intn(high-low)
}

// nextStamp returns a fresh value from the access clock. Stamps only
// grow within one clock epoch ([Cache.Clear] starts a new one), so a
// higher stamp always means a more recent access.
func (c *Cache[_]) nextStamp() int64 { return c.stamp.Add(1) }

func (c *Cache[_]) ringCapacity() int { return len(c.slots) - CandidateZoneSize }

// Len returns the number of occupied slots. Handles emptied by
// [Item.Invalidate] keep their slots, and count, until a search or
// resize reclaims them.
func (c *Cache[_]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Cap returns the slot count.
func (c *Cache[_]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Full reports whether every slot is occupied; the next admission will
// evict.
func (c *Cache[_]) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size == len(c.slots)
}

// Empty reports whether no slot is occupied.
func (c *Cache[_]) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size == 0
}

// Hits returns how many Loads were served from cache.
func (c *Cache[_]) Hits() uint64 { return c.hits.Load() }

// Misses returns how many Loads had to run their fetch function.
func (c *Cache[_]) Misses() uint64 { return c.misses.Load() }

// Evictions returns how many live payloads the cache has dropped,
// whether for admission space, [Cache.Resize], or [Cache.EvictAll].
func (c *Cache[_]) Evictions() uint64 { return c.evictions.Load() }

// HitRatio returns the fraction of Loads served from cache, or NaN
// before the first Load. HitRatio and MissRatio sum to one once any
// Load has happened.
func (c *Cache[_]) HitRatio() float64 {
	return ratio(c.hits.Load(), c.misses.Load())
}

// MissRatio returns the fraction of Loads that ran their fetch
// function, or NaN before the first Load.
func (c *Cache[_]) MissRatio() float64 {
	return ratio(c.misses.Load(), c.hits.Load())
}

func ratio(part, rest uint64) float64 {
	total := float64(part) + float64(rest)
	if total == 0 {
		return math.NaN()
	}
	return float64(part) / total
}
