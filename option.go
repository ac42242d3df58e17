package pseudolru

type (
	// Option configures a [Cache] during [New].
	Option[Value any] func(*Cache[Value])
	// Random supplies draw positions for the eviction search.
	// It is only ever called while the cache holds its structural
	// lock, so implementations need no synchronization of their own.
	// A *math/rand.Rand satisfies Random.
	Random interface {
		// Intn returns a non-negative pseudo-random number in [0,n).
		Intn(n int) int
	}
)

// WithSampleSize sets how many slots each eviction search samples.
// Wider searches approximate true LRU more closely at a higher
// per-eviction cost, and raise the capacity floor checked by [New].
// Values below one are ignored.
func WithSampleSize[Value any](n int) Option[Value] {
	return func(c *Cache[Value]) {
		if n >= 1 {
			c.sampleSize = n
		}
	}
}

// WithRandom replaces the eviction search's sampler.
// Pass a seeded source to make eviction order reproducible.
func WithRandom[Value any](rng Random) Option[Value] {
	return func(c *Cache[Value]) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// OnEvict registers a callback receiving each live payload the cache
// drops. It runs while the cache holds its structural lock and must
// not call back into the cache or its Items.
func OnEvict[Value any](fn func(Value)) Option[Value] {
	return func(c *Cache[Value]) {
		c.onEvict = fn
	}
}
