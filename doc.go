// Package pseudolru implements a keyless [Cache] of opaque payloads
// with sampled pseudo-LRU replacement.
//
// Instead of keeping entries in an exact recency order, the cache lays
// them out in a flat slot array and finds eviction victims by
// Monte-Carlo search: a small trailing candidate zone accumulates the
// oldest entries seen so far, and every search samples a handful of
// further slots, trading any older find into the zone. Replacement
// cost is constant in capacity, the read path shares no ordering
// state, and the entry evicted is the approximately (not exactly)
// least recently used.
//
// Callers hold [Item] handles in their own structures; the cache keeps
// no key index and may empty any handle between accesses, at which
// point the holder regenerates the payload (usually via [Item.Load]).
//
// Glossary and invariants (intended for maintainers):
//
//   - Item / handle
//
//     Wrapper binding one payload to one cache. Holds the payload, its
//     last-used stamp, and its own lock. An Item claims a slot on its
//     first Set and never a second one.
//
//   - Clock / stamp
//
//     A shared atomic counter incremented on every access and
//     admission. Within one epoch (between Clears), a higher stamp
//     always means more recently used. Empty handles carry the
//     minimum stamp, making them the oldest things in existence.
//
//   - Candidate zone
//
//     The trailing [CandidateZoneSize] slots. Partially ordered after
//     every structural change: newest candidate at the zone's first
//     slot, oldest at the array tail. The tail is always the current
//     best eviction victim.
//
//   - Ring
//
//     Every slot before the zone. Filled and drained circularly by the
//     cursor.
//
//   - Cursor
//
//     The next slot an admission claims. Starts at the array tail and
//     walks down once through everything (which is how the zone first
//     fills, and why the oldest entries settle nearest the tail), then
//     wraps within the ring forever after. On a full cache the cursor
//     slot holds the oldest ring entry; eviction swaps the victim into
//     it so the following admission overwrites only emptied handles.
//
//   - Recently-created third
//
//     The third of the ring just above the cursor, holding the newest
//     admissions. Eviction never samples it, so fresh entries cannot
//     be evicted the instant they arrive.
//
//   - Tombstone
//
//     A handle emptied by [Item.Invalidate] that still occupies its
//     slot and counts toward Len. Its minimum stamp loses every age
//     comparison, so searches and resizes reclaim tombstones before
//     touching live entries.
//
// Locking:
//
//   - One structural lock serializes admission, eviction, clearing,
//     resizing, and the sampler.
//
//   - Each Item's own lock guards its payload; reads refresh recency
//     through the shared atomic clock and never take the structural
//     lock.
//
//   - Lock order is cache then item, never the reverse; [Item.Load]
//     runs its fetch function outside both, accepting that concurrent
//     Loads of an empty Item may fetch twice.
//
// Counts:
//
//   - size counts occupied slots (tombstones included);
//     0 <= size <= capacity, and admission evicts exactly one entry
//     when size == capacity.
//
//   - Hits and misses count only [Item.Load] outcomes; [Item.Get] is
//     deliberately silent so probing a handle does not skew ratios.
package pseudolru
