// Package subset implements the two-way mapping between Glushkov position
// sets and DFA state ids that spec.md §3 calls the "subset cache": forward
// (set → id) for deduplication during construction, reverse (id → set) for
// on-the-fly extension and end-of-input anchor re-evaluation.
//
// Grounded on dfa/lazy/cache.go's Cache (map[StateKey]*State forward lookup,
// RWMutex-guarded for the on-the-fly matcher's concurrent-read path per
// spec.md §5).
package subset

import (
	"sync"

	"github.com/coregx/glushkondfa/expr"
)

// StateID identifies one DFA state — an index into the reverse table and
// the subject of the forward table's values.
type StateID uint32

// Reserved ids, matching spec.md §3's "Reserved ids" exactly.
const (
	// Reject is the absorbing sink. Never stored as a cache entry;
	// complementation adds its sink as a plain DFA state instead.
	Reject StateID = 0xFFFFFFFF
	// Undef marks "no state yet" — used by on-the-fly matching for
	// transitions not yet computed.
	Undef StateID = 0xFFFFFFFE
	// Start is always state id 0 (spec.md §3's subset-cache invariant).
	Start StateID = 0
)

type entry struct {
	set expr.PositionSet
	id  StateID
}

// Cache is the subset cache: forward set→id for deduplication, reverse
// id→set for later extension. Safe for concurrent use; the eager
// construction driver (dfa/builder.go) uses it single-threaded, while the
// on-the-fly matcher (dfa/onthefly.go) may extend it under its own lock per
// spec.md §5's "must be serialized externally or guarded by a per-DFA lock".
type Cache struct {
	mu      sync.RWMutex
	buckets map[uint64][]entry
	reverse map[StateID]expr.PositionSet
	nextID  StateID
}

// New creates an empty subset cache.
func New() *Cache {
	return &Cache{
		buckets: make(map[uint64][]entry),
		reverse: make(map[StateID]expr.PositionSet),
		nextID:  Start,
	}
}

// Lookup returns the id already assigned to set, if any.
func (c *Cache) Lookup(set expr.PositionSet) (StateID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.buckets[set.Key()] {
		if e.set.Equal(set) {
			return e.id, true
		}
	}
	return 0, false
}

// Insert assigns the next sequential id to set and records it in both
// directions. The caller must have already confirmed (via Lookup) that set
// is not present; Insert does not itself deduplicate.
func (c *Cache) Insert(set expr.PositionSet) StateID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	key := set.Key()
	c.buckets[key] = append(c.buckets[key], entry{set: set.Clone(), id: id})
	c.reverse[id] = set.Clone()
	return id
}

// GetOrInsert looks up set and inserts it if absent, returning (id, existed).
func (c *Cache) GetOrInsert(set expr.PositionSet) (StateID, bool) {
	if id, ok := c.Lookup(set); ok {
		return id, true
	}
	return c.Insert(set), false
}

// Set returns the position set assigned to id, or (nil, false) if id is not
// in the cache (e.g. Reject/Undef, or an id never allocated).
func (c *Cache) Set(id StateID) (expr.PositionSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.reverse[id]
	return s, ok
}

// Len returns the number of distinct states recorded.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reverse)
}

// NextID previews the id that the next Insert call will assign, without
// assigning it. Used by the construction driver to check the state-limit
// cap before allocating.
func (c *Cache) NextID() StateID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextID
}
