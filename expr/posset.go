package expr

import (
	"hash/fnv"
	"sort"
)

// PositionSet is an ordered, deduplicated set of Pos values: one DFA state's
// worth of Glushkov positions. Equality between two sets is structural
// (same members), which is exactly "denotes the same DFA state" per
// spec.md §3.
//
// Kept sorted so that Key() is order-independent without re-sorting on every
// call, mirroring the teacher's acquireStateSet/ToSlice pattern in
// dfa/lazy/builder.go (closure computed via a scratch set, then flattened to
// a sorted slice for hashing).
type PositionSet []Pos

// NewPositionSet returns an empty set with the given capacity hint.
func NewPositionSet(capacity int) PositionSet {
	return make(PositionSet, 0, capacity)
}

// Contains reports whether p is a member.
func (s PositionSet) Contains(p Pos) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= p })
	return i < len(s) && s[i] == p
}

// Add inserts p if not already present, keeping the set sorted. Returns the
// (possibly unchanged) set and whether an insertion happened.
func (s PositionSet) Add(p Pos) (PositionSet, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= p })
	if i < len(s) && s[i] == p {
		return s, false
	}
	s = append(s, NoPos)
	copy(s[i+1:], s[i:])
	s[i] = p
	return s, true
}

// Union inserts every member of other into s, returning the (possibly
// reallocated) result and whether anything new was added.
func (s PositionSet) Union(other PositionSet) (PositionSet, bool) {
	added := false
	for _, p := range other {
		var did bool
		s, did = s.Add(p)
		added = added || did
	}
	return s, added
}

// Remove deletes p if present, keeping the set sorted. Returns the
// (possibly unchanged) set and whether a removal happened.
func (s PositionSet) Remove(p Pos) (PositionSet, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= p })
	if i >= len(s) || s[i] != p {
		return s, false
	}
	s = append(s[:i], s[i+1:]...)
	return s, true
}

// Clone returns an independent copy.
func (s PositionSet) Clone() PositionSet {
	out := make(PositionSet, len(s))
	copy(out, s)
	return out
}

// Len returns the number of members.
func (s PositionSet) Len() int { return len(s) }

// Key computes an order-independent structural hash of the set. Since the
// set is kept sorted, this is a straight FNV-1a fold over the member
// handles, matching the approach in dfa/lazy/state.go's ComputeStateKey.
func (s PositionSet) Key() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, p := range s {
		buf[0] = byte(p)
		buf[1] = byte(p >> 8)
		buf[2] = byte(p >> 16)
		buf[3] = byte(p >> 24)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Equal reports whether two (sorted) sets contain exactly the same members.
func (s PositionSet) Equal(other PositionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
