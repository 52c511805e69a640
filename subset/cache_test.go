package subset

import (
	"testing"

	"github.com/coregx/glushkondfa/expr"
)

func TestCacheInsertAndLookup(t *testing.T) {
	c := New()
	s := expr.PositionSet{1, 2, 3}

	id := c.Insert(s)
	if id != Start {
		t.Fatalf("first Insert: got id %d, want %d", id, Start)
	}

	got, ok := c.Lookup(s)
	if !ok || got != id {
		t.Fatalf("Lookup after Insert: got (%d, %v), want (%d, true)", got, ok, id)
	}
}

func TestCacheGetOrInsertDedups(t *testing.T) {
	c := New()
	a := expr.PositionSet{1, 2}
	b := expr.PositionSet{1, 2}

	id1, existed1 := c.GetOrInsert(a)
	if existed1 {
		t.Error("first GetOrInsert should not report existed")
	}
	id2, existed2 := c.GetOrInsert(b)
	if !existed2 {
		t.Error("second GetOrInsert of an equal set should report existed")
	}
	if id1 != id2 {
		t.Errorf("equal sets got different ids: %d vs %d", id1, id2)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheDistinctSetsGetDistinctIDs(t *testing.T) {
	c := New()
	id1 := c.Insert(expr.PositionSet{1})
	id2 := c.Insert(expr.PositionSet{2})
	if id1 == id2 {
		t.Error("distinct sets should not share an id")
	}
}

func TestCacheSetRoundTrips(t *testing.T) {
	c := New()
	s := expr.PositionSet{7, 8, 9}
	id := c.Insert(s)

	got, ok := c.Set(id)
	if !ok {
		t.Fatal("Set: expected ok=true for a known id")
	}
	if !got.Equal(s) {
		t.Fatalf("Set(%d) = %v, want %v", id, got, s)
	}

	_, ok = c.Set(Reject)
	if ok {
		t.Error("Set(Reject) should report ok=false")
	}
}

func TestCacheInsertClonesInput(t *testing.T) {
	c := New()
	s := expr.PositionSet{1, 2}
	id := c.Insert(s)

	s, _ = s.Add(99)

	got, _ := c.Set(id)
	if got.Equal(s) {
		t.Error("cache entry should be independent of later mutation of the caller's slice")
	}
}

func TestCacheNextIDPreviewsWithoutAllocating(t *testing.T) {
	c := New()
	before := c.NextID()
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 before any insert", c.Len())
	}
	c.Insert(expr.PositionSet{1})
	after := c.NextID()
	if after != before+1 {
		t.Errorf("NextID() after one insert = %d, want %d", after, before+1)
	}
}
