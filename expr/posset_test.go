package expr

import "testing"

func TestPositionSetAddKeepsSortedAndDeduped(t *testing.T) {
	var s PositionSet
	var added bool
	seenOne := false
	for _, p := range []Pos{5, 1, 3, 1, 5, 2} {
		s, added = s.Add(p)
		if p == 1 {
			// second insertion of 1 should report no change
			if seenOne && added {
				t.Error("second Add(1) reported a change")
			}
			seenOne = true
		}
	}

	want := PositionSet{1, 2, 3, 5}
	if !s.Equal(want) {
		t.Fatalf("got %v, want %v", s, want)
	}
}

func TestPositionSetAddReportsChange(t *testing.T) {
	var s PositionSet
	s, did := s.Add(10)
	if !did {
		t.Error("first Add(10) should report a change")
	}
	s, did = s.Add(10)
	if did {
		t.Error("second Add(10) should report no change")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestPositionSetUnion(t *testing.T) {
	a := PositionSet{1, 3, 5}
	b := PositionSet{2, 3, 4}
	got, changed := a.Union(b)
	if !changed {
		t.Error("Union should report a change")
	}
	want := PositionSet{1, 2, 3, 4, 5}
	if !got.Equal(want) {
		t.Fatalf("Union = %v, want %v", got, want)
	}

	_, changed = got.Union(b)
	if changed {
		t.Error("Union of an already-contained set should report no change")
	}
}

func TestPositionSetRemove(t *testing.T) {
	s := PositionSet{1, 2, 3}
	s, did := s.Remove(2)
	if !did {
		t.Error("Remove(2) should report a change")
	}
	if !s.Equal(PositionSet{1, 3}) {
		t.Fatalf("got %v, want [1 3]", s)
	}
	_, did = s.Remove(99)
	if did {
		t.Error("Remove(99) on absent member should report no change")
	}
}

func TestPositionSetKeyOrderIndependent(t *testing.T) {
	a := PositionSet{1, 2, 3}
	b := PositionSet{3, 2, 1}
	bSorted, _ := PositionSet{}.Union(b)
	if a.Key() != bSorted.Key() {
		t.Error("Key() should be order-independent for structurally equal sets")
	}
}

func TestPositionSetCloneIsIndependent(t *testing.T) {
	a := PositionSet{1, 2, 3}
	c := a.Clone()
	c, _ = c.Add(4)
	if a.Equal(c) {
		t.Error("mutating the clone should not affect the original")
	}
	if a.Len() != 3 {
		t.Errorf("original Len() = %d, want 3", a.Len())
	}
}
