package dfa

import "testing"

func TestNonGreedyStarStopsAtFirstOpportunity(t *testing.T) {
	// a*?b on "aaab" must still consume all three a's before matching b
	// (there is only one place b can occur), but the leftmost-longest
	// split internally routes through the non-greedy twin machinery in
	// dfa/nongreedy.go rather than the plain Star twin.
	d := mustBuild(t, "a*?b", DefaultOptions())
	res := d.Match([]byte("aaab"))
	if !res.Matched || res.End != 4 {
		t.Fatalf("Match(aaab) = %+v, want Matched=true End=4", res)
	}
}

func TestNonGreedyQuestionPrefersSkipping(t *testing.T) {
	// a?? followed by a: on "a", the non-greedy optional should prefer NOT
	// consuming the 'a' itself, leaving the trailing literal 'a' to match.
	d := mustBuild(t, "a??a", DefaultOptions())
	res := d.Match([]byte("a"))
	if !res.Matched || res.End != 1 {
		t.Fatalf("Match(a) = %+v, want Matched=true End=1", res)
	}
}

func TestNonGreedyStarVsGreedyStarDifferOnShortestVsLongest(t *testing.T) {
	greedy := mustBuild(t, "a*b", DefaultOptions())
	nonGreedy := mustBuild(t, "a*?b", DefaultOptions())

	in := []byte("aaab")
	gRes := greedy.Match(in)
	ngRes := nonGreedy.Match(in)

	if !gRes.Matched || !ngRes.Matched {
		t.Fatalf("both should match %q: greedy=%+v nonGreedy=%+v", in, gRes, ngRes)
	}
	// Both are anchored at data[0] and "b" only occurs once, at index 3, so
	// the overall matched span ends up identical here; what differs is the
	// internal route (rewriteNonGreedy is exercised for the second case).
	if gRes.End != ngRes.End {
		t.Fatalf("End mismatch: greedy=%d nonGreedy=%d", gRes.End, ngRes.End)
	}
}
