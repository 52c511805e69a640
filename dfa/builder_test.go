package dfa

import (
	"testing"

	"github.com/coregx/glushkondfa/expr"
)

func mustBuild(t *testing.T, pattern string, opts Options) *DFA {
	t.Helper()
	tree, err := expr.Compile(pattern, expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("expr.Compile(%q): %v", pattern, err)
	}
	d, err := Build(tree, opts)
	if err != nil {
		t.Fatalf("Build(%q): %v", pattern, err)
	}
	return d
}

func TestBuildSimpleLiteral(t *testing.T) {
	d := mustBuild(t, "abc", DefaultOptions())
	if !d.Complete() {
		t.Fatal("expected a complete DFA for a bounded literal")
	}

	res := d.Match([]byte("abc"))
	if !res.Matched || res.End != 3 {
		t.Fatalf("Match(abc) = %+v, want Matched=true End=3", res)
	}

	res = d.Match([]byte("abx"))
	if res.Matched {
		t.Fatalf("Match(abx) = %+v, want no match", res)
	}
}

func TestBuildAlternation(t *testing.T) {
	d := mustBuild(t, "cat|dog", DefaultOptions())

	for _, tc := range []struct {
		in   string
		want bool
		end  int
	}{
		{"cat", true, 3},
		{"dog", true, 3},
		{"cow", false, -1},
	} {
		res := d.Match([]byte(tc.in))
		if res.Matched != tc.want {
			t.Errorf("Match(%q).Matched = %v, want %v", tc.in, res.Matched, tc.want)
		}
		if tc.want && res.End != tc.end {
			t.Errorf("Match(%q).End = %d, want %d", tc.in, res.End, tc.end)
		}
	}
}

func TestBuildStarIsLeftmostLongestByDefault(t *testing.T) {
	d := mustBuild(t, "a*", DefaultOptions())
	res := d.Match([]byte("aaab"))
	if !res.Matched || res.End != 3 {
		t.Fatalf("Match(aaab) = %+v, want Matched=true End=3 (longest run of a's)", res)
	}
}

func TestBuildShortestMatch(t *testing.T) {
	d := mustBuild(t, "a*", DefaultOptions().WithShortestMatch(true))
	res := d.Match([]byte("aaab"))
	if !res.Matched || res.End != 0 {
		t.Fatalf("Match(aaab) with ShortestMatch = %+v, want Matched=true End=0", res)
	}
}

func TestBuildCharClass(t *testing.T) {
	d := mustBuild(t, "[a-z]+", DefaultOptions())
	res := d.Match([]byte("hello1"))
	if !res.Matched || res.End != 5 {
		t.Fatalf("Match(hello1) = %+v, want Matched=true End=5", res)
	}
}

func TestBuildNegatedCharClass(t *testing.T) {
	d := mustBuild(t, "[^0-9]+", DefaultOptions())
	res := d.Match([]byte("ab12"))
	if !res.Matched || res.End != 2 {
		t.Fatalf("Match(ab12) = %+v, want Matched=true End=2", res)
	}
}

func TestBuildAnchors(t *testing.T) {
	d := mustBuild(t, "^foo$", DefaultOptions())

	res := d.Match([]byte("foo"))
	if !res.Matched {
		t.Error("^foo$ should match \"foo\"")
	}

	res = d.Match([]byte("foobar"))
	// anchored at data[0]: "foo" matches the prefix, but $ requires being
	// at a line boundary (end of input or before the delimiter); "foobar"
	// has neither right after "foo".
	if res.Matched {
		t.Error("^foo$ should not match a prefix of \"foobar\"")
	}
}

func TestBuildStateLimitExceeded(t *testing.T) {
	tree, err := expr.Compile("[a-z]{0,20}x", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("expr.Compile: %v", err)
	}
	opts := DefaultOptions().WithStateLimit(2)
	d, err := Build(tree, opts)
	if err == nil {
		t.Fatal("expected ErrStateLimitExceeded for a 2-state cap on a wide pattern")
	}
	if d == nil {
		t.Fatal("Build should still return a usable (incomplete) DFA on state-limit overflow")
	}
	if d.Complete() {
		t.Error("Complete() should be false after a state-limit overflow")
	}
}

func TestBuildReverseMatch(t *testing.T) {
	d := mustBuild(t, "cba", DefaultOptions().WithReverseMatch(true))
	// Reverse mode scans right to left, so it anchors at the last byte and
	// expects the pattern's bytes in forward order to appear walking
	// backwards — i.e. it matches "abc" read backwards as "cba".
	data := []byte("abc")
	res := d.Match(data)
	if !res.Matched {
		t.Fatalf("Match(%q) reverse = %+v, want a match", data, res)
	}
}
