package dfa

import (
	"testing"

	"github.com/coregx/glushkondfa/expr"
	"github.com/coregx/glushkondfa/subset"
)

func TestOnTheFlyMatchOnIncompleteDFA(t *testing.T) {
	tree, err := expr.Compile("[a-z]{0,20}x", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("expr.Compile: %v", err)
	}
	d, buildErr := Build(tree, DefaultOptions().WithStateLimit(2))
	if buildErr == nil {
		t.Fatal("expected a state-limit error for this pattern with StateLimit=2")
	}

	res := d.Match([]byte("abcdefghijx"))
	if !res.Matched {
		t.Error("incomplete DFA should still report a match via on-the-fly fallback")
	}
	if res.End != -1 {
		t.Errorf("incomplete DFA's Match.End = %d, want -1 (span unavailable)", res.End)
	}

	res = d.Match([]byte("abcdefghij"))
	if res.Matched {
		t.Error("incomplete DFA should correctly report no match for input missing the trailing x")
	}
}

func TestOnTheFlyMatchBuildsStatesLazilyFromScratch(t *testing.T) {
	tree, err := expr.Compile("foo", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("expr.Compile: %v", err)
	}
	d := &DFA{tree: tree, opts: DefaultOptions(), cache: subset.New()}

	if !d.OnTheFlyMatch([]byte("foo")) {
		t.Error("OnTheFlyMatch(foo) should match starting from zero states")
	}
	if d.Len() == 0 {
		t.Error("OnTheFlyMatch should have lazily allocated at least the start state")
	}
	if d.OnTheFlyMatch([]byte("bar")) {
		t.Error("OnTheFlyMatch(bar) should not match")
	}
}
