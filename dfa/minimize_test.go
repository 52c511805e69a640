package dfa

import (
	"testing"

	"github.com/coregx/glushkondfa/expr"
)

func TestMinimizePreservesMatchResults(t *testing.T) {
	d := mustBuild(t, "(cat|car|cart)s?", DefaultOptions())

	inputs := []string{"cat", "cats", "car", "cars", "cart", "carts", "cow", ""}
	before := make([]Result, len(inputs))
	for i, in := range inputs {
		before[i] = d.Match([]byte(in))
	}

	if err := d.Minimize(); err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if !d.Minimized() {
		t.Error("Minimized() should report true after a successful Minimize")
	}

	for i, in := range inputs {
		after := d.Match([]byte(in))
		if after != before[i] {
			t.Errorf("Match(%q) changed after Minimize: before=%+v after=%+v", in, before[i], after)
		}
	}
}

func TestMinimizeCollapsesEquivalentStates(t *testing.T) {
	// In "(ab|cb)d" the states reached after "a" and after "c" are built
	// from different positions (the two b's) but have the same future
	// ("bd"); minimization should merge them and shrink the state count
	// relative to the unminimized automaton.
	d := mustBuild(t, "(ab|cb)d", DefaultOptions())
	before := d.Len()

	if err := d.Minimize(); err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if d.Len() >= before {
		t.Errorf("Len() did not shrink after Minimize: before=%d after=%d", before, d.Len())
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	d := mustBuild(t, "foo|bar|baz", DefaultOptions())
	if err := d.Minimize(); err != nil {
		t.Fatalf("first Minimize: %v", err)
	}
	n := d.Len()
	if err := d.Minimize(); err != nil {
		t.Fatalf("second Minimize: %v", err)
	}
	if d.Len() != n {
		t.Errorf("second Minimize changed state count: %d -> %d", n, d.Len())
	}
}

func TestMinimizeRefusesIncompleteDFA(t *testing.T) {
	tree, err := expr.Compile("[a-z]{0,20}x", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d, buildErr := Build(tree, DefaultOptions().WithStateLimit(2))
	if buildErr == nil {
		t.Fatal("expected a state-limit error for this pattern with StateLimit=2")
	}
	if err := d.Minimize(); err == nil {
		t.Fatal("Minimize on an incomplete DFA should return an error")
	}
}
