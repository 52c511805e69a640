package dfa

import (
	"testing"

	"github.com/coregx/glushkondfa/expr"
)

func TestOptimizeO2PopulatesAlterTransOnTwoTargetRows(t *testing.T) {
	d := mustBuild(t, "abc", DefaultOptions())
	if err := d.Optimize(O2); err != nil {
		t.Fatalf("Optimize(O2): %v", err)
	}
	if d.CompileLevel() != O2 {
		t.Errorf("CompileLevel() = %v, want O2", d.CompileLevel())
	}

	// The start state's row is constant except for 'a', so it should carry
	// a usable AlterTrans summary (a two-target row with byte 'a' as the
	// sole minority interval).
	start := d.State(0)
	if !start.AlterTransition().HasAlterTrans() {
		t.Error("expected the start state to have a usable AlterTrans summary")
	}
}

func TestOptimizeIsANoOpBelowCurrentLevel(t *testing.T) {
	d := mustBuild(t, "abc", DefaultOptions())
	if err := d.Optimize(O2); err != nil {
		t.Fatalf("Optimize(O2): %v", err)
	}
	if err := d.Optimize(O0); err != nil {
		t.Fatalf("Optimize(O0) after O2: %v", err)
	}
	if d.CompileLevel() != O2 {
		t.Errorf("CompileLevel() regressed: got %v, want O2", d.CompileLevel())
	}
}

func TestOptimizeO3InlinesChainedStates(t *testing.T) {
	d := mustBuild(t, "abcdef", DefaultOptions())
	if err := d.Optimize(O3); err != nil {
		t.Fatalf("Optimize(O3): %v", err)
	}
	if d.CompileLevel() != O3 {
		t.Errorf("CompileLevel() = %v, want O3", d.CompileLevel())
	}

	start := d.State(0)
	if start.InlineLevel() == 0 {
		t.Error("expected the start state of a long literal chain to inline at least one successor")
	}

	// Match behavior must be unaffected by the optimizer metadata (it only
	// annotates states for an external emitter; it never changes
	// Transition()).
	res := d.Match([]byte("abcdef"))
	if !res.Matched || res.End != 6 {
		t.Fatalf("Match(abcdef) after Optimize(O3) = %+v, want Matched=true End=6", res)
	}
}

func TestOptimizeRefusesIncompleteDFA(t *testing.T) {
	tree, err := expr.Compile("[a-z]{0,20}x", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("expr.Compile: %v", err)
	}
	d, buildErr := Build(tree, DefaultOptions().WithStateLimit(2))
	if buildErr == nil {
		t.Fatal("expected a state-limit error for this pattern with StateLimit=2")
	}
	if err := d.Optimize(O2); err == nil {
		t.Fatal("Optimize on an incomplete DFA should return an error")
	}
}
