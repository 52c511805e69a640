package expr

import (
	"regexp/syntax"
	"testing"
)

func mustCompile(t *testing.T, pattern string) *Tree {
	t.Helper()
	tree, err := Compile(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return tree
}

func TestCompileBasicShapes(t *testing.T) {
	patterns := []string{
		"abc",
		"a|b",
		"a*",
		"a+",
		"a?",
		"[a-z]+",
		"[^a-z]",
		".",
		"^foo$",
		"(a|b)c",
		"a*?b",
	}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			tree := mustCompile(t, p)
			if tree.Root == NoPos {
				t.Fatalf("Compile(%q): root is NoPos", p)
			}
			if len(tree.RootFirst()) == 0 {
				t.Errorf("Compile(%q): root first-set is empty", p)
			}
		})
	}
}

func TestCompileUnsupportedRune(t *testing.T) {
	_, err := Compile("h€llo", syntax.Perl)
	if err == nil {
		t.Fatal("Compile(h€llo): expected ErrUnsupportedRune, got nil")
	}
	if _, ok := err.(ErrUnsupportedRune); !ok {
		t.Fatalf("Compile(h€llo): got %T, want ErrUnsupportedRune", err)
	}
}

func TestCompileEveryPositionHasEOPInFollowChain(t *testing.T) {
	tree := mustCompile(t, "abc")
	// Every literal's follow chain should eventually reach an EOP position.
	seen := make(map[Pos]bool)
	var reachesEOP func(p Pos, depth int) bool
	reachesEOP = func(p Pos, depth int) bool {
		if depth > len(tree.Nodes)+1 || seen[p] {
			return false
		}
		seen[p] = true
		n := tree.Node(p)
		if n == nil {
			return false
		}
		if n.Kind == KindEOP {
			return true
		}
		for _, q := range n.Follow {
			if reachesEOP(q, depth+1) {
				return true
			}
		}
		return false
	}

	for _, p := range tree.RootFirst() {
		seen = make(map[Pos]bool)
		if !reachesEOP(p, 0) {
			t.Errorf("position %d in root first-set never reaches EOP", p)
		}
	}
}

func TestAnnotateNullableStar(t *testing.T) {
	tree := mustCompile(t, "a*")
	root := tree.Node(tree.Root)
	// root is Concat(Star(a), EOP); EOP should be directly reachable from
	// the start since the whole pattern can match the empty string.
	foundEOP := false
	for _, p := range tree.RootFirst() {
		if tree.Node(p).Kind == KindEOP {
			foundEOP = true
		}
	}
	if !foundEOP {
		t.Error("a*: expected EOP reachable from the start state (nullable pattern)")
	}
	_ = root
}
