package dfa

import "github.com/coregx/glushkondfa/expr"

// containAcceptState reports whether s includes the EOP position, i.e.
// whether the state built from s should be marked accepting.
func containAcceptState(tree *expr.Tree, s expr.PositionSet) bool {
	for _, p := range s {
		if tree.Node(p).Kind == expr.KindEOP {
			return true
		}
	}
	return false
}

// expandStates closes S under the non-consuming rules of spec.md §4.1
// (Intersection pairing, XOR pairing, begin-line anchor, end-line anchor)
// until a fixed point, returning the closed set.
//
// Grounded on dfa/lazy/builder.go's epsilonClosure: an explicit worklist
// loop rather than the teacher's DFS-with-visited-set (the closure rules
// here are set-level, not per-state-transition, so a simple "did anything
// change this pass" loop suffices) — and on spec.md §9's resolved open
// question: no goto, an explicit `for { ... if !changed { break } }` loop.
func expandStates(tree *expr.Tree, s expr.PositionSet, begLine, endLine bool) expr.PositionSet {
	for {
		changed := false
		var did bool

		s, did = expandIntersection(tree, s)
		changed = changed || did

		s, did = expandXOR(tree, s)
		changed = changed || did

		if begLine {
			s, did = expandAnchor(tree, s, expr.KindBegLine)
			changed = changed || did
		}
		if endLine {
			s, did = expandAnchor(tree, s, expr.KindEndLine)
			changed = changed || did
		}

		if !changed {
			return s
		}
	}
}

// expandIntersection implements spec.md §4.1 rule 1: when both twins of an
// Intersection operator pair are present in s, union their (shared)
// continuation follow set into s.
func expandIntersection(tree *expr.Tree, s expr.PositionSet) (expr.PositionSet, bool) {
	changed := false
	members := s.Clone() // s.Add can shift elements in place; iterate a stable snapshot
	for _, p := range members {
		n := tree.Node(p)
		if n == nil || n.Kind != expr.KindOperator || n.OpKind != expr.OpIntersection {
			continue
		}
		if n.Pair == expr.NoPos {
			continue
		}
		checkPairLinked(tree, p, n)
		if !s.Contains(n.Pair) {
			continue
		}
		var did bool
		s, did = s.Union(n.Follow)
		changed = changed || did
	}
	return s, changed
}

// checkPairLinked panics with InconsistentTree if p's twin doesn't link
// back to p: expr.Builder.LinkPair always sets both sides of a pair
// symmetrically, so a one-directional Pair can only come from a tree built
// by hand, bypassing the builder's invariant.
func checkPairLinked(tree *expr.Tree, p expr.Pos, n *expr.Node) {
	twin := tree.Node(n.Pair)
	if twin == nil || twin.Pair != p {
		panicInconsistentTree("operator pair %d -> %d is not reciprocal", p, n.Pair)
	}
}

// expandXOR implements spec.md §4.1 rule 2: XOR twins cancel (both removed
// if both present); a surviving twin (its partner absent) contributes its
// follow set.
func expandXOR(tree *expr.Tree, s expr.PositionSet) (expr.PositionSet, bool) {
	seen := make(map[uint32]expr.Pos)
	var toRemove []expr.Pos
	members := s.Clone() // s.Remove/s.Union below can shift s's backing array in place
	for _, p := range members {
		n := tree.Node(p)
		if n == nil || n.Kind != expr.KindOperator || n.OpKind != expr.OpXOR {
			continue
		}
		if twin, ok := seen[n.OpID]; ok {
			checkPairLinked(tree, p, n)
			toRemove = append(toRemove, p, twin)
			delete(seen, n.OpID)
		} else {
			seen[n.OpID] = p
		}
	}

	changed := false
	for _, p := range toRemove {
		var did bool
		s, did = s.Remove(p)
		changed = changed || did
	}
	for _, p := range seen {
		var did bool
		s, did = s.Union(tree.Node(p).Follow)
		changed = changed || did
	}
	return s, changed
}

// expandAnchor implements spec.md §4.1 rules 3/4: every BegLine (resp.
// EndLine) position present in s contributes its follow set, when the
// corresponding begLine/endLine flag is set. No fall-through between the
// two cases (spec.md §9 open question 1, resolved: treat as distinct).
func expandAnchor(tree *expr.Tree, s expr.PositionSet, kind expr.Kind) (expr.PositionSet, bool) {
	changed := false
	members := s.Clone() // s.Union below can shift s's backing array in place
	for _, p := range members {
		n := tree.Node(p)
		if n == nil || n.Kind != kind {
			continue
		}
		var did bool
		s, did = s.Union(n.Follow)
		changed = changed || did
	}
	return s, changed
}
