package dfa

import "github.com/coregx/glushkondfa/expr"

// trimNonGreedy implements spec.md §4.2's trimming rule: once a state's
// position set can reach accept (EOP is a member), every non-greedy
// position is superseded — it has already yielded to the shorter match —
// and is removed. A trimmed position's non_greedy_pair (its greedy twin)
// is reinserted, since the greedy continuation is still a live candidate.
func trimNonGreedy(tree *expr.Tree, s expr.PositionSet) expr.PositionSet {
	if !containAcceptState(tree, s) {
		return s
	}

	var toRemove, toAdd []expr.Pos
	for _, p := range s {
		n := tree.Node(p)
		if !n.NonGreedy {
			continue
		}
		toRemove = append(toRemove, p)
		if n.NonGreedyPair != expr.NoPos {
			toAdd = append(toAdd, n.NonGreedyPair)
		}
	}
	for _, p := range toRemove {
		s, _ = s.Remove(p)
	}
	for _, p := range toAdd {
		s, _ = s.Add(p)
	}
	return s
}

// rewriteNonGreedy implements spec.md §4.2's main rewrite: the first time a
// non-greedy position p is used to build a state, every member q of its
// follow set that is itself greedy is replaced by a cloned, non-greedy twin
// of q. This makes the "prefer to stop here" behavior propagate through the
// continuation instead of only applying at p itself.
//
// Grounded on original_source/src/expr.cc's node-pair cloning for twinned
// positions (the same cross-linking shape used for Intersection/XOR pairs
// in expr/annotate.go, here applied to non-greedy twins instead). The tree
// arena grows during this call (new Node values are appended to tree.Nodes)
// so every access below goes through tree.Node(x), which always resolves
// against the CURRENT tree.Nodes slice — no *Node is ever cached across an
// append, which would silently alias a since-replaced backing array.
func rewriteNonGreedy(tree *expr.Tree, p expr.Pos) {
	n := tree.Node(p)
	if !n.NonGreedy || n.CompleteNonGreedy {
		return
	}
	rootNonGreedy := n.RootNonGreedy
	follow := n.Follow.Clone()

	for _, q := range follow {
		qn := tree.Node(q)
		if qn.NonGreedy || qn.Kind == expr.KindEOP {
			continue
		}

		var twin expr.Pos
		if rootNonGreedy {
			twin = qn.NearRootNonGreedyPair
		} else {
			twin = qn.NonGreedyPair
		}

		if twin == expr.NoPos {
			clone := *qn
			clone.NonGreedy = true
			clone.Follow = qn.Follow.Clone()
			clone.NonGreedyPair = expr.NoPos
			clone.NearRootNonGreedyPair = expr.NoPos
			clone.CompleteNonGreedy = false
			tree.Nodes = append(tree.Nodes, clone)
			twin = expr.Pos(len(tree.Nodes) - 1)

			if rootNonGreedy {
				tree.Node(q).NearRootNonGreedyPair = twin
				tree.Node(twin).NearRootNonGreedyPair = q
			} else {
				tree.Node(q).NonGreedyPair = twin
				tree.Node(twin).NonGreedyPair = q
			}
		}

		pn := tree.Node(p)
		pn.Follow, _ = pn.Follow.Remove(q)
		pn.Follow, _ = pn.Follow.Add(twin)
	}

	tree.Node(p).CompleteNonGreedy = true
}
