package dfa

import "github.com/coregx/glushkondfa/expr"

// OnTheFlyMatch reports whether some prefix of data matches (anchored at
// data[0]; in ReverseMatch mode, some suffix read backwards from the last
// byte), constructing states lazily as input is consumed instead of
// requiring the full table up front. Used automatically by Match when
// Build returned an incomplete
// DFA (StateLimit was hit), and directly useful for a one-shot match
// against a pattern nobody expects to reuse.
//
// Grounded on original_source/src/dfa.cc's DFA::OnTheFlyMatch. Unlike
// Match (dfa/match.go), this reports match/no-match only — the original
// never threads match offsets through its on-the-fly path either, so
// there is nothing to ground a Find-style variant on here; spec.md's
// fallback contract for a StateLimit-exceeded DFA is boolean IsMatch.
func (d *DFA) OnTheFlyMatch(data []byte) bool {
	if len(d.states) == 0 {
		begLine := true
		start := d.tree.RootFirst().Clone()
		start = expandStates(d.tree, start, begLine, false)
		start = trimNonGreedy(d.tree, start)
		id, _ := d.cache.GetOrInsert(start)
		d.allocState(id, containAcceptState(d.tree, start), start)
	}

	dir := 1
	i, end := 0, len(data)
	if d.opts.ReverseMatch {
		dir = -1
		i, end = len(data)-1, -1
	}

	state := StateID(0)
	matched := d.states[state].accept

	for i != end {
		c := data[i]
		next := d.states[state].Transition(c)

		if next == Reject {
			return matched
		}
		if next == Undef {
			next = d.stepOnTheFly(state, c)
			if next == Reject {
				return matched
			}
		}

		i += dir
		state = next
		if d.states[state].accept {
			matched = true
		}
	}

	if matched {
		return true
	}
	if state != Reject {
		endSet := d.sets[state]
		atStart := (i == 0 && dir == 1) || (i == len(data)-1 && dir == -1)
		endSet = expandStates(d.tree, endSet, atStart, true)
		return containAcceptState(d.tree, endSet)
	}
	return false
}

// stepOnTheFly computes (and memoizes) the successor of state on byte c,
// storing the discovered transition so future bytes reuse it.
func (d *DFA) stepOnTheFly(state StateID, c byte) StateID {
	set := d.sets[state]
	next := advanceSet(d.tree, set, &d.opts, c)
	next = expandStates(d.tree, next, false, false)
	next = trimNonGreedy(d.tree, next)

	if len(next) == 0 {
		d.states[state].SetTransition(c, Reject)
		return Reject
	}

	id, existed := d.cache.Lookup(next)
	if !existed {
		id = d.cache.Insert(next)
		d.allocState(id, containAcceptState(d.tree, next), next)
	}
	d.states[state].SetTransition(c, StateID(id))
	return StateID(id)
}

// advanceSet computes the raw (unexpanded) successor position set of set
// on byte c: the union of the follow sets of every state-bearing member
// that consumes c. A single-byte analogue of fillTransition's per-position
// contribution, used when building one transition at a time instead of a
// full 256-wide row.
func advanceSet(tree *expr.Tree, set expr.PositionSet, opts *Options, c byte) expr.PositionSet {
	var next expr.PositionSet
	for _, p := range set {
		n := tree.Node(p)
		if n.NonGreedy {
			rewriteNonGreedy(tree, p)
			n = tree.Node(p)
		}
		switch n.Kind {
		case expr.KindLiteral:
			if n.Literal == c && !(c == opts.Delimiter && !opts.OneLine) {
				next, _ = next.Union(n.Follow)
			}
		case expr.KindCharClass:
			if (c != opts.Delimiter || opts.OneLine) && classMatch(n, c) {
				next, _ = next.Union(n.Follow)
			}
		case expr.KindDot:
			if c != opts.Delimiter || opts.OneLine || n.MatchDelim {
				next, _ = next.Union(n.Follow)
			}
		case expr.KindBegLine, expr.KindEndLine:
			if !opts.OneLine && c == opts.Delimiter {
				next, _ = next.Union(n.Follow)
			}
		}
	}
	return next
}
