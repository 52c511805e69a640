package dfa

import (
	"github.com/coregx/glushkondfa/expr"
	"github.com/coregx/glushkondfa/subset"
)

// Build runs eager construction (spec.md §4.3): a breadth-first subset
// construction over tree, capped at opts.StateLimit states. The returned
// DFA is always usable for matching — if the cap is hit, Build still
// returns a *DFA (with Complete() false) alongside ErrStateLimitExceeded,
// and the matcher degrades to on-the-fly mode (dfa/onthefly.go).
//
// Grounded on original_source/src/dfa.cc's DFA::Construct: a work queue of
// position sets, one dfa.State allocated per dequeued set, transitions
// filled byte-by-byte via fillTransition, closed under expandStates, and
// memoized via subset.Cache (the Go analogue of dfa_map_/nfa_map_).
func Build(tree *expr.Tree, opts Options) (*DFA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tree == nil || tree.Root == expr.NoPos {
		return nil, ErrExpressionEmpty
	}

	d := &DFA{
		tree:  tree,
		opts:  opts,
		cache: subset.New(),
	}

	limitOver := d.construct()
	d.complete = !limitOver
	if limitOver {
		return d, ErrStateLimitExceeded
	}
	d.finalize()
	return d, nil
}

func (d *DFA) construct() (limitOver bool) {
	begLine := true

	start := d.tree.RootFirst().Clone()
	start = expandStates(d.tree, start, begLine, false)
	if containAcceptState(d.tree, start) {
		start = trimNonGreedy(d.tree, start)
	}

	startID, _ := d.cache.GetOrInsert(start)
	d.allocState(startID, containAcceptState(d.tree, start), start)

	queue := []subset.StateID{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		set := d.sets[id]
		st := d.states[id]

		var transition [256]expr.PositionSet
		for _, p := range set {
			fillTransition(d.tree, p, &d.opts, &transition)
		}

		if !d.opts.SuffixMatch && d.opts.ShortestMatch && st.accept {
			for c := 0; c < 256; c++ {
				st.SetTransition(byte(c), Reject)
			}
			begLine = false
			continue
		}

		for c := 0; c < 256; c++ {
			next := transition[c]
			if len(next) == 0 {
				st.SetTransition(byte(c), Reject)
				continue
			}

			next = expandStates(d.tree, next, begLine, false)
			if containAcceptState(d.tree, next) {
				next = trimNonGreedy(d.tree, next)
			}

			nextID, existed := d.cache.Lookup(next)
			if !existed {
				if uint32(d.cache.NextID()) >= d.opts.StateLimit {
					limitOver = true
					continue
				}
				nextID = d.cache.Insert(next)
				d.allocState(nextID, containAcceptState(d.tree, next), next)
				queue = append(queue, nextID)
			}
			st.SetTransition(byte(c), StateID(nextID))
		}
		begLine = false
	}

	return limitOver
}

// allocState grows d.states/d.sets up to and including id, installing a
// fresh State at id. Mirrors DFA::get_new_state's slice-growth pattern.
func (d *DFA) allocState(id subset.StateID, accept bool, set expr.PositionSet) *State {
	for uint32(len(d.states)) <= uint32(id) {
		d.states = append(d.states, nil)
		d.sets = append(d.sets, nil)
	}
	s := NewState(StateID(id), accept)
	d.states[id] = s
	d.sets[id] = set
	return s
}

// fillTransition contributes one position's byte-transition set, rewriting
// it to its non-greedy twin form first if needed (spec.md §4.2).
//
// Grounded on original_source/src/dfa.cc's DFA::FillTransition.
func fillTransition(tree *expr.Tree, p expr.Pos, opts *Options, transition *[256]expr.PositionSet) {
	n := tree.Node(p)
	if n.NonGreedy {
		rewriteNonGreedy(tree, p)
		n = tree.Node(p)
	}

	switch n.Kind {
	case expr.KindLiteral:
		if n.Literal == opts.Delimiter && !opts.OneLine {
			return
		}
		transition[n.Literal], _ = transition[n.Literal].Union(n.Follow)

	case expr.KindCharClass:
		for c := 0; c < 256; c++ {
			if byte(c) == opts.Delimiter && !opts.OneLine {
				continue
			}
			if classMatch(n, byte(c)) {
				transition[c], _ = transition[c].Union(n.Follow)
			}
		}

	case expr.KindDot:
		for c := 0; c < 256; c++ {
			if byte(c) == opts.Delimiter && !opts.OneLine && !n.MatchDelim {
				continue
			}
			transition[c], _ = transition[c].Union(n.Follow)
		}

	case expr.KindBegLine, expr.KindEndLine:
		if !opts.OneLine {
			transition[opts.Delimiter], _ = transition[opts.Delimiter].Union(n.Follow)
		}

	case expr.KindEOP, expr.KindOperator:
		// EOP contributes nothing to byte transitions (it only marks accept,
		// handled by containAcceptState); Operator twins are resolved by
		// expandStates before fillTransition ever sees them, so both are
		// legitimate, inert members of a position set here.

	default:
		// Concat/Union/Qmark/Star/Plus/Intersection/Xor are tree-structure
		// nodes, never positions: their presence here means a caller built
		// or mutated the tree outside expr.Builder's invariants.
		panicInvalidExpressionType("position %d has non-position kind %v", p, n.Kind)
	}
}

// classMatch reports whether c is a member of n's character class, per its
// Negated flag.
func classMatch(n *expr.Node, c byte) bool {
	in := n.CharClass[c]
	if n.Negated {
		return !in
	}
	return in
}

// finalize populates srcStates from every state's dstStates, mirroring
// DFA::Finalize.
func (d *DFA) finalize() {
	for _, s := range d.states {
		for dst := range s.dstStates {
			if dst != Reject {
				d.states[dst].addSrc(s.id)
			}
		}
	}
}
