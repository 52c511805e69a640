package dfa

// maxReduce bounds Reduce's inlining chain depth, so a long linear run of
// states (e.g. a literal of length 10,000) doesn't produce an unbounded
// inline_level an emitter would have to unroll.
const maxReduce = 10

// Optimize runs the optimizer passes named by level (spec.md §4.7, §6):
// O2 computes each state's AlterTrans summary (EliminateBranch), O3
// additionally computes chain-inlining depths (Reduce). Both are consumed
// by an external JIT emitter this package does not itself contain; here
// they only populate State.alterTrans/inlineLevel.
func (d *DFA) Optimize(level CompileLevel) error {
	if !d.complete {
		return &EngineError{Kind: StateLimitExceeded, Message: "cannot optimize an incomplete DFA"}
	}
	if level <= d.compileLevel {
		return nil
	}
	if level >= O2 {
		d.eliminateBranch()
		d.compileLevel = O2
	}
	if level >= O3 {
		d.reduce()
		d.compileLevel = O3
	}
	return nil
}

// eliminateBranch computes, for each state, whether its 256-wide
// transition row collapses to a constant target or a two-target row with a
// single contiguous byte interval mapped to the minority target — and if
// so records it as an AlterTrans an emitter can compile as a branchless
// range test instead of a full jump table lookup.
//
// Grounded on original_source/src/dfa.cc's DFA::EliminateBranch, which
// scans for at most one "run boundary" pair; a third distinct target or a
// second boundary disqualifies the state (next1/next2 stay Undef).
func (d *DFA) eliminateBranch() {
	for _, st := range d.states {
		row := st.transitions

		next1 := row[0]
		next2 := Undef
		lo, hi := 0, 256

		c := 1
		for c < 256 && row[c] == next1 {
			c++
		}
		if c < 256 {
			next2 = next1
			next1 = row[c]
			lo = c
			c++
			for c < 256 && row[c] == next1 {
				c++
			}
		}
		if c < 256 {
			hi = c - 1
			c++
			for c < 256 && row[c] == next2 {
				c++
			}
		}
		if c < 256 {
			next1, next2 = Undef, Undef
		}

		if hi == 256 {
			hi = 255
		}

		st.alterTrans = AlterTrans{Next1: next1, Next2: next2, KeyLo: byte(lo), KeyHi: byte(hi)}
	}
}

// reduce finds, for each state not yet claimed as part of another state's
// inlining chain, how many single-successor hops (excluding Reject as a
// second destination) can be folded into it before hitting a branch point,
// an accept state, a state with more than one predecessor, or maxReduce.
//
// Grounded on original_source/src/dfa.cc's DFA::Reduce.
func (d *DFA) reduce() {
	n := len(d.states)
	inlined := make([]bool, n)

	for _, start := range d.states {
		if inlined[start.id] {
			continue
		}
		current := start
		for {
			dstCount := len(current.dstStates)
			if dstCount > 2 || dstCount == 0 {
				break
			}
			_, hasReject := current.dstStates[Reject]
			if dstCount == 2 && !hasReject {
				break
			}
			if dstCount == 1 && hasReject {
				break
			}

			// SetTransition never records Reject in dstStates, so only
			// dstCount==1 reaches here, and its sole entry is the
			// surviving candidate.
			var nextID StateID
			for id := range current.dstStates {
				if id != Reject {
					nextID = id
					break
				}
			}
			next := d.states[nextID]
			if !next.alterTrans.HasAlterTrans() {
				break
			}
			if len(next.srcStates) != 1 || next.accept {
				break
			}
			if inlined[next.id] {
				break
			}

			inlined[next.id] = true
			current = next
			start.inlineLevel++
			if start.inlineLevel >= maxReduce {
				break
			}
		}
	}
}
