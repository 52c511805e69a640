package dfa

// Result is the outcome of matching a completed DFA against a byte slice
// anchored at its first (or, in reverse mode, last) byte: whether the
// pattern matches some prefix of data, and if so, the offset one past the
// last consumed byte (the boundary a caller doing an unanchored scan would
// slide forward from). Offsets are -1 when Matched is false, or when the
// DFA was incomplete and only OnTheFlyMatch's boolean answer is available.
type Result struct {
	Matched bool
	End     int // exclusive end offset into data, forward mode; inclusive start-1 boundary in reverse mode
}

// Match runs the completed-DFA matcher (spec.md §4.5): forward or reverse
// (Options.ReverseMatch), leftmost-longest or leftmost-shortest
// (Options.ShortestMatch), with suffix-match and the end-of-input anchor
// re-expansion. Falls back to OnTheFlyMatch (boolean only) when the DFA is
// incomplete.
//
// This anchors at data[0] (or data[len(data)-1] in reverse mode) — it asks
// "does some prefix of data match", not "does data contain a match
// anywhere". An unanchored search is a loop over start offsets calling
// Match on each suffix, layered on top (spec.md's facade, not the core
// matcher) — grounded on original_source/src/dfa.cc's DFA::Match, which
// has exactly this same single-origin contract.
func (d *DFA) Match(data []byte) Result {
	if !d.complete {
		return Result{Matched: d.OnTheFlyMatch(data), End: -1}
	}

	dir := 1
	i, end := 0, len(data)
	if d.opts.ReverseMatch {
		dir = -1
		i, end = len(data)-1, -1
	}

	state := StateID(0)
	matched := false
	matchAt := -1

	if d.states[state].accept {
		matched = true
		matchAt = i
	}

	for i != end {
		c := data[i]
		next := d.states[state].Transition(c)
		if next == Reject {
			break
		}
		state = next
		i += dir

		if d.states[state].accept {
			matched = true
			matchAt = i
			if !d.opts.SuffixMatch && d.opts.ShortestMatch {
				return Result{Matched: true, End: matchAt}
			}
		}
	}

	finalAccept := d.states[state].accept
	if !finalAccept && state != Reject && i == end {
		endSet := d.sets[state]
		beganAtStart := len(data) == 0
		endSet = expandStates(d.tree, endSet, beganAtStart, true)
		finalAccept = containAcceptState(d.tree, endSet)
		if finalAccept {
			matchAt = i
		}
	}

	if d.opts.SuffixMatch && finalAccept {
		return Result{Matched: true, End: len(data)}
	}

	matched = matched || finalAccept
	if !matched {
		return Result{Matched: false, End: -1}
	}
	return Result{Matched: true, End: matchAt}
}
