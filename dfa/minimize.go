package dfa

// Minimize collapses indistinguishable states via table-filling
// (Myhill-Nerode), renumbering states/transitions/adjacency/sets in place.
// On an incomplete DFA it returns a StateLimitExceeded EngineError and
// changes nothing (on-the-fly matching still needs the one-to-one
// state<->position-set correspondence construction left behind); on one
// already minimized it is a no-op.
//
// Grounded on original_source/src/dfa.cc's DFA::Minimize: the same
// triangular distinguishability table, iterated to a fixed point, then a
// single renumbering pass. The original indexes the table as
// distinction_table[i][size()-j-1]; here it's a flat map keyed by the
// unordered pair, which is equivalent and avoids replicating the index
// arithmetic.
func (d *DFA) Minimize() error {
	if !d.complete {
		return &EngineError{Kind: StateLimitExceeded, Message: "cannot minimize an incomplete DFA"}
	}
	if d.minimized {
		return nil
	}

	n := len(d.states)
	if n <= 1 {
		d.minimized = true
		return nil
	}

	distinct := make(map[[2]int]bool, n*n/4)
	pairKey := func(i, j int) [2]int {
		if i > j {
			i, j = j, i
		}
		return [2]int{i, j}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distinct[pairKey(i, j)] = d.states[i].accept != d.states[j].accept
		}
	}

	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				k := pairKey(i, j)
				if distinct[k] {
					continue
				}
				for c := 0; c < 256; c++ {
					n1 := int(d.states[i].Transition(byte(c)))
					n2 := int(d.states[j].Transition(byte(c)))
					if n1 == n2 {
						continue
					}
					rejectInvolved := StateID(n1) == Reject || StateID(n2) == Reject
					if rejectInvolved || distinct[pairKey(n1, n2)] {
						distinct[k] = true
						changed = true
						break
					}
				}
			}
		}
	}

	// swapMap[j] = i means state j is equivalent to (and absorbed into) i.
	swapMap := make(map[int]int)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if _, already := swapMap[j]; already {
				continue
			}
			if !distinct[pairKey(i, j)] {
				swapMap[j] = i
			}
		}
	}

	if len(swapMap) == 0 {
		d.minimized = true
		return nil
	}

	minSize := n - len(swapMap)
	// Single forward pass, s increasing: swapMap[s] (when present) always
	// names an index < s, so its replace[] entry is already final by the
	// time we read it here — this is what lets a merge chain (s -> i -> i')
	// resolve to i's own final target instead of stopping one hop short.
	replace := make([]int, n)
	d2 := 0
	for s := 0; s < n; s++ {
		if root, merged := swapMap[s]; merged {
			replace[s] = replace[root]
		} else {
			replace[s] = d2
			d2++
		}
	}

	newStates := make([]*State, minSize)

	for s := 0; s < n; s++ {
		if _, merged := swapMap[s]; merged {
			continue
		}
		d2 := replace[s]
		old := d.states[s]
		ns := NewState(StateID(d2), old.accept)
		for c := 0; c < 256; c++ {
			next := old.Transition(byte(c))
			if StateID(next) != Reject {
				next = StateID(replace[int(next)])
			}
			ns.transitions[c] = next
		}
		newStates[d2] = ns
		d.sets[d2] = d.sets[s]
	}
	d.sets = d.sets[:minSize]
	d.states = newStates

	for _, s := range d.states {
		for c := 0; c < 256; c++ {
			if s.transitions[c] != Reject {
				s.dstStates[s.transitions[c]] = struct{}{}
			}
		}
	}
	d.finalize()

	d.minimized = true
	return nil
}

// Complement builds a complementary automaton in place: accept states
// become non-accepting and vice versa, and every Reject transition is
// redirected to a newly introduced accepting absorbing state (so the
// complement of "no match" is "match", by definition, rather than simply
// inverting a sink that was never reachable).
//
// Grounded on original_source/src/dfa.cc's DFA::Complementify.
func (d *DFA) Complement() {
	rejectID := -1

	for _, s := range d.states {
		s.accept = !s.accept
	}

	for _, s := range d.states {
		toReject := false
		for c := 0; c < 256; c++ {
			if s.transitions[c] == Reject {
				if rejectID < 0 {
					rs := NewState(StateID(len(d.states)), true)
					for j := 0; j < 256; j++ {
						rs.transitions[j] = rs.id
					}
					rs.dstStates[rs.id] = struct{}{}
					d.states = append(d.states, rs)
					d.sets = append(d.sets, nil)
					rejectID = int(rs.id)
				}
				s.transitions[c] = StateID(rejectID)
				toReject = true
			}
		}
		if toReject {
			s.dstStates[StateID(rejectID)] = struct{}{}
		}
	}

	if rejectID >= 0 {
		d.states[rejectID].addSrc(StateID(rejectID))
	}
	d.finalize()
}
