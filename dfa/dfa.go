// Package dfa builds and matches against a byte-oriented deterministic
// finite automaton derived from a Glushkov position tree (package expr).
//
// Grounded throughout on original_source/src/dfa.cc/dfa.h (the regen C++
// engine's DFA class) and on the teacher repo's dfa/lazy package, whose
// Config/Error/State shapes this package's Options/EngineError/State
// mirror (dfa/lazy/config.go, dfa/lazy/error.go, dfa/lazy/state.go).
package dfa

import (
	"github.com/coregx/glushkondfa/expr"
	"github.com/coregx/glushkondfa/subset"
)

// DFA is a constructed automaton: states plus enough of the source tree to
// resume on-the-fly construction if eager Build left it incomplete.
type DFA struct {
	tree *expr.Tree
	opts Options

	// cache memoizes position-set -> StateID, doubling as the nfa_map_/
	// dfa_map_ pair from original_source/src/dfa.cc: construction and
	// on-the-fly matching look a successor set up here to reuse an existing
	// state. The reverse direction (state -> position set) is kept in sets
	// below, not read back from the cache.
	cache *subset.Cache

	states []*State

	// sets[i] is the position set state i was built from, kept in lockstep
	// with states by both construction and minimization/renumbering. Used
	// to resume on-the-fly construction from an incomplete DFA, and to
	// re-expand a state's set for the end-of-input anchor check in
	// dfa/match.go.
	sets []expr.PositionSet

	// complete is false when StateLimit was hit; onthefly.go then grows
	// states lazily during Match instead of assuming the table is total.
	complete bool

	minimized    bool
	compileLevel CompileLevel
}

// Complete reports whether eager construction finished within StateLimit.
func (d *DFA) Complete() bool { return d.complete }

// Minimized reports whether Minimize has been run (and found the DFA
// already minimal, or reduced it).
func (d *DFA) Minimized() bool { return d.minimized }

// CompileLevel reports the highest optimizer level Optimize has reached.
func (d *DFA) CompileLevel() CompileLevel { return d.compileLevel }

// Options returns the configuration the DFA was built with.
func (d *DFA) Options() Options { return d.opts }

// Len returns the number of states.
func (d *DFA) Len() int { return len(d.states) }

// State returns the state with the given id, or nil if id is out of range
// or the Reject/Undef sentinel.
func (d *DFA) State(id StateID) *State {
	if id == Reject || id == Undef || int(id) >= len(d.states) {
		return nil
	}
	return d.states[id]
}

// States returns every constructed state, in id order, for an external JIT
// emitter walking the table (spec.md §6's output contract).
func (d *DFA) States() []*State { return d.states }

// StateLabel renders a state id the way an emitter would name a jump
// target: "reject" for the sink, "sN" otherwise. Grounded on
// original_source/src/dfa.cc's DFA::state2label.
func StateLabel(id StateID) string {
	if id == Reject {
		return "reject"
	}
	return "s" + itoa(id)
}

func itoa(id StateID) string {
	if id == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	return string(buf[i:])
}
