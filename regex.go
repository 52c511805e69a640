// Package glushkondfa provides a byte-oriented regex engine built on a
// Glushkov position-automaton DFA, exposing a stdlib-regexp-flavored
// surface (Compile/MustCompile/Match/Find/FindAll) over the core engine
// in packages expr, subset, and dfa.
//
// Grounded on the teacher repo's top-level regex.go: a thin Regex facade
// delegating compilation and matching to an inner engine package, with
// the same Compile/MustCompile/Match.../Find... method family. Capture
// groups and replace helpers are not carried over — the core engine has
// no submatch machinery (spec.md's Non-goals exclude it), so this facade
// stops at match existence and match span, unlike the teacher's
// FindSubmatch family.
package glushkondfa

import (
	"github.com/coregx/glushkondfa/dfa"
	"github.com/coregx/glushkondfa/expr"
)

// Regex is a compiled pattern: its annotated position tree plus the
// automaton built from it.
//
// A *Regex whose automaton is complete is safe for concurrent read-only use
// (Match/Find/...). When Compile hit the state limit (Automaton().Complete()
// is false), matching extends the automaton on the fly without
// synchronization, so concurrent calls on such a value are not safe. It is
// not safe to use while a goroutine is running Optimize or Minimize on the
// same value.
type Regex struct {
	tree      *expr.Tree
	automaton *dfa.DFA
	pattern   string
	prefix    []byte // required literal prefix of every match, or nil
}

// Compile compiles pattern with dfa.DefaultOptions.
func Compile(pattern string) (*Regex, error) {
	return CompileWithOptions(pattern, dfa.DefaultOptions())
}

// MustCompile compiles pattern and panics if it fails. For patterns known
// to be valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("glushkondfa: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithOptions compiles pattern with caller-supplied Options (line
// anchors, reverse/suffix/shortest matching, optimizer level, state cap).
func CompileWithOptions(pattern string, opts dfa.Options) (*Regex, error) {
	tree, err := expr.Compile(pattern, expr.SyntaxFlags)
	if err != nil {
		return nil, err
	}

	automaton, err := dfa.Build(tree, opts)
	if err != nil {
		if automaton == nil {
			return nil, err
		}
		// StateLimitExceeded: automaton is still usable, just incomplete;
		// Match degrades to on-the-fly construction automatically.
	}

	if opts.CompileLevel >= dfa.O2 && automaton.Complete() {
		if oErr := automaton.Optimize(opts.CompileLevel); oErr != nil {
			return nil, oErr
		}
	}

	return &Regex{tree: tree, automaton: automaton, pattern: pattern, prefix: requiredPrefix(pattern)}, nil
}

// String returns the source pattern text.
func (r *Regex) String() string { return r.pattern }

// search finds the leftmost match, trying successive start offsets until
// one succeeds. Each trial is one anchored dfa.Match call (spec.md's core
// engine is anchored-at-origin; unanchored search is this scan, layered on
// top, same division of responsibility as original_source/src/dfa.cc's
// DFA::Match vs. its caller).
//
// When the pattern has a required literal prefix (prefix_prefilter.go),
// candidate start offsets are generated by jumping straight to the next
// occurrence of that prefix instead of probing every byte position — the
// same prefilter-then-confirm shape as the teacher's meta package, without
// its multi-strategy dispatch (spec.md's core has no literal-only fast
// path: every candidate is still confirmed by a real automaton trial).
func (r *Regex) search(data []byte) (start, end int, ok bool) {
	o := 0
	for o <= len(data) {
		if r.prefix != nil {
			o = scanToPrefix(data, o, r.prefix)
			if o < 0 {
				return 0, 0, false
			}
		}
		res := r.automaton.Match(data[o:])
		if res.Matched {
			if res.End < 0 {
				// Incomplete DFA: OnTheFlyMatch only reports match/no-match,
				// not a span. Report the whole remaining slice as the match.
				return o, len(data), true
			}
			return o, o + res.End, true
		}
		o++
	}
	return 0, 0, false
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	_, _, ok := r.search(b)
	return ok
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool { return r.Match([]byte(s)) }

// Find returns the leftmost match in b, or nil if none.
func (r *Regex) Find(b []byte) []byte {
	start, end, ok := r.search(b)
	if !ok {
		return nil
	}
	return b[start:end]
}

// FindString returns the leftmost match in s, or "" if none.
func (r *Regex) FindString(s string) string {
	m := r.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns the [start, end) byte offsets of the leftmost match in
// b, or nil if none.
func (r *Regex) FindIndex(b []byte) []int {
	start, end, ok := r.search(b)
	if !ok {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex returns the [start, end) byte offsets of the leftmost
// match in s, or nil if none.
func (r *Regex) FindStringIndex(s string) []int { return r.FindIndex([]byte(s)) }

// FindAll returns every non-overlapping match in b, left to right. If
// n >= 0, at most n matches are returned.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	var out [][]byte
	pos := 0
	for pos <= len(b) {
		start, end, ok := r.search(b[pos:])
		if !ok {
			break
		}
		absStart, absEnd := pos+start, pos+end
		out = append(out, b[absStart:absEnd])

		if absEnd > pos {
			pos = absEnd
		} else {
			pos++
		}
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAllString returns every non-overlapping match in s, left to right.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// Minimize runs table-filling minimization on the underlying automaton.
// Returns an error and leaves the automaton unchanged if the DFA is
// incomplete (StateLimit was hit during Compile).
func (r *Regex) Minimize() error { return r.automaton.Minimize() }

// Optimize runs the optimizer passes for level (dfa.O2/dfa.O3) on the
// underlying automaton.
func (r *Regex) Optimize(level dfa.CompileLevel) error { return r.automaton.Optimize(level) }

// Automaton exposes the underlying DFA, for callers driving an external
// JIT emitter against its transition tables (spec.md §6's output
// contract).
func (r *Regex) Automaton() *dfa.DFA { return r.automaton }
