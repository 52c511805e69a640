package expr

import (
	"fmt"
	"regexp/syntax"
)

// SyntaxFlags is the recommended flag set for Compile's regexp/syntax
// parse: syntax.Perl with its OneLine bit cleared, so `^`/`$` always parse
// as OpBeginLine/OpEndLine. This engine has a single line-anchor kind
// (KindBegLine/KindEndLine, §4's Data Model), and whether they behave as
// per-line or whole-text anchors is controlled at the DFA level by
// dfa.Options.OneLine (spec.md §6) — mirroring
// original_source/src/dfa.cc's single flag_.one_line() knob — rather than
// by how the pattern text itself was written.
const SyntaxFlags = syntax.Perl &^ syntax.OneLine

// Compile parses pattern with the standard library's regexp/syntax package
// — not a new parser, just a consumer of the one the Go toolchain already
// ships — and builds a Glushkov-annotated Tree from the result.
//
// This engine is byte-oriented (spec.md's Non-goals explicitly exclude
// Unicode-aware matching): a literal rune up to 0xFF compiles to that single
// byte (Latin-1), and a literal rune above 0xFF is rejected with
// ErrUnsupportedRune, since it would require multi-byte UTF-8 matching this
// engine does not implement. Character-class ranges are clipped to
// 0x00-0xFF; class members above 0xFF are dropped rather than rejected.
//
// Capture groups parse but are discarded (Non-goal: no submatch tracking).
// Counted repetition ({m,n}) is expanded away by syntax.Regexp.Simplify
// before compilation, the same preprocessing step the standard library's
// own regexp package applies.
func Compile(pattern string, flags syntax.Flags) (tree *Tree, err error) {
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, err
	}
	re = re.Simplify()

	defer func() {
		if r := recover(); r != nil {
			if ur, ok := r.(ErrUnsupportedRune); ok {
				tree, err = nil, ur
				return
			}
			panic(r)
		}
	}()

	b := NewBuilder()
	c := &compiler{b: b}
	root, empty := c.compile(re)
	if empty {
		// Whole pattern is equivalent to the empty string: represent it as
		// an always-nullable Qmark around a single dead-end literal isn't
		// right either; model "matches only empty string" structurally via
		// an EOP-adjacent empty Concat by wrapping nothing: Annotate adds
		// Concat(root, EOP) so root must be a real Pos. A Qmark of a
		// not-taken branch has no corresponding stdlib Op, so synthesize an
		// unreachable Sentinel via CharClass matching nothing, wrapped
		// optional, which is nullable and never consumes a byte.
		root = b.AddQmark(b.AddCharClass([256]bool{}, false), false)
	}

	return Annotate(b, root), nil
}

// ErrUnsupportedRune reports a rune outside this engine's 8-bit alphabet.
type ErrUnsupportedRune rune

func (e ErrUnsupportedRune) Error() string {
	return fmt.Sprintf("byte-oriented engine cannot match rune %q (use ASCII/Latin-1 patterns only)", rune(e))
}

type compiler struct {
	b     *Builder
	xorID uint32
}

// compile returns (pos, empty). empty is true when re is equivalent to the
// empty string (OpEmptyMatch, or a Capture/Concat/Alternate collapsing to
// one) — there is then no Pos to return, since the empty match consumes no
// positions at all.
func (c *compiler) compile(re *syntax.Regexp) (Pos, bool) {
	switch re.Op {
	case syntax.OpNoMatch:
		return c.b.AddCharClass([256]bool{}, false), false

	case syntax.OpEmptyMatch:
		return NoPos, true

	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune)

	case syntax.OpCharClass:
		return c.b.AddCharClass(classBitset(re.Rune), false), false

	case syntax.OpAnyCharNotNL:
		return c.b.AddDot(false), false

	case syntax.OpAnyChar:
		return c.b.AddDot(true), false

	case syntax.OpBeginLine, syntax.OpBeginText:
		return c.b.AddBegLine(), false

	case syntax.OpEndLine, syntax.OpEndText:
		return c.b.AddEndLine(), false

	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		// Word-boundary assertions have no position in this engine's model
		// (spec.md's node set has no WordBoundary kind); treat as inert
		// (always-satisfied) so patterns using \b still compile, degrading
		// to "no assertion" rather than failing outright.
		return NoPos, true

	case syntax.OpCapture:
		return c.compile(re.Sub[0])

	case syntax.OpStar:
		return c.compileRepeat(re, c.b.AddStar)

	case syntax.OpPlus:
		return c.compileRepeat(re, c.b.AddPlus)

	case syntax.OpQuest:
		return c.compileRepeat(re, c.b.AddQmark)

	case syntax.OpConcat:
		return c.compileConcat(re.Sub)

	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)

	default:
		return c.b.AddCharClass([256]bool{}, false), false
	}
}

func (c *compiler) compileRepeat(re *syntax.Regexp, add func(Pos, bool) Pos) (Pos, bool) {
	child, empty := c.compile(re.Sub[0])
	if empty {
		return NoPos, true
	}
	nonGreedy := re.Flags&syntax.NonGreedy != 0
	return add(child, nonGreedy), false
}

func (c *compiler) compileLiteral(runes []rune) (Pos, bool) {
	var cur Pos
	have := false
	for _, r := range runes {
		if r > 0xFF {
			panic(ErrUnsupportedRune(r))
		}
		lit := c.b.AddLiteral(byte(r))
		if !have {
			cur = lit
			have = true
		} else {
			cur = c.b.AddConcat(cur, lit)
		}
	}
	if !have {
		return NoPos, true
	}
	return cur, false
}

func (c *compiler) compileConcat(subs []*syntax.Regexp) (Pos, bool) {
	var cur Pos
	have := false
	for _, sub := range subs {
		p, empty := c.compile(sub)
		if empty {
			continue
		}
		if !have {
			cur = p
			have = true
		} else {
			cur = c.b.AddConcat(cur, p)
		}
	}
	if !have {
		return NoPos, true
	}
	return cur, false
}

func (c *compiler) compileAlternate(subs []*syntax.Regexp) (Pos, bool) {
	var cur Pos
	have := false
	sawEmpty := false
	for _, sub := range subs {
		p, empty := c.compile(sub)
		if empty {
			sawEmpty = true
			continue
		}
		if !have {
			cur = p
			have = true
		} else {
			cur = c.b.AddUnion(cur, p)
		}
	}
	switch {
	case !have:
		return NoPos, true
	case sawEmpty:
		return c.b.AddQmark(cur, false), false
	default:
		return cur, false
	}
}

// classBitset converts a normalized rune-range list (as produced by
// regexp/syntax, pairs of inclusive [lo, hi] rune bounds) into a 256-entry
// byte membership table, clipping every range to the engine's 8-bit
// alphabet.
func classBitset(ranges []rune) [256]bool {
	var bits [256]bool
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		for b := lo; b <= hi; b++ {
			bits[b] = true
		}
	}
	return bits
}
