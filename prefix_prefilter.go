package glushkondfa

import (
	"regexp/syntax"

	"github.com/coregx/glushkondfa/expr"
	"github.com/coregx/glushkondfa/literal"
	"github.com/coregx/glushkondfa/simd"
)

// requiredPrefix extracts the longest byte sequence that every match of
// pattern must begin with, or nil if none can be proven (e.g. the pattern
// can match starting with more than one distinct byte sequence, or starts
// with ".*"/"a?" and so has no required prefix at all).
//
// Grounded on literal/extractor.go's Extractor.ExtractPrefixes, built for
// exactly this purpose in the teacher's meta package (see meta/compile.go's
// use of literal prefixes to pick a search strategy); LongestCommonPrefix
// degrades safely to an empty slice when the pattern has no single
// required start, so this is always sound as a prefilter, never a source
// of missed matches.
func requiredPrefix(pattern string) []byte {
	re, err := syntax.Parse(pattern, expr.SyntaxFlags)
	if err != nil {
		return nil
	}
	re = re.Simplify()

	ex := literal.New(literal.DefaultConfig())
	seq := ex.ExtractPrefixes(re)
	if seq.IsEmpty() {
		return nil
	}
	prefix := seq.LongestCommonPrefix()
	// The extractor yields UTF-8 bytes, while expr.Compile matches runes
	// 0x80-0xFF as single Latin-1 bytes: cut the prefix before the first
	// non-ASCII byte so it only holds bytes both agree on.
	for i, b := range prefix {
		if b >= 0x80 {
			prefix = prefix[:i]
			break
		}
	}
	if len(prefix) == 0 {
		return nil
	}
	return prefix
}

// scanToPrefix returns the offset of the next occurrence of prefix in data
// at or after from, using the teacher's SIMD-accelerated substring search
// (simd/memmem.go), or -1 if prefix does not occur again.
func scanToPrefix(data []byte, from int, prefix []byte) int {
	if from >= len(data) {
		return -1
	}
	rel := simd.Memmem(data[from:], prefix)
	if rel < 0 {
		return -1
	}
	return from + rel
}
