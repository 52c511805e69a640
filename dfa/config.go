package dfa

// CompileLevel selects how much optimization the builder applies after
// construction, per spec.md §6.
type CompileLevel uint8

const (
	// O0 is the plain interpreter: construction only, no optimizer passes.
	O0 CompileLevel = iota
	// O1 additionally enables the external JIT emitter (out of this core's
	// scope — the level is tracked so callers driving an Emitter can gate
	// on it, but the core does nothing extra for O1 itself).
	O1
	// O2 additionally runs EliminateBranch (alternate-transition extraction).
	O2
	// O3 additionally runs Reduce (chain inlining).
	O3
)

// Options configures construction, minimization, and matching.
//
// Mirrors dfa/lazy/config.go's Config: a plain struct with a validated
// DefaultOptions() constructor and fluent WithX setters.
type Options struct {
	// OneLine, if true, makes the delimiter byte an ordinary byte for `.`
	// and character classes, and makes BegLine/EndLine anchors inert
	// (spec.md §6).
	OneLine bool

	// Delimiter is the line-separator byte. Default '\n'.
	Delimiter byte

	// ReverseMatch scans input right-to-left.
	ReverseMatch bool

	// SuffixMatch reports a match extending to the end of input.
	SuffixMatch bool

	// ShortestMatch reports as soon as an accept state is reached
	// (leftmost-shortest) instead of leftmost-longest.
	ShortestMatch bool

	// CompileLevel selects optimizer passes (see CompileLevel).
	CompileLevel CompileLevel

	// StateLimit caps the number of states eager construction may create.
	// When exceeded, Build returns ErrStateLimitExceeded and the returned
	// DFA is marked incomplete; Match then uses on-the-fly mode.
	//
	// Default: 10_000.
	StateLimit uint32
}

// DefaultOptions returns sensible defaults: multi-line anchors active,
// '\n' delimiter, forward leftmost-longest matching, no optimizer passes,
// a 10,000-state construction cap.
func DefaultOptions() Options {
	return Options{
		Delimiter:    '\n',
		CompileLevel: O0,
		StateLimit:   10_000,
	}
}

// Validate reports whether o is usable, mirroring Config.Validate's shape
// (one EngineError per violated field).
func (o *Options) Validate() error {
	if o.StateLimit == 0 {
		return &EngineError{Kind: InvalidConfig, Message: "StateLimit must be > 0"}
	}
	if o.CompileLevel > O3 {
		return &EngineError{Kind: InvalidConfig, Message: "CompileLevel out of range"}
	}
	return nil
}

// WithOneLine returns a copy of o with OneLine set.
func (o Options) WithOneLine(v bool) Options { o.OneLine = v; return o }

// WithDelimiter returns a copy of o with Delimiter set.
func (o Options) WithDelimiter(d byte) Options { o.Delimiter = d; return o }

// WithReverseMatch returns a copy of o with ReverseMatch set.
func (o Options) WithReverseMatch(v bool) Options { o.ReverseMatch = v; return o }

// WithSuffixMatch returns a copy of o with SuffixMatch set.
func (o Options) WithSuffixMatch(v bool) Options { o.SuffixMatch = v; return o }

// WithShortestMatch returns a copy of o with ShortestMatch set.
func (o Options) WithShortestMatch(v bool) Options { o.ShortestMatch = v; return o }

// WithCompileLevel returns a copy of o with CompileLevel set.
func (o Options) WithCompileLevel(l CompileLevel) Options { o.CompileLevel = l; return o }

// WithStateLimit returns a copy of o with StateLimit set.
func (o Options) WithStateLimit(n uint32) Options { o.StateLimit = n; return o }
