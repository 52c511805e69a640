package expr

// Builder constructs expression trees incrementally using a low-level API.
// This provides full control over tree shape and is the layer tests and
// advanced callers use directly to reach Intersection/XOR/BackRef operator
// nodes, which Compile (the regexp/syntax-driven frontend) never emits on
// its own since the standard syntax has no equivalent construct for them.
//
// Mirrors nfa.Builder's AddX()-returns-Pos shape.
type Builder struct {
	nodes []Node
}

// NewBuilder creates an empty tree builder with default capacity.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates an empty tree builder with the given
// initial arena capacity.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{nodes: make([]Node, 0, capacity)}
}

func (b *Builder) push(n Node) Pos {
	p := Pos(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return p
}

// AddLiteral adds a position node that matches exactly one byte c.
func (b *Builder) AddLiteral(c byte) Pos {
	return b.push(Node{Kind: KindLiteral, Literal: c, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddCharClass adds a position node matching any byte in the 256-entry
// membership table (or its complement, if negated).
func (b *Builder) AddCharClass(bits [256]bool, negated bool) Pos {
	return b.push(Node{Kind: KindCharClass, CharClass: bits, Negated: negated, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddDot adds a "match any byte" position, optionally also matching the
// configured delimiter byte (matchDelim corresponds to (?s:.)).
func (b *Builder) AddDot(matchDelim bool) Pos {
	return b.push(Node{Kind: KindDot, MatchDelim: matchDelim, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddBegLine adds a begin-of-line anchor position (^).
func (b *Builder) AddBegLine() Pos {
	return b.push(Node{Kind: KindBegLine, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddEndLine adds an end-of-line anchor position ($).
func (b *Builder) AddEndLine() Pos {
	return b.push(Node{Kind: KindEndLine, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddEOP adds the end-of-pattern sentinel position. Every tree must contain
// exactly one EOP, reachable from the last position(s) of the pattern.
func (b *Builder) AddEOP() Pos {
	return b.push(Node{Kind: KindEOP, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// AddOperator adds one half of a twin operator (Intersection, XOR, or
// BackRef). Call AddOperator twice with the same opKind and id, then link
// them with LinkPair.
func (b *Builder) AddOperator(opKind OperatorKind, id uint32) Pos {
	return b.push(Node{Kind: KindOperator, OpKind: opKind, OpID: id, Pair: NoPos, NonGreedyPair: NoPos, NearRootNonGreedyPair: NoPos})
}

// LinkPair cross-links two operator twins symmetrically.
func (b *Builder) LinkPair(a, c Pos) {
	b.nodes[a].Pair = c
	b.nodes[c].Pair = a
}

// AddConcat adds a sequencing composite: matches left then right.
func (b *Builder) AddConcat(left, right Pos) Pos {
	return b.push(Node{Kind: KindConcat, Left: left, Right: right})
}

// AddUnion adds an alternation composite: matches left or right.
func (b *Builder) AddUnion(left, right Pos) Pos {
	return b.push(Node{Kind: KindUnion, Left: left, Right: right})
}

// AddQmark adds an optional composite (child?).
func (b *Builder) AddQmark(child Pos, nonGreedy bool) Pos {
	return b.push(Node{Kind: KindQmark, Left: child, NonGreedy: nonGreedy})
}

// AddStar adds a zero-or-more composite (child*).
func (b *Builder) AddStar(child Pos, nonGreedy bool) Pos {
	return b.push(Node{Kind: KindStar, Left: child, NonGreedy: nonGreedy})
}

// AddPlus adds a one-or-more composite (child+).
func (b *Builder) AddPlus(child Pos, nonGreedy bool) Pos {
	return b.push(Node{Kind: KindPlus, Left: child, NonGreedy: nonGreedy})
}

// AddIntersection wraps left and right in a twin Intersection operator pair
// and returns the composite node representing their conjunction (left & right,
// over the positions' shared alphabet).
func (b *Builder) AddIntersection(left, right Pos, id uint32) Pos {
	lhsOp := b.AddOperator(OpIntersection, id)
	rhsOp := b.AddOperator(OpIntersection, id)
	b.LinkPair(lhsOp, rhsOp)
	return b.push(Node{Kind: KindIntersection, Left: left, Right: right, OpID: id, OpLeft: lhsOp, OpRight: rhsOp})
}

// AddXOR wraps left and right in a twin XOR operator pair and returns the
// composite node representing their exclusive-or.
func (b *Builder) AddXOR(left, right Pos, id uint32) Pos {
	lhsOp := b.AddOperator(OpXOR, id)
	rhsOp := b.AddOperator(OpXOR, id)
	b.LinkPair(lhsOp, rhsOp)
	return b.push(Node{Kind: KindXOR, Left: left, Right: right, OpID: id, OpLeft: lhsOp, OpRight: rhsOp})
}

// Node exposes a node by Pos, for callers annotating first/last/follow
// directly (see Annotate).
func (b *Builder) Node(p Pos) *Node {
	if p == NoPos || int(p) >= len(b.nodes) {
		return nil
	}
	return &b.nodes[p]
}

// Len returns the current arena size.
func (b *Builder) Len() int { return len(b.nodes) }

// Finish freezes the builder into a Tree rooted at root. The caller is
// responsible for having annotated First/Last/Follow/Nullable on every node
// that needs them (directly, or via Annotate).
func (b *Builder) Finish(root Pos) *Tree {
	return &Tree{Nodes: b.nodes, Root: root}
}
