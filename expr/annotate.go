package expr

// Unbounded is the sentinel MaxLength/MinLength value meaning "no finite
// bound", used in place of an overflow-prone integer max.
const Unbounded = -1

// Annotate computes nullable/first/last/follow/min_length/max_length for
// every node reachable from root, then augments the pattern with the
// end-of-pattern sentinel (the classical Concat(root, EOP) McNaughton-Yamada
// augmentation) and returns the finished Tree.
//
// This performs the "position-set (first/last/follow, nullable, min_length,
// max_length) computation" spec.md §1 lists as an external collaborator to
// the core; it is included here only so the module is runnable end to end,
// grounded on the wiring in original_source/src/expr.cc's FillPosition /
// FillTransition pair (kept as the reference for Intersection/XOR's twin
// bookkeeping, which has no equivalent in any Go example in the pack).
func Annotate(b *Builder, root Pos) *Tree {
	eop := b.AddEOP()
	a := &annotator{b: b}
	a.visit(root)
	rootEOP := b.push(Node{Kind: KindConcat, Left: root, Right: eop})
	a.visit(rootEOP)
	return b.Finish(rootEOP)
}

type annotator struct {
	b *Builder
}

// connect adds dst's first set to the follow set of every position in src.
func (a *annotator) connect(src, dst PositionSet) {
	for _, p := range src {
		n := a.b.Node(p)
		n.Follow, _ = n.Follow.Union(dst)
	}
}

// nonGreedify marks every position in first as the start of a non-greedy
// scope, per spec.md §4.2's contract.
func (a *annotator) nonGreedify(first PositionSet) {
	for _, p := range first {
		a.b.Node(p).NonGreedy = true
	}
}

func addLen(x, y int) int {
	if x == Unbounded || y == Unbounded {
		return Unbounded
	}
	return x + y
}

func maxLen(x, y int) int {
	if x == Unbounded || y == Unbounded {
		return Unbounded
	}
	if x > y {
		return x
	}
	return y
}

func minLen(x, y int) int {
	if x == Unbounded {
		return y
	}
	if y == Unbounded {
		return x
	}
	if x < y {
		return x
	}
	return y
}

// visit computes and stores First/Last/Nullable/MinLength/MaxLength/Follow
// (for internal edges) on the node at p, recursing into children first
// (post-order), and returns them for the caller's use.
func (a *annotator) visit(p Pos) (nullable bool, first, last PositionSet, minL, maxL int) {
	n := a.b.Node(p)

	switch n.Kind {
	case KindLiteral, KindCharClass, KindDot, KindBegLine, KindEndLine, KindEOP, KindOperator:
		first = PositionSet{p}
		last = PositionSet{p}
		nullable = false
		minL, maxL = 1, 1
		if n.Kind == KindEOP {
			minL, maxL = 0, 0
		}

	case KindConcat:
		ln, lf, ll, lmin, lmax := a.visit(n.Left)
		rn, rf, rl, rmin, rmax := a.visit(n.Right)

		first = lf.Clone()
		if ln {
			first, _ = first.Union(rf)
		}
		last = rl.Clone()
		if rn {
			last, _ = last.Union(ll)
		}
		nullable = ln && rn
		minL = addLen(lmin, rmin)
		maxL = addLen(lmax, rmax)

		a.connect(ll, rf)

	case KindUnion:
		ln, lf, ll, lmin, lmax := a.visit(n.Left)
		rn, rf, rl, rmin, rmax := a.visit(n.Right)

		first = lf.Clone()
		first, _ = first.Union(rf)
		last = ll.Clone()
		last, _ = last.Union(rl)
		nullable = ln || rn
		minL = minLen(lmin, rmin)
		maxL = maxLen(lmax, rmax)

	case KindQmark:
		_, lf, ll, lmin, lmax := a.visit(n.Left)
		_ = lmin
		first = lf.Clone()
		last = ll.Clone()
		nullable = true
		minL = 0
		maxL = lmax
		if n.NonGreedy {
			n.RootNonGreedy = true
			a.nonGreedify(first)
		}

	case KindStar:
		_, lf, ll, _, _ := a.visit(n.Left)
		first = lf.Clone()
		last = ll.Clone()
		nullable = true
		minL = 0
		maxL = Unbounded
		a.connect(ll, lf)
		if n.NonGreedy {
			n.RootNonGreedy = true
			a.nonGreedify(first)
		}

	case KindPlus:
		ln, lf, ll, lmin, _ := a.visit(n.Left)
		first = lf.Clone()
		last = ll.Clone()
		nullable = ln
		minL = lmin
		maxL = Unbounded
		a.connect(ll, lf)
		if n.NonGreedy {
			n.RootNonGreedy = true
			a.nonGreedify(first)
		}

	case KindIntersection:
		ln, lf, ll, lmin, lmax := a.visit(n.Left)
		rn, rf, rl, rmin, rmax := a.visit(n.Right)

		lop, rop := PositionSet{n.OpLeft}, PositionSet{n.OpRight}
		a.connect(ll, lop)
		a.connect(rl, rop)

		first = lf.Clone()
		if ln {
			first, _ = first.Union(lop)
		}
		first, _ = first.Union(rf)
		if rn {
			first, _ = first.Union(rop)
		}
		last = PositionSet{n.OpLeft, n.OpRight}
		nullable = ln && rn
		minL = maxLen(lmin, rmin) // intersection can only be as short as the longer-minimum branch allows
		maxL = minLen(lmax, rmax)
		if maxL == Unbounded && (lmax == Unbounded) != (rmax == Unbounded) {
			// One side is bounded: intersection can't exceed it.
			if lmax != Unbounded {
				maxL = lmax
			} else {
				maxL = rmax
			}
		}

	case KindXOR:
		ln, lf, ll, lmin, _ := a.visit(n.Left)
		rn, rf, rl, rmin, _ := a.visit(n.Right)

		lop, rop := PositionSet{n.OpLeft}, PositionSet{n.OpRight}
		a.connect(ll, lop)
		a.connect(rl, rop)

		first = lf.Clone()
		if ln {
			first, _ = first.Union(lop)
		}
		first, _ = first.Union(rf)
		if rn {
			first, _ = first.Union(rop)
		}
		last = PositionSet{n.OpLeft, n.OpRight}
		nullable = ln != rn
		maxL = Unbounded
		if lmin == 0 && rmin == 0 {
			minL = Unbounded
		} else {
			minL = minLen(lmin, rmin)
		}
	}

	n.First = first
	n.Last = last
	n.Nullable = nullable
	n.MinLength = minL
	n.MaxLength = maxL
	return nullable, first, last, minL, maxL
}
