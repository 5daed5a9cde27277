package diff

import "fmt"

// Span is the region of both sequences covered by an Op. Indexes are
// zero-based.
type Span struct {
	OldIndex int
	OldLen   int
	NewIndex int
	NewLen   int
}

// OldEnd is the old-side index immediately after the span.
func (s Span) OldEnd() int { return s.OldIndex + s.OldLen }

// NewEnd is the new-side index immediately after the span.
func (s Span) NewEnd() int { return s.NewIndex + s.NewLen }

// Op is one operation of an edit script. The set of implementations is
// closed: Equal, Insert, Delete and Replace.
type Op interface {
	Span() Span
	isOp()
}

// Equal is a run of Len lines present unchanged on both sides.
type Equal struct {
	OldIndex int
	NewIndex int
	Len      int
}

// Delete removes OldLen lines at OldIndex. NewIndex is where the removed
// lines would have been on the new side.
type Delete struct {
	OldIndex int
	OldLen   int
	NewIndex int
}

// Insert adds NewLen lines at NewIndex. OldIndex is the insertion point on
// the old side.
type Insert struct {
	OldIndex int
	NewIndex int
	NewLen   int
}

// Replace is a Delete immediately followed by an Insert at the same
// alignment position.
type Replace struct {
	OldIndex int
	OldLen   int
	NewIndex int
	NewLen   int
}

func (o Equal) Span() Span {
	return Span{OldIndex: o.OldIndex, OldLen: o.Len, NewIndex: o.NewIndex, NewLen: o.Len}
}

func (o Delete) Span() Span {
	return Span{OldIndex: o.OldIndex, OldLen: o.OldLen, NewIndex: o.NewIndex}
}

func (o Insert) Span() Span {
	return Span{OldIndex: o.OldIndex, NewIndex: o.NewIndex, NewLen: o.NewLen}
}

func (o Replace) Span() Span {
	return Span{OldIndex: o.OldIndex, OldLen: o.OldLen, NewIndex: o.NewIndex, NewLen: o.NewLen}
}

func (Equal) isOp()   {}
func (Delete) isOp()  {}
func (Insert) isOp()  {}
func (Replace) isOp() {}

func (o Equal) String() string {
	return fmt.Sprintf("equal(old=%d new=%d len=%d)", o.OldIndex, o.NewIndex, o.Len)
}

func (o Delete) String() string {
	return fmt.Sprintf("delete(old=%d,%d new=%d)", o.OldIndex, o.OldLen, o.NewIndex)
}

func (o Insert) String() string {
	return fmt.Sprintf("insert(old=%d new=%d,%d)", o.OldIndex, o.NewIndex, o.NewLen)
}

func (o Replace) String() string {
	return fmt.Sprintf("replace(old=%d,%d new=%d,%d)", o.OldIndex, o.OldLen, o.NewIndex, o.NewLen)
}

// IsChange reports whether op modifies the text.
func IsChange(op Op) bool {
	switch op.(type) {
	case Equal:
		return false
	case Insert, Delete, Replace:
		return true
	default:
		panic(fmt.Sprintf("diff: unknown op %T", op))
	}
}

// ChangedLines counts the lines removed plus the lines added by ops.
func ChangedLines(ops []Op) int {
	n := 0
	for _, op := range ops {
		if IsChange(op) {
			s := op.Span()
			n += s.OldLen + s.NewLen
		}
	}
	return n
}

// mustFollow panics unless next starts where prev ends on both sides.
func mustFollow(prev, next Op) {
	p, n := prev.Span(), next.Span()
	if p.OldEnd() != n.OldIndex || p.NewEnd() != n.NewIndex {
		panic(fmt.Sprintf("diff: ops not contiguous: %v then %v", prev, next))
	}
}
