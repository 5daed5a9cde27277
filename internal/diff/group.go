package diff

import "fmt"

// Hunk is a contiguous run of ops containing at least one change, with at
// most the requested number of unchanged context lines on either side.
type Hunk []Op

// Group partitions ops into hunks. Equal runs longer than 2*context separate
// hunks: the first context lines close the hunk before them, the last context
// lines open the hunk after them and the rest is dropped. Shorter equal runs
// are kept in full. Hunks without a change are discarded.
func Group(ops []Op, context int) []Hunk {
	if context < 0 {
		context = 0
	}
	ops = coalesce(ops)
	if len(ops) == 0 {
		return nil
	}

	var (
		hunks   []Hunk
		pending Hunk
	)
	closeHunk := func() {
		if hasChange(pending) {
			hunks = append(hunks, pending)
		}
		pending = nil
	}
	for i, op := range ops {
		eq, ok := op.(Equal)
		if !ok {
			pending = append(pending, op)
			continue
		}
		first, last := i == 0, i == len(ops)-1
		switch {
		case first && last:
			// Identical inputs.
		case first:
			pending = appendEqual(pending, tail(eq, context))
		case last:
			pending = appendEqual(pending, head(eq, context))
		case eq.Len > 2*context:
			pending = appendEqual(pending, head(eq, context))
			closeHunk()
			pending = appendEqual(pending, tail(eq, context))
		default:
			pending = append(pending, eq)
		}
	}
	closeHunk()
	return hunks
}

// Header returns the hunk's position: zero-based start indexes and the number
// of lines covered on each side. Start is computed from the first op and the
// lengths from the end of the last op.
func (h Hunk) Header() Span {
	if len(h) == 0 {
		panic("diff: empty hunk")
	}
	for i := 1; i < len(h); i++ {
		mustFollow(h[i-1], h[i])
	}
	first, last := h[0].Span(), h[len(h)-1].Span()
	return Span{
		OldIndex: first.OldIndex,
		OldLen:   last.OldEnd() - first.OldIndex,
		NewIndex: first.NewIndex,
		NewLen:   last.NewEnd() - first.NewIndex,
	}
}

// coalesce merges adjacent Equal ops so that each equal run is a single op.
func coalesce(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		if eq, ok := op.(Equal); ok && eq.Len == 0 {
			continue
		}
		if len(out) > 0 {
			mustFollow(out[len(out)-1], op)
			if eq, ok := op.(Equal); ok {
				if prev, ok := out[len(out)-1].(Equal); ok {
					prev.Len += eq.Len
					out[len(out)-1] = prev
					continue
				}
			}
		}
		out = append(out, op)
	}
	return out
}

// head keeps the first n lines of eq.
func head(eq Equal, n int) Equal {
	if eq.Len > n {
		eq.Len = n
	}
	return eq
}

// tail keeps the last n lines of eq.
func tail(eq Equal, n int) Equal {
	if skip := eq.Len - n; skip > 0 {
		eq.OldIndex += skip
		eq.NewIndex += skip
		eq.Len = n
	}
	return eq
}

func appendEqual(h Hunk, eq Equal) Hunk {
	if eq.Len == 0 {
		return h
	}
	return append(h, eq)
}

func hasChange(h Hunk) bool {
	for _, op := range h {
		if IsChange(op) {
			return true
		}
	}
	return false
}

func (h Hunk) String() string {
	s := h.Header()
	return fmt.Sprintf("hunk(old=%d,%d new=%d,%d ops=%d)", s.OldIndex, s.OldLen, s.NewIndex, s.NewLen, len(h))
}
