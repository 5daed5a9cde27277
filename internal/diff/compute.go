package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Distinct lines are encoded as runes so the line sequences can be diffed
// by diffmatchpatch. Surrogate code points are skipped because they do not
// survive the conversion to string that diffmatchpatch performs.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
	maxDistinct  = utf8.MaxRune + 1 - surrogateLen
)

// Compute returns a minimal edit script turning old into new. Equal lines are
// coalesced into maximal runs and a deletion directly followed by an insertion
// is reported as a Replace. The old-side spans of the result cover
// [0, len(old)) exactly and the new-side spans cover [0, len(new)).
func Compute(old, new []string) []Op {
	if len(old) == 0 && len(new) == 0 {
		return nil
	}
	oldRunes, newRunes, ok := encodeLines(old, new)
	if !ok {
		// More distinct shared lines than runes.
		return []Op{changeOp(0, len(old), 0, len(new))}
	}

	dmp := diffmatchpatch.New()
	// No deadline: bisection runs to completion and the half-match speedup,
	// which can give non-minimal results, is disabled.
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	var (
		ops        []Op
		oi, ni     int
		dels, inss int
	)
	flush := func() {
		if dels == 0 && inss == 0 {
			return
		}
		ops = append(ops, changeOp(oi, dels, ni, inss))
		oi += dels
		ni += inss
		dels, inss = 0, 0
	}
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			dels += n
		case diffmatchpatch.DiffInsert:
			inss += n
		case diffmatchpatch.DiffEqual:
			flush()
			if k := len(ops) - 1; k >= 0 {
				if eq, ok := ops[k].(Equal); ok {
					eq.Len += n
					ops[k] = eq
					oi += n
					ni += n
					continue
				}
			}
			ops = append(ops, Equal{OldIndex: oi, NewIndex: ni, Len: n})
			oi += n
			ni += n
		}
	}
	flush()
	return ops
}

// changeOp builds the op for a change region of dels old lines and inss new
// lines. At least one of them must be non-zero.
func changeOp(oi, dels, ni, inss int) Op {
	switch {
	case dels > 0 && inss > 0:
		return Replace{OldIndex: oi, OldLen: dels, NewIndex: ni, NewLen: inss}
	case dels > 0:
		return Delete{OldIndex: oi, OldLen: dels, NewIndex: ni}
	default:
		return Insert{OldIndex: oi, NewIndex: ni, NewLen: inss}
	}
}

// encodeLines maps every line found on both sides to its own rune. Lines
// found on one side only can never be matched, so all old-only lines share one
// rune and all new-only lines share another. It reports false when there are
// more shared lines than runes.
func encodeLines(old, new []string) ([]rune, []rune, bool) {
	const (
		oldOnly = iota
		newOnly
		firstShared
	)
	inOld := make(map[string]struct{}, len(old))
	for _, line := range old {
		inOld[line] = struct{}{}
	}
	ids := make(map[string]rune)
	for _, line := range new {
		if _, ok := inOld[line]; !ok {
			continue
		}
		if _, seen := ids[line]; seen {
			continue
		}
		if firstShared+len(ids) >= maxDistinct {
			return nil, nil, false
		}
		ids[line] = lineRune(firstShared + len(ids))
	}
	encode := func(lines []string, other rune) []rune {
		out := make([]rune, len(lines))
		for i, line := range lines {
			r, ok := ids[line]
			if !ok {
				r = other
			}
			out[i] = r
		}
		return out
	}
	return encode(old, lineRune(oldOnly)), encode(new, lineRune(newOnly)), true
}

func lineRune(id int) rune {
	r := rune(id)
	if r >= surrogateMin {
		r += surrogateLen
	}
	return r
}
