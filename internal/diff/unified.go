package diff

import (
	"bytes"
	"fmt"
	"io"
)

// NoNewlineMarker follows a body line that has no line terminator.
const NoNewlineMarker = `\ No newline at end of file`

// Labels name the two sides in the file headers.
type Labels struct {
	Old string
	New string
}

// Unified wraps UnifiedTo to return a string instead of writing it to a writer.
func Unified(old, new []string, hunks []Hunk, labels Labels) string {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = UnifiedTo(&buf, old, new, hunks, labels)
	return buf.String()
}

// UnifiedTo writes hunks as a unified diff. old and new are the line
// sequences the hunks were computed from. The file headers are written even
// when there are no hunks.
func UnifiedTo(w io.Writer, old, new []string, hunks []Hunk, labels Labels) error {
	p := &printer{w: w}
	p.printf("--- a/%s\n", labels.Old)
	p.printf("+++ b/%s\n", labels.New)
	for _, h := range hunks {
		p.printHeader(h.Header())
		for _, op := range h {
			s := op.Span()
			switch op.(type) {
			case Equal:
				p.printLines(' ', old[s.OldIndex:s.OldEnd()])
			case Delete:
				p.printLines('-', old[s.OldIndex:s.OldEnd()])
			case Insert:
				p.printLines('+', new[s.NewIndex:s.NewEnd()])
			case Replace:
				p.printLines('-', old[s.OldIndex:s.OldEnd()])
				p.printLines('+', new[s.NewIndex:s.NewEnd()])
			default:
				panic(fmt.Sprintf("diff: unknown op %T", op))
			}
		}
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

// printHeader writes the "@@ -l,s +l,s @@" line. Starts are one-based; an
// empty side reports the line after which the change happens, so a hunk that
// inserts at the top of the document has old start 0.
func (p *printer) printHeader(s Span) {
	p.printf("@@ -%d,%d +%d,%d @@\n", lineNumber(s.OldIndex, s.OldLen), s.OldLen, lineNumber(s.NewIndex, s.NewLen), s.NewLen)
}

func (p *printer) printLines(prefix byte, lines []string) {
	for _, line := range lines {
		p.printf("%c%s", prefix, line)
		if !hasTerminator(line) {
			p.printf("\n%s\n", NoNewlineMarker)
		}
	}
}

func (p *printer) printf(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}

func lineNumber(index, length int) int {
	if length == 0 {
		return index
	}
	return index + 1
}
