package diff

// DefaultContext is the number of context lines used when none is requested.
const DefaultContext = 3

// Options control how a unified diff is produced.
// Context is the number of unchanged lines kept around each change; negative
// values are treated as zero. Labels name the old and new sides in the
// "---"/"+++" headers.
type Options struct {
	Context int
	Labels  Labels
}

// Result is the outcome of diffing two texts.
type Result struct {
	Ops     []Op
	Hunks   []Hunk
	Unified string
}

// Changed reports whether the diff has at least one hunk.
func (r Result) Changed() bool { return len(r.Hunks) > 0 }

// HasChanges reports whether the inputs differ.
func HasChanges(before, after string) bool { return before != after }

// Text diffs before against after line by line and formats the result as a
// unified diff. When the texts are equal the output is only the file headers.
func Text(before, after string, opts Options) Result {
	old, new := SplitLines(before), SplitLines(after)
	ops := Compute(old, new)
	hunks := Group(ops, opts.Context)
	return Result{
		Ops:     ops,
		Hunks:   hunks,
		Unified: Unified(old, new, hunks, opts.Labels),
	}
}
