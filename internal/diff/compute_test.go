package diff

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	for _, tc := range []struct {
		name string
		old  string
		new  string
		want []Op
	}{
		{name: "both empty", old: "", new: "", want: nil},
		{name: "identical", old: "a\nb\n", new: "a\nb\n", want: []Op{Equal{OldIndex: 0, NewIndex: 0, Len: 2}}},
		{name: "create", old: "", new: "a\nb\n", want: []Op{Insert{OldIndex: 0, NewIndex: 0, NewLen: 2}}},
		{name: "truncate", old: "a\nb\n", new: "", want: []Op{Delete{OldIndex: 0, OldLen: 2, NewIndex: 0}}},
		{
			name: "replace middle",
			old:  "a\nb\nc\n",
			new:  "a\nx\nc\n",
			want: []Op{
				Equal{OldIndex: 0, NewIndex: 0, Len: 1},
				Replace{OldIndex: 1, OldLen: 1, NewIndex: 1, NewLen: 1},
				Equal{OldIndex: 2, NewIndex: 2, Len: 1},
			},
		},
		{
			name: "append",
			old:  "a\n",
			new:  "a\nb\nc\n",
			want: []Op{
				Equal{OldIndex: 0, NewIndex: 0, Len: 1},
				Insert{OldIndex: 1, NewIndex: 1, NewLen: 2},
			},
		},
		{
			name: "drop first",
			old:  "a\nb\nc\n",
			new:  "b\nc\n",
			want: []Op{
				Delete{OldIndex: 0, OldLen: 1, NewIndex: 0},
				Equal{OldIndex: 1, NewIndex: 0, Len: 2},
			},
		},
		{
			name: "terminator is part of the line",
			old:  "a\nb",
			new:  "a\nb\n",
			want: []Op{
				Equal{OldIndex: 0, NewIndex: 0, Len: 1},
				Replace{OldIndex: 1, OldLen: 1, NewIndex: 1, NewLen: 1},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(SplitLines(tc.old), SplitLines(tc.new))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Compute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		old, new := randomLines(rng, 12), randomLines(rng, 12)
		ops := Compute(old, new)
		checkCoverage(t, old, new, ops)
		checkRoundTrip(t, old, new, ops)
		if got, want := ChangedLines(ops), editDistance(old, new); got != want {
			t.Fatalf("old=%q new=%q: changed lines %d, edit distance %d; ops=%v", old, new, got, want, ops)
		}
	}
}

func TestCompute_LargeInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		b.WriteString(strings.Repeat("x", i%17))
		b.WriteString("\n")
	}
	before := b.String()
	after := strings.Replace(before, "xxxxx\n", "yyyyy\n", 3)
	old, new := SplitLines(before), SplitLines(after)
	ops := Compute(old, new)
	checkCoverage(t, old, new, ops)
	checkRoundTrip(t, old, new, ops)
	assert.Equal(t, 6, ChangedLines(ops))
}

func TestEncodeLines_OneSidedLinesShareARune(t *testing.T) {
	old := []string{"a\n", "b\n", "x\n", "c\n", "x\n"}
	new := []string{"d\n", "x\n", "e\n", "a\n"}
	o, n, ok := encodeLines(old, new)
	require.True(t, ok)
	assert.Equal(t, []rune{3, 0, 2, 0, 2}, o)
	assert.Equal(t, []rune{1, 2, 1, 3}, n)
}

func TestCompute_MinimalWithManyOneSidedLines(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		old := withUnique(rng, randomLines(rng, 12), "o")
		new := withUnique(rng, randomLines(rng, 12), "n")
		ops := Compute(old, new)
		checkCoverage(t, old, new, ops)
		checkRoundTrip(t, old, new, ops)
		if got, want := ChangedLines(ops), editDistance(old, new); got != want {
			t.Fatalf("old=%q new=%q: changed lines %d, edit distance %d; ops=%v", old, new, got, want, ops)
		}
	}
}

// withUnique replaces some lines with lines that appear nowhere else.
func withUnique(rng *rand.Rand, lines []string, tag string) []string {
	for i := range lines {
		if rng.Intn(3) == 0 {
			lines[i] = fmt.Sprintf("%s%d-%d\n", tag, i, rng.Intn(1000))
		}
	}
	return lines
}

func TestLineRune_SkipsSurrogates(t *testing.T) {
	assert.Equal(t, rune(0xD7FF), lineRune(0xD7FF))
	assert.Equal(t, rune(0xE000), lineRune(0xD800))
	assert.Equal(t, rune(0x10FFFF), lineRune(maxDistinct-1))
}

// checkCoverage verifies that ops partition both sequences in order.
func checkCoverage(t *testing.T, old, new []string, ops []Op) {
	t.Helper()
	var oi, ni int
	for _, op := range ops {
		s := op.Span()
		require.Equal(t, oi, s.OldIndex, "old side gap or overlap at %v in %v", op, ops)
		require.Equal(t, ni, s.NewIndex, "new side gap or overlap at %v in %v", op, ops)
		switch o := op.(type) {
		case Equal:
			require.Positive(t, o.Len)
		case Delete:
			require.Positive(t, o.OldLen)
		case Insert:
			require.Positive(t, o.NewLen)
		case Replace:
			require.Positive(t, o.OldLen)
			require.Positive(t, o.NewLen)
		}
		oi, ni = s.OldEnd(), s.NewEnd()
	}
	require.Equal(t, len(old), oi)
	require.Equal(t, len(new), ni)
}

// checkRoundTrip rebuilds both texts from the ops.
func checkRoundTrip(t *testing.T, old, new []string, ops []Op) {
	t.Helper()
	var gotOld, gotNew strings.Builder
	for _, op := range ops {
		s := op.Span()
		if _, ok := op.(Insert); !ok {
			gotOld.WriteString(strings.Join(old[s.OldIndex:s.OldEnd()], ""))
		}
		switch op.(type) {
		case Equal:
			// Equal claims the old lines reappear unchanged.
			gotNew.WriteString(strings.Join(old[s.OldIndex:s.OldEnd()], ""))
		case Insert, Replace:
			gotNew.WriteString(strings.Join(new[s.NewIndex:s.NewEnd()], ""))
		}
	}
	require.Equal(t, strings.Join(old, ""), gotOld.String())
	require.Equal(t, strings.Join(new, ""), gotNew.String())
}

// editDistance is the insert/delete distance via a quadratic LCS table.
func editDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return len(a) + len(b) - 2*prev[len(b)]
}
