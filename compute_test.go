package linediff

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Identical(t *testing.T) {
	lines := []string{"one", "two", "three"}
	diff := ComputeDiff(lines, lines)
	assert.Empty(t, diff.Changes)
	assert.Empty(t, diff.Moves)
	assert.False(t, diff.QuitEarly)
}

func TestComputeDiff_EmptyOriginal(t *testing.T) {
	diff := ComputeDiff(nil, []string{"x", "y"})
	want := []DetailedLineRangeMapping{{
		LineRangeMapping: LineRangeMapping{
			Original: LineRange{1, 2},
			Modified: LineRange{1, 3},
		},
		InnerChanges: []RangeMapping{{
			OriginalRange: NewRange(1, 1, 1, 1),
			ModifiedRange: NewRange(1, 1, 2, 2),
		}},
	}}
	if d := cmp.Diff(want, diff.Changes); d != "" {
		t.Errorf("ComputeDiff changes mismatch (-want +got):\n%s", d)
	}
}

func TestComputeDiff_ChangedMiddleLine(t *testing.T) {
	diff := ComputeDiff(
		[]string{"hello", "original", "world"},
		[]string{"hello", "modified", "world"},
	)
	want := []DetailedLineRangeMapping{{
		LineRangeMapping: LineRangeMapping{
			Original: LineRange{2, 3},
			Modified: LineRange{2, 3},
		},
		InnerChanges: []RangeMapping{{
			OriginalRange: NewRange(2, 1, 2, 9),
			ModifiedRange: NewRange(2, 1, 2, 9),
		}},
	}}
	if d := cmp.Diff(want, diff.Changes); d != "" {
		t.Errorf("ComputeDiff changes mismatch (-want +got):\n%s", d)
	}
	assert.False(t, diff.QuitEarly)
}

func TestComputeDiff_AppendedLine(t *testing.T) {
	diff := ComputeDiff(
		[]string{"hello", "original", "world"},
		[]string{"hello", "original", "world", "foobar"},
	)
	want := []DetailedLineRangeMapping{{
		LineRangeMapping: LineRangeMapping{
			Original: LineRange{4, 4},
			Modified: LineRange{4, 5},
		},
		InnerChanges: []RangeMapping{{
			OriginalRange: NewRange(3, 6, 3, 6),
			ModifiedRange: NewRange(3, 6, 4, 7),
		}},
	}}
	if d := cmp.Diff(want, diff.Changes); d != "" {
		t.Errorf("ComputeDiff changes mismatch (-want +got):\n%s", d)
	}
}

func TestComputeDiff_InsertedFirstLine(t *testing.T) {
	diff := ComputeDiff(
		[]string{"a", "b", "c"},
		[]string{"d", "a", "b", "c"},
	)
	want := []DetailedLineRangeMapping{{
		LineRangeMapping: LineRangeMapping{
			Original: LineRange{1, 1},
			Modified: LineRange{1, 2},
		},
		InnerChanges: []RangeMapping{{
			OriginalRange: NewRange(1, 1, 1, 1),
			ModifiedRange: NewRange(1, 1, 2, 1),
		}},
	}}
	if d := cmp.Diff(want, diff.Changes); d != "" {
		t.Errorf("ComputeDiff changes mismatch (-want +got):\n%s", d)
	}
}

func TestComputeDiff_WorkedExample(t *testing.T) {
	diff := ComputeDiff(
		[]string{"hello", "original", "world"},
		[]string{"hello", "modified", "world", "foobar"},
		WithIgnoreTrimWhitespace(),
		WithComputeMoves(),
	)
	want := []DetailedLineRangeMapping{
		{
			LineRangeMapping: LineRangeMapping{
				Original: LineRange{2, 3},
				Modified: LineRange{2, 3},
			},
			InnerChanges: []RangeMapping{{
				OriginalRange: NewRange(2, 1, 2, 9),
				ModifiedRange: NewRange(2, 1, 2, 9),
			}},
		},
		{
			LineRangeMapping: LineRangeMapping{
				Original: LineRange{4, 4},
				Modified: LineRange{4, 5},
			},
			InnerChanges: []RangeMapping{{
				OriginalRange: NewRange(3, 6, 3, 6),
				ModifiedRange: NewRange(3, 6, 4, 7),
			}},
		},
	}
	if d := cmp.Diff(want, diff.Changes); d != "" {
		t.Errorf("ComputeDiff changes mismatch (-want +got):\n%s", d)
	}
	assert.Empty(t, diff.Moves)
	assert.False(t, diff.QuitEarly)
}

func TestComputeDiff_LargeUnevenChange(t *testing.T) {
	// A changed region big enough to leave the DP fast path behind,
	// with sides of very different length.
	original := []string{"same", strings.Repeat("0123456789", 40), "same2"}
	modified := []string{"same", strings.Repeat("0123456789", 20), "same2"}

	diff := ComputeDiff(original, modified)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, LineRange{2, 3}, diff.Changes[0].Original)
	assert.Equal(t, LineRange{2, 3}, diff.Changes[0].Modified)

	edit := diff.ToStringEdit(original, modified)
	got := edit.Apply(strings.Join(original, "\n"))
	assert.Equal(t, strings.Join(modified, "\n"), got)
}

func TestComputeDiff_DeletedLineFlipSymmetry(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "c"}

	forward := ComputeDiff(a, b)
	require.Len(t, forward.Changes, 1)
	assert.Equal(t, LineRange{2, 3}, forward.Changes[0].Original)
	assert.Equal(t, LineRange{2, 2}, forward.Changes[0].Modified)

	backward := ComputeDiff(b, a)
	require.Len(t, backward.Changes, 1)
	if d := cmp.Diff(forward.Changes[0].Flip(), backward.Changes[0]); d != "" {
		t.Errorf("reverse diff is not the flip of the forward diff (-want +got):\n%s", d)
	}
}

func TestComputeDiff_IgnoreTrimWhitespace(t *testing.T) {
	original := []string{"a", " b "}
	modified := []string{"a", "b"}

	diff := ComputeDiff(original, modified, WithIgnoreTrimWhitespace())
	assert.Empty(t, diff.Changes)

	diff = ComputeDiff(original, modified)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, LineRange{2, 3}, diff.Changes[0].Original)
	assert.Equal(t, LineRange{2, 3}, diff.Changes[0].Modified)
	assert.NotEmpty(t, diff.Changes[0].InnerChanges,
		"whitespace-only line change should carry character detail")
}

func TestComputeDiff_ChangesAreOrderedAndSeparated(t *testing.T) {
	tests := []struct {
		name               string
		original, modified []string
	}{
		{
			name:     "scattered edits",
			original: []string{"a", "b", "c", "d", "e", "f", "g"},
			modified: []string{"a", "B", "c", "d", "E", "f", "G"},
		},
		{
			name:     "mixed inserts and deletes",
			original: []string{"one", "two", "three", "four"},
			modified: []string{"one", "inserted", "two", "four", "five"},
		},
		{
			name:     "indentation only",
			original: []string{"if x {", "y()", "}"},
			modified: []string{"if x {", "\ty()", "}"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := ComputeDiff(tt.original, tt.modified)
			for i, c := range diff.Changes {
				assert.LessOrEqual(t, 1, c.Original.Start)
				assert.LessOrEqual(t, c.Original.EndExclusive, len(tt.original)+1)
				assert.LessOrEqual(t, 1, c.Modified.Start)
				assert.LessOrEqual(t, c.Modified.EndExclusive, len(tt.modified)+1)
				if i > 0 {
					prev := diff.Changes[i-1]
					assert.GreaterOrEqual(t, c.Original.Start-prev.Original.EndExclusive, 1)
					assert.GreaterOrEqual(t, c.Modified.Start-prev.Modified.EndExclusive, 1)
				}
			}
		})
	}
}

func TestComputeDiff_Deterministic(t *testing.T) {
	original := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	modified := []string{"alpha", "Beta", "gamma", "zeta", "delta"}
	first := ComputeDiff(original, modified)
	for i := 0; i < 5; i++ {
		if d := cmp.Diff(first, ComputeDiff(original, modified)); d != "" {
			t.Fatalf("run %d differs from first run (-want +got):\n%s", i+1, d)
		}
	}
}

func TestComputeDiff_TimeBudgetDegradesGracefully(t *testing.T) {
	original := make([]string, 1000)
	modified := make([]string, 1000)
	for i := range original {
		original[i] = fmt.Sprintf("alpha %d", i)
		modified[i] = fmt.Sprintf("beta %d", i)
	}

	diff := ComputeDiff(original, modified, WithMaxComputationTime(time.Nanosecond))
	assert.True(t, diff.QuitEarly)
	require.NotEmpty(t, diff.Changes)

	// Even a degraded diff must still transform original into modified.
	edit := diff.ToStringEdit(original, modified)
	got := edit.Apply(strings.Join(original, "\n"))
	assert.Equal(t, strings.Join(modified, "\n"), got)
}
