package linediff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeMapping_JoinAndFlip(t *testing.T) {
	a := RangeMapping{
		OriginalRange: NewRange(1, 2, 1, 5),
		ModifiedRange: NewRange(1, 2, 1, 7),
	}
	b := RangeMapping{
		OriginalRange: NewRange(2, 1, 3, 4),
		ModifiedRange: NewRange(2, 1, 2, 9),
	}

	joined := a.Join(b)
	assert.Equal(t, NewRange(1, 2, 3, 4), joined.OriginalRange)
	assert.Equal(t, NewRange(1, 2, 2, 9), joined.ModifiedRange)

	flipped := a.Flip()
	assert.Equal(t, a.ModifiedRange, flipped.OriginalRange)
	assert.Equal(t, a.OriginalRange, flipped.ModifiedRange)
	assert.Equal(t, a, flipped.Flip())
}

func TestLineRangeMapping_JoinAndFlip(t *testing.T) {
	a := LineRangeMapping{Original: LineRange{1, 3}, Modified: LineRange{1, 2}}
	b := LineRangeMapping{Original: LineRange{5, 6}, Modified: LineRange{4, 8}}

	joined := a.Join(b)
	assert.Equal(t, LineRange{1, 6}, joined.Original)
	assert.Equal(t, LineRange{1, 8}, joined.Modified)

	assert.Equal(t, LineRangeMapping{Original: a.Modified, Modified: a.Original}, a.Flip())
	assert.Equal(t, "{[1,3) -> [1,2)}", a.String())
}

func TestDetailedLineRangeMapping_Flip(t *testing.T) {
	m := DetailedLineRangeMapping{
		LineRangeMapping: LineRangeMapping{Original: LineRange{2, 3}, Modified: LineRange{2, 4}},
		InnerChanges: []RangeMapping{
			{OriginalRange: NewRange(2, 1, 2, 4), ModifiedRange: NewRange(2, 1, 3, 2)},
		},
	}
	flipped := m.Flip()
	assert.Equal(t, LineRange{2, 4}, flipped.Original)
	assert.Equal(t, LineRange{2, 3}, flipped.Modified)
	require.Len(t, flipped.InnerChanges, 1)
	assert.Equal(t, NewRange(2, 1, 3, 2), flipped.InnerChanges[0].OriginalRange)
	assert.Equal(t, NewRange(2, 1, 2, 4), flipped.InnerChanges[0].ModifiedRange)

	// nil inner changes stay nil so "char diffing off" stays
	// distinguishable from "no inner changes found".
	bare := DetailedLineRangeMapping{LineRangeMapping: m.LineRangeMapping}
	assert.Nil(t, bare.Flip().InnerChanges)
}

func TestMovedText_Flip(t *testing.T) {
	m := MovedText{
		Mapping: LineRangeMapping{Original: LineRange{1, 4}, Modified: LineRange{6, 9}},
		Changes: []DetailedLineRangeMapping{
			{LineRangeMapping: LineRangeMapping{Original: LineRange{2, 3}, Modified: LineRange{7, 8}}},
		},
	}
	flipped := m.Flip()
	assert.Equal(t, LineRange{6, 9}, flipped.Mapping.Original)
	assert.Equal(t, LineRange{1, 4}, flipped.Mapping.Modified)
	require.Len(t, flipped.Changes, 1)
	assert.Equal(t, LineRange{7, 8}, flipped.Changes[0].Original)
}

func TestLineRangeMappingFromRangeMapping(t *testing.T) {
	originalLines := []string{"hello", "original", "world"}
	modifiedLines := []string{"hello", "modified", "world", "foobar"}

	tests := []struct {
		name string
		rm   RangeMapping
		want LineRangeMapping
	}{
		{
			name: "interior change keeps its lines",
			rm: RangeMapping{
				OriginalRange: NewRange(2, 1, 2, 9),
				ModifiedRange: NewRange(2, 1, 2, 9),
			},
			want: LineRangeMapping{Original: LineRange{2, 3}, Modified: LineRange{2, 3}},
		},
		{
			name: "both sides ending at column one drop the final line",
			rm: RangeMapping{
				OriginalRange: NewRange(1, 1, 1, 1),
				ModifiedRange: NewRange(1, 1, 2, 1),
			},
			want: LineRangeMapping{Original: LineRange{1, 1}, Modified: LineRange{1, 2}},
		},
		{
			name: "both sides starting past line end drop the first line",
			rm: RangeMapping{
				OriginalRange: NewRange(3, 6, 3, 6),
				ModifiedRange: NewRange(3, 6, 4, 7),
			},
			want: LineRangeMapping{Original: LineRange{4, 4}, Modified: LineRange{4, 5}},
		},
		{
			name: "one side ending mid-line blocks the end rule",
			rm: RangeMapping{
				OriginalRange: NewRange(1, 1, 2, 1),
				ModifiedRange: NewRange(1, 1, 1, 3),
			},
			want: LineRangeMapping{Original: LineRange{1, 3}, Modified: LineRange{1, 2}},
		},
		{
			name: "one side starting mid-line blocks the start rule",
			rm: RangeMapping{
				OriginalRange: NewRange(3, 6, 3, 6),
				ModifiedRange: NewRange(3, 2, 3, 6),
			},
			want: LineRangeMapping{Original: LineRange{3, 4}, Modified: LineRange{3, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineRangeMappingFromRangeMapping(tt.rm, originalLines, modifiedLines)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineRangeMappingsFromRangeMappings(t *testing.T) {
	lines := []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}

	t.Run("empty input yields nil", func(t *testing.T) {
		assert.Nil(t, lineRangeMappingsFromRangeMappings(nil, lines, lines))
	})

	t.Run("touching line spans group together", func(t *testing.T) {
		mappings := []RangeMapping{
			{OriginalRange: NewRange(1, 2, 1, 3), ModifiedRange: NewRange(1, 2, 1, 4)},
			{OriginalRange: NewRange(2, 1, 2, 2), ModifiedRange: NewRange(2, 1, 2, 3)},
		}
		got := lineRangeMappingsFromRangeMappings(mappings, lines, lines)
		require.Len(t, got, 1)
		assert.Equal(t, LineRange{1, 3}, got[0].Original)
		assert.Equal(t, LineRange{1, 3}, got[0].Modified)
		assert.Equal(t, mappings, got[0].InnerChanges)
	})

	t.Run("separated line spans stay apart", func(t *testing.T) {
		mappings := []RangeMapping{
			{OriginalRange: NewRange(1, 2, 1, 3), ModifiedRange: NewRange(1, 2, 1, 4)},
			{OriginalRange: NewRange(4, 1, 4, 2), ModifiedRange: NewRange(4, 1, 4, 3)},
		}
		got := lineRangeMappingsFromRangeMappings(mappings, lines, lines)
		require.Len(t, got, 2)
		assert.Equal(t, LineRange{1, 2}, got[0].Original)
		assert.Equal(t, LineRange{4, 5}, got[1].Original)
		require.Len(t, got[0].InnerChanges, 1)
		require.Len(t, got[1].InnerChanges, 1)
	})

	t.Run("overlap on one side alone is enough to group", func(t *testing.T) {
		mappings := []RangeMapping{
			{OriginalRange: NewRange(1, 2, 1, 3), ModifiedRange: NewRange(1, 2, 1, 4)},
			{OriginalRange: NewRange(4, 1, 4, 2), ModifiedRange: NewRange(2, 1, 2, 3)},
		}
		got := lineRangeMappingsFromRangeMappings(mappings, lines, lines)
		require.Len(t, got, 1)
		assert.Equal(t, LineRange{1, 5}, got[0].Original)
		assert.Equal(t, LineRange{1, 3}, got[0].Modified)
	})
}

func TestAssertSortedRangeMappings_PanicsWithBugError(t *testing.T) {
	mappings := []RangeMapping{
		{OriginalRange: NewRange(3, 1, 3, 5), ModifiedRange: NewRange(3, 1, 3, 5)},
		{OriginalRange: NewRange(1, 1, 1, 5), ModifiedRange: NewRange(1, 1, 1, 5)},
	}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
		var bug *BugError
		assert.True(t, errors.As(err, &bug))
	}()
	assertSortedRangeMappings(mappings)
}

func TestAssertSeparatedMappings_AllowsOneLineGap(t *testing.T) {
	assert.NotPanics(t, func() {
		assertSeparatedMappings([]DetailedLineRangeMapping{
			{LineRangeMapping: LineRangeMapping{Original: LineRange{1, 2}, Modified: LineRange{1, 2}}},
			{LineRangeMapping: LineRangeMapping{Original: LineRange{3, 4}, Modified: LineRange{3, 4}}},
		})
	})
	assert.Panics(t, func() {
		assertSeparatedMappings([]DetailedLineRangeMapping{
			{LineRangeMapping: LineRangeMapping{Original: LineRange{1, 2}, Modified: LineRange{1, 2}}},
			{LineRangeMapping: LineRangeMapping{Original: LineRange{2, 3}, Modified: LineRange{3, 4}}},
		})
	})
}
