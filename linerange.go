package linediff

import (
	"fmt"

	"github.com/pkg/errors"
)

// LineRange is a 1-based, half-open [Start, EndExclusive) span of lines.
type LineRange struct {
	Start        int
	EndExclusive int
}

// NewLineRange creates a LineRange. It returns ErrInvalidRange if
// start > endExclusive.
func NewLineRange(start, endExclusive int) (LineRange, error) {
	if start > endExclusive {
		return LineRange{}, errors.Wrapf(ErrInvalidRange, "line range [%d,%d)", start, endExclusive)
	}
	return LineRange{Start: start, EndExclusive: endExclusive}, nil
}

// LineRangeOfLength returns the range [start, start+length).
func LineRangeOfLength(start, length int) LineRange {
	return LineRange{Start: start, EndExclusive: start + length}
}

// String returns a human-readable representation of the range.
func (r LineRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.EndExclusive)
}

// Length returns the number of lines the range covers.
func (r LineRange) Length() int {
	return r.EndExclusive - r.Start
}

// IsEmpty reports whether the range covers no lines.
func (r LineRange) IsEmpty() bool {
	return r.Start == r.EndExclusive
}

// Contains reports whether lineNumber lies within the range.
func (r LineRange) Contains(lineNumber int) bool {
	return lineNumber >= r.Start && lineNumber < r.EndExclusive
}

// Delta returns the range shifted by offset.
func (r LineRange) Delta(offset int) LineRange {
	return LineRange{Start: r.Start + offset, EndExclusive: r.EndExclusive + offset}
}

// Join returns the smallest range enclosing r and other.
func (r LineRange) Join(other LineRange) LineRange {
	return LineRange{
		Start:        min(r.Start, other.Start),
		EndExclusive: max(r.EndExclusive, other.EndExclusive),
	}
}

// Intersect returns the overlap of r and other. The second result is
// false when the ranges neither overlap nor touch.
func (r LineRange) Intersect(other LineRange) (LineRange, bool) {
	start := max(r.Start, other.Start)
	end := min(r.EndExclusive, other.EndExclusive)
	if start > end {
		return LineRange{}, false
	}
	return LineRange{Start: start, EndExclusive: end}, true
}

// IntersectsOrTouches reports whether the ranges overlap or are
// directly adjacent.
func (r LineRange) IntersectsOrTouches(other LineRange) bool {
	return r.Start <= other.EndExclusive && other.Start <= r.EndExclusive
}

// ToOffsetRange converts the 1-based line range to a 0-based offset
// range over line indices.
func (r LineRange) ToOffsetRange() OffsetRange {
	return OffsetRange{Start: r.Start - 1, EndExclusive: r.EndExclusive - 1}
}

// LineRangeFromOffsetRange converts a 0-based offset range over line
// indices back to a 1-based line range.
func LineRangeFromOffsetRange(r OffsetRange) LineRange {
	return LineRange{Start: r.Start + 1, EndExclusive: r.EndExclusive + 1}
}

// ToRange converts the line range to a character Range assuming an
// infinite document: the result runs from column 1 of the first line to
// column 1 of EndExclusive, without consulting actual line lengths. An
// empty line range becomes an empty Range at (Start, 1), which keeps
// "insert before line N" from spanning real content.
func (r LineRange) ToRange() Range {
	return NewRange(r.Start, 1, r.EndExclusive, 1)
}

// ToClampedRange converts the line range to an inclusive character
// Range bounded by the actual line lengths of lines. An empty range
// collapses to a single position: the start of line Start, clamped to
// the document end.
func (r LineRange) ToClampedRange(lines []string) Range {
	if len(lines) == 0 {
		return NewRange(1, 1, 1, 1)
	}
	if r.IsEmpty() {
		if r.Start > len(lines) {
			last := len(lines)
			return NewRange(last, utf16Length(lines[last-1])+1, last, utf16Length(lines[last-1])+1)
		}
		return NewRange(r.Start, 1, r.Start, 1)
	}
	lastLine := min(r.EndExclusive-1, len(lines))
	return NewRange(r.Start, 1, lastLine, utf16Length(lines[lastLine-1])+1)
}
