package linediff

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// OffsetRange is a 0-based, half-open [Start, EndExclusive) range over a
// flat index space: characters within a string or elements within a
// slice.
type OffsetRange struct {
	Start        int
	EndExclusive int
}

// NewOffsetRange creates an OffsetRange. It returns ErrInvalidRange if
// start > endExclusive.
func NewOffsetRange(start, endExclusive int) (OffsetRange, error) {
	if start > endExclusive {
		return OffsetRange{}, errors.Wrapf(ErrInvalidRange, "offset range [%d,%d)", start, endExclusive)
	}
	return OffsetRange{Start: start, EndExclusive: endExclusive}, nil
}

// OffsetRangeOfLength returns the range [start, start+length).
func OffsetRangeOfLength(start, length int) OffsetRange {
	return OffsetRange{Start: start, EndExclusive: start + length}
}

// String returns a human-readable representation of the range.
func (r OffsetRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.EndExclusive)
}

// Length returns the number of indices the range covers.
func (r OffsetRange) Length() int {
	return r.EndExclusive - r.Start
}

// IsEmpty reports whether the range covers no indices.
func (r OffsetRange) IsEmpty() bool {
	return r.Start == r.EndExclusive
}

// Contains reports whether offset lies within the range.
func (r OffsetRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.EndExclusive
}

// Delta returns the range shifted by offset.
func (r OffsetRange) Delta(offset int) OffsetRange {
	return OffsetRange{Start: r.Start + offset, EndExclusive: r.EndExclusive + offset}
}

// DeltaStart returns the range with only the start shifted.
func (r OffsetRange) DeltaStart(offset int) OffsetRange {
	return OffsetRange{Start: r.Start + offset, EndExclusive: r.EndExclusive}
}

// DeltaEnd returns the range with only the end shifted.
func (r OffsetRange) DeltaEnd(offset int) OffsetRange {
	return OffsetRange{Start: r.Start, EndExclusive: r.EndExclusive + offset}
}

// Join returns the smallest range enclosing r and other.
func (r OffsetRange) Join(other OffsetRange) OffsetRange {
	return OffsetRange{
		Start:        min(r.Start, other.Start),
		EndExclusive: max(r.EndExclusive, other.EndExclusive),
	}
}

// Intersect returns the overlap of r and other. The second result is
// false when the ranges neither overlap nor touch.
func (r OffsetRange) Intersect(other OffsetRange) (OffsetRange, bool) {
	start := max(r.Start, other.Start)
	end := min(r.EndExclusive, other.EndExclusive)
	if start > end {
		return OffsetRange{}, false
	}
	return OffsetRange{Start: start, EndExclusive: end}, true
}

// IntersectsOrTouches reports whether the ranges overlap or are
// directly adjacent.
func (r OffsetRange) IntersectsOrTouches(other OffsetRange) bool {
	return r.Start <= other.EndExclusive && other.Start <= r.EndExclusive
}

// IntersectsStrict reports whether the ranges share at least one index.
func (r OffsetRange) IntersectsStrict(other OffsetRange) bool {
	return r.Start < other.EndExclusive && other.Start < r.EndExclusive
}

// OffsetRangeSet is a sorted union of non-overlapping, non-touching
// ranges. The zero value is an empty set.
type OffsetRangeSet struct {
	ranges []OffsetRange
}

// AddRange inserts r into the set, merging it with every existing range
// it intersects or touches so that the sorted, maximally merged
// invariant is preserved.
func (s *OffsetRangeSet) AddRange(r OffsetRange) {
	if r.IsEmpty() {
		return
	}
	// Find the window of existing ranges that r intersects or touches.
	lo := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].EndExclusive >= r.Start
	})
	hi := lo
	for hi < len(s.ranges) && s.ranges[hi].Start <= r.EndExclusive {
		hi++
	}
	if lo == hi {
		s.ranges = append(s.ranges, OffsetRange{})
		copy(s.ranges[lo+1:], s.ranges[lo:])
		s.ranges[lo] = r
		return
	}
	merged := r
	merged = merged.Join(s.ranges[lo])
	merged = merged.Join(s.ranges[hi-1])
	s.ranges[lo] = merged
	s.ranges = append(s.ranges[:lo+1], s.ranges[hi:]...)
}

// Intersects reports whether r shares at least one index with the set.
func (s *OffsetRangeSet) Intersects(r OffsetRange) bool {
	for _, existing := range s.ranges {
		if existing.Start >= r.EndExclusive {
			break
		}
		if existing.IntersectsStrict(r) {
			return true
		}
	}
	return false
}

// Ranges returns the ranges in the set in ascending order.
func (s *OffsetRangeSet) Ranges() []OffsetRange {
	return s.ranges
}

// Length returns the total number of indices covered by the set.
func (s *OffsetRangeSet) Length() int {
	total := 0
	for _, r := range s.ranges {
		total += r.Length()
	}
	return total
}
