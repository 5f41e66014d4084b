package linediff

import (
	"github.com/pkg/errors"
)

// Replacement replaces the elements of a sub-range of a base sequence
// with new content.
type Replacement[T comparable] struct {
	Range   OffsetRange
	NewText []T
}

// Edit is an ordered list of replacements over disjoint, increasing
// sub-ranges of a base sequence. All replacements apply simultaneously:
// every Range refers to offsets in the original sequence, not to the
// sequence as transformed by earlier replacements.
//
// Construction enforces that replacements are sorted and neither
// overlap nor touch; producers must join touching replacements first
// (see TryJoinTouching).
type Edit[T comparable] struct {
	Replacements []Replacement[T]
}

// NewEdit creates an Edit from replacements, validating the ordering
// invariant. It returns ErrInvalidEdit if replacements are unsorted,
// overlap, or touch.
func NewEdit[T comparable](replacements ...Replacement[T]) (Edit[T], error) {
	for i := 1; i < len(replacements); i++ {
		if replacements[i-1].Range.EndExclusive >= replacements[i].Range.Start {
			return Edit[T]{}, errors.Wrapf(ErrInvalidEdit,
				"replacement %d %v is not strictly after %v",
				i, replacements[i].Range, replacements[i-1].Range)
		}
	}
	return Edit[T]{Replacements: replacements}, nil
}

// IsEmpty reports whether the edit changes nothing.
func (e Edit[T]) IsEmpty() bool {
	return len(e.Replacements) == 0
}

// Apply transforms base by applying every replacement, copying the
// untouched gaps verbatim. It panics with a BugError if a replacement
// reaches outside base; the Edit constructor already guarantees the
// ordering invariant.
func (e Edit[T]) Apply(base []T) []T {
	var result []T
	pos := 0
	for _, rep := range e.Replacements {
		assertf(rep.Range.Start >= pos && rep.Range.EndExclusive <= len(base),
			"replacement %v out of bounds (len %d)", rep.Range, len(base))
		result = append(result, base[pos:rep.Range.Start]...)
		result = append(result, rep.NewText...)
		pos = rep.Range.EndExclusive
	}
	result = append(result, base[pos:]...)
	return result
}

// TryJoinTouching merges a and b into one replacement when b starts
// exactly where a ends. It returns false when the replacements are not
// adjacent.
func TryJoinTouching[T comparable](a, b Replacement[T]) (Replacement[T], bool) {
	if a.Range.EndExclusive != b.Range.Start {
		return Replacement[T]{}, false
	}
	joined := make([]T, 0, len(a.NewText)+len(b.NewText))
	joined = append(joined, a.NewText...)
	joined = append(joined, b.NewText...)
	return Replacement[T]{
		Range:   OffsetRange{Start: a.Range.Start, EndExclusive: b.Range.EndExclusive},
		NewText: joined,
	}, true
}

// joinTouchingReplacements collapses runs of touching replacements so
// the result satisfies the Edit construction invariant. Input must be
// sorted and non-overlapping.
func joinTouchingReplacements[T comparable](replacements []Replacement[T]) []Replacement[T] {
	if len(replacements) <= 1 {
		return replacements
	}
	result := make([]Replacement[T], 0, len(replacements))
	current := replacements[0]
	for _, rep := range replacements[1:] {
		if joined, ok := TryJoinTouching(current, rep); ok {
			current = joined
			continue
		}
		result = append(result, current)
		current = rep
	}
	return append(result, current)
}
