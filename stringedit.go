package linediff

import (
	"unicode/utf16"

	"github.com/pkg/errors"
)

// StringReplacement replaces a sub-range of a string with new text.
// Offsets are in UTF-16 code units, matching Position columns.
type StringReplacement struct {
	Range   OffsetRange
	NewText string
}

// StringEdit is an Edit over string content. The same ordering
// invariant applies: replacements are sorted and neither overlap nor
// touch.
type StringEdit struct {
	Replacements []StringReplacement
}

// NewStringEdit creates a StringEdit, validating the ordering
// invariant. It returns ErrInvalidEdit if replacements are unsorted,
// overlap, or touch.
func NewStringEdit(replacements ...StringReplacement) (StringEdit, error) {
	for i := 1; i < len(replacements); i++ {
		if replacements[i-1].Range.EndExclusive >= replacements[i].Range.Start {
			return StringEdit{}, errors.Wrapf(ErrInvalidEdit,
				"replacement %d %v is not strictly after %v",
				i, replacements[i].Range, replacements[i-1].Range)
		}
	}
	return StringEdit{Replacements: replacements}, nil
}

// IsEmpty reports whether the edit changes nothing.
func (e StringEdit) IsEmpty() bool {
	return len(e.Replacements) == 0
}

// Apply transforms base by applying every replacement. It panics with
// a BugError if a replacement reaches outside base.
func (e StringEdit) Apply(base string) string {
	units := utf16CodeUnits(base)
	var result []uint16
	pos := 0
	for _, rep := range e.Replacements {
		assertf(rep.Range.Start >= pos && rep.Range.EndExclusive <= len(units),
			"replacement %v out of bounds (len %d)", rep.Range, len(units))
		result = append(result, units[pos:rep.Range.Start]...)
		result = append(result, utf16CodeUnits(rep.NewText)...)
		pos = rep.Range.EndExclusive
	}
	result = append(result, units[pos:]...)
	return string(utf16.Decode(result))
}

// RemoveCommonSuffixPrefix shrinks every replacement by trimming
// content it shares with the span it replaces: first the longest common
// prefix, then the longest common suffix of what remains. The suffix
// scan is capped at the shorter of the two remainders so prefix and
// suffix never overlap. This is the normalization that turns a "replace
// whole line" diff into a "replace these 3 characters" diff.
func (e StringEdit) RemoveCommonSuffixPrefix(base string) StringEdit {
	units := utf16CodeUnits(base)
	result := make([]StringReplacement, 0, len(e.Replacements))
	for _, rep := range e.Replacements {
		oldText := units[rep.Range.Start:rep.Range.EndExclusive]
		newText := utf16CodeUnits(rep.NewText)

		prefix := commonPrefixLen(oldText, newText)
		oldText = oldText[prefix:]
		newText = newText[prefix:]

		suffix := commonSuffixLen(oldText, newText)
		oldText = oldText[:len(oldText)-suffix]
		newText = newText[:len(newText)-suffix]

		if len(oldText) == 0 && len(newText) == 0 {
			continue
		}
		result = append(result, StringReplacement{
			Range:   OffsetRange{Start: rep.Range.Start + prefix, EndExclusive: rep.Range.EndExclusive - suffix},
			NewText: string(utf16.Decode(newText)),
		})
	}
	return StringEdit{Replacements: result}
}

func commonPrefixLen(a, b []uint16) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffixLen(a, b []uint16) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// AnnotatedStringReplacement is a StringReplacement carrying an opaque
// data payload, typically provenance such as "this hunk is whitespace
// only".
type AnnotatedStringReplacement[D any] struct {
	Range   OffsetRange
	NewText string
	Data    D
}

// AnnotatedStringEdit is a StringEdit whose replacements carry data
// payloads that survive joining.
type AnnotatedStringEdit[D any] struct {
	Replacements []AnnotatedStringReplacement[D]
}

// Apply transforms base by applying every replacement.
func (e AnnotatedStringEdit[D]) Apply(base string) string {
	plain := make([]StringReplacement, len(e.Replacements))
	for i, rep := range e.Replacements {
		plain[i] = StringReplacement{Range: rep.Range, NewText: rep.NewText}
	}
	return StringEdit{Replacements: plain}.Apply(base)
}

// JoinTouching merges runs of adjacent replacements, combining their
// payloads with join. When join refuses (returns false) the
// replacements stay distinct, preserving payloads with different
// provenance. Input must be sorted and non-overlapping.
func (e AnnotatedStringEdit[D]) JoinTouching(join func(a, b D) (D, bool)) AnnotatedStringEdit[D] {
	if len(e.Replacements) <= 1 {
		return e
	}
	result := make([]AnnotatedStringReplacement[D], 0, len(e.Replacements))
	current := e.Replacements[0]
	for _, rep := range e.Replacements[1:] {
		if current.Range.EndExclusive == rep.Range.Start {
			if data, ok := join(current.Data, rep.Data); ok {
				current = AnnotatedStringReplacement[D]{
					Range:   OffsetRange{Start: current.Range.Start, EndExclusive: rep.Range.EndExclusive},
					NewText: current.NewText + rep.NewText,
					Data:    data,
				}
				continue
			}
		}
		result = append(result, current)
		current = rep
	}
	result = append(result, current)
	return AnnotatedStringEdit[D]{Replacements: result}
}
