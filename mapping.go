package linediff

import "fmt"

// RangeMapping is a character-level correspondence between a span of
// the original document and a span of the modified document.
type RangeMapping struct {
	OriginalRange Range
	ModifiedRange Range
}

// String returns a human-readable representation of the mapping.
func (m RangeMapping) String() string {
	return fmt.Sprintf("{%v -> %v}", m.OriginalRange, m.ModifiedRange)
}

// Join returns the mapping enclosing both m and other on both sides.
func (m RangeMapping) Join(other RangeMapping) RangeMapping {
	return RangeMapping{
		OriginalRange: m.OriginalRange.PlusRange(other.OriginalRange),
		ModifiedRange: m.ModifiedRange.PlusRange(other.ModifiedRange),
	}
}

// Flip swaps the original and modified sides.
func (m RangeMapping) Flip() RangeMapping {
	return RangeMapping{OriginalRange: m.ModifiedRange, ModifiedRange: m.OriginalRange}
}

// assertSortedRangeMappings panics with a BugError unless the mappings
// are ordered and non-overlapping on both sides. It guards the border
// between trusted internal state and data handed in by producers.
func assertSortedRangeMappings(mappings []RangeMapping) {
	for i := 1; i < len(mappings); i++ {
		prev, cur := mappings[i-1], mappings[i]
		assertf(prev.OriginalRange.End().BeforeOrEqual(cur.OriginalRange.Start()) &&
			prev.ModifiedRange.End().BeforeOrEqual(cur.ModifiedRange.Start()),
			"range mappings out of order: %v before %v", prev, cur)
	}
}

// LineRangeMapping is a correspondence between a span of original
// lines and a span of modified lines. An empty side legitimately means
// "insert before line N" or "delete these lines".
type LineRangeMapping struct {
	Original LineRange
	Modified LineRange
}

// String returns a human-readable representation of the mapping.
func (m LineRangeMapping) String() string {
	return fmt.Sprintf("{%v -> %v}", m.Original, m.Modified)
}

// Join returns the mapping enclosing both m and other on both sides.
func (m LineRangeMapping) Join(other LineRangeMapping) LineRangeMapping {
	return LineRangeMapping{
		Original: m.Original.Join(other.Original),
		Modified: m.Modified.Join(other.Modified),
	}
}

// Flip swaps the original and modified sides, producing the reverse
// diff's mapping.
func (m LineRangeMapping) Flip() LineRangeMapping {
	return LineRangeMapping{Original: m.Modified, Modified: m.Original}
}

// ToRangeMapping converts to character ranges assuming an infinite
// document (see LineRange.ToRange).
func (m LineRangeMapping) ToRangeMapping() RangeMapping {
	return RangeMapping{
		OriginalRange: m.Original.ToRange(),
		ModifiedRange: m.Modified.ToRange(),
	}
}

// ToClampedRangeMapping converts to character ranges bounded by the
// actual line lengths (see LineRange.ToClampedRange).
func (m LineRangeMapping) ToClampedRangeMapping(originalLines, modifiedLines []string) RangeMapping {
	return RangeMapping{
		OriginalRange: m.Original.ToClampedRange(originalLines),
		ModifiedRange: m.Modified.ToClampedRange(modifiedLines),
	}
}

// DetailedLineRangeMapping is a LineRangeMapping with the
// character-level diff inside the mapped lines. InnerChanges is nil
// when character diffing was not performed and is never an empty
// slice.
type DetailedLineRangeMapping struct {
	LineRangeMapping
	InnerChanges []RangeMapping
}

// Flip swaps the original and modified sides, including every inner
// change.
func (m DetailedLineRangeMapping) Flip() DetailedLineRangeMapping {
	var inner []RangeMapping
	if m.InnerChanges != nil {
		inner = make([]RangeMapping, len(m.InnerChanges))
		for i, c := range m.InnerChanges {
			inner[i] = c.Flip()
		}
	}
	return DetailedLineRangeMapping{
		LineRangeMapping: m.LineRangeMapping.Flip(),
		InnerChanges:     inner,
	}
}

// MovedText reports a block of lines that was relocated rather than
// independently deleted and inserted. Mapping pairs the deletion-side
// range with the insertion-side range; Changes is the diff within the
// moved block itself.
type MovedText struct {
	Mapping LineRangeMapping
	Changes []DetailedLineRangeMapping
}

// Flip swaps the move's direction, including its internal changes.
func (m MovedText) Flip() MovedText {
	changes := make([]DetailedLineRangeMapping, len(m.Changes))
	for i, c := range m.Changes {
		changes[i] = c.Flip()
	}
	return MovedText{Mapping: m.Mapping.Flip(), Changes: changes}
}

// lineRangeMappingFromRangeMapping widens one character mapping to the
// line ranges it affects. Two symmetric edge rules keep fully
// unmodified boundary lines out of the result:
//
//   - when both sides end at column 1, the final line carries no
//     change and is excluded on both sides;
//   - when both sides start at or past their line's end, the first
//     line carries no change and is excluded on both sides.
//
// The rules only fire when both sides agree, otherwise the reported
// line ranges would drift apart and point at misleading locations.
func lineRangeMappingFromRangeMapping(rm RangeMapping, originalLines, modifiedLines []string) LineRangeMapping {
	lineStartDelta := 0
	lineEndDelta := 0

	if rm.ModifiedRange.EndColumn == 1 && rm.OriginalRange.EndColumn == 1 &&
		rm.OriginalRange.StartLine <= rm.OriginalRange.EndLine &&
		rm.ModifiedRange.StartLine <= rm.ModifiedRange.EndLine {
		lineEndDelta = -1
	}

	if rm.ModifiedRange.StartLine <= len(modifiedLines) && rm.OriginalRange.StartLine <= len(originalLines) &&
		rm.ModifiedRange.StartColumn-1 >= utf16Length(modifiedLines[rm.ModifiedRange.StartLine-1]) &&
		rm.OriginalRange.StartColumn-1 >= utf16Length(originalLines[rm.OriginalRange.StartLine-1]) &&
		rm.OriginalRange.StartLine <= rm.OriginalRange.EndLine+lineEndDelta &&
		rm.ModifiedRange.StartLine <= rm.ModifiedRange.EndLine+lineEndDelta {
		lineStartDelta = 1
	}

	return LineRangeMapping{
		Original: LineRange{
			Start:        rm.OriginalRange.StartLine + lineStartDelta,
			EndExclusive: rm.OriginalRange.EndLine + 1 + lineEndDelta,
		},
		Modified: LineRange{
			Start:        rm.ModifiedRange.StartLine + lineStartDelta,
			EndExclusive: rm.ModifiedRange.EndLine + 1 + lineEndDelta,
		},
	}
}

// lineRangeMappingsFromRangeMappings groups consecutive character
// mappings whose line spans intersect or touch on either side into one
// DetailedLineRangeMapping per group.
func lineRangeMappingsFromRangeMappings(mappings []RangeMapping, originalLines, modifiedLines []string) []DetailedLineRangeMapping {
	if len(mappings) == 0 {
		return nil
	}
	assertSortedRangeMappings(mappings)

	var result []DetailedLineRangeMapping
	currentLines := lineRangeMappingFromRangeMapping(mappings[0], originalLines, modifiedLines)
	currentInner := []RangeMapping{mappings[0]}

	for _, rm := range mappings[1:] {
		lines := lineRangeMappingFromRangeMapping(rm, originalLines, modifiedLines)
		if currentLines.Original.IntersectsOrTouches(lines.Original) ||
			currentLines.Modified.IntersectsOrTouches(lines.Modified) {
			currentLines = currentLines.Join(lines)
			currentInner = append(currentInner, rm)
			continue
		}
		result = append(result, DetailedLineRangeMapping{
			LineRangeMapping: currentLines,
			InnerChanges:     currentInner,
		})
		currentLines = lines
		currentInner = []RangeMapping{rm}
	}
	result = append(result, DetailedLineRangeMapping{
		LineRangeMapping: currentLines,
		InnerChanges:     currentInner,
	})

	assertSeparatedMappings(result)
	return result
}

// assertSeparatedMappings panics with a BugError unless adjacent
// mappings are separated by at least one unchanged line on both sides.
// Mappings violating this should have been joined.
func assertSeparatedMappings(mappings []DetailedLineRangeMapping) {
	for i := 1; i < len(mappings); i++ {
		prev, cur := mappings[i-1], mappings[i]
		assertf(cur.Original.Start-prev.Original.EndExclusive >= 1 &&
			cur.Modified.Start-prev.Modified.EndExclusive >= 1,
			"mappings not separated by an unchanged line: %v before %v",
			prev.LineRangeMapping, cur.LineRangeMapping)
	}
}
