package linediff

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/clipperhouse/uax29/v2/words"
)

// sequence is a finite list of elements compared by hash code. Hash
// codes are exact identities here (perfect hashes for lines, code units
// for characters), so equal codes mean equal elements.
type sequence interface {
	Len() int
	Element(i int) uint64
}

// boundaryScored is implemented by sequences that can rate how good a
// position is as a diff boundary. Position i is the gap before element
// i, so valid positions run from 0 to Len() inclusive.
type boundaryScored interface {
	BoundaryScore(i int) int
}

// utf16CodeUnits returns s as UTF-16 code units.
func utf16CodeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// utf16Length returns the length of s in UTF-16 code units.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}

// lineSequence presents document lines as diff elements. With trim
// set, lines are identified by their whitespace-trimmed content, so
// the line-level pass matches lines that differ only in leading or
// trailing whitespace and leaves those differences to the character
// level.
type lineSequence struct {
	hashes []uint64
	lines  []string
}

// newLineSequences builds line sequences for both sides with a shared
// identity table, so equal lines get equal hash codes with no
// collisions.
func newLineSequences(original, modified []string, trim bool) (*lineSequence, *lineSequence) {
	ids := make(map[string]uint64)
	hash := func(lines []string) []uint64 {
		hashes := make([]uint64, len(lines))
		for i, line := range lines {
			key := line
			if trim {
				key = strings.TrimSpace(line)
			}
			id, ok := ids[key]
			if !ok {
				id = uint64(len(ids))
				ids[key] = id
			}
			hashes[i] = id
		}
		return hashes
	}
	return &lineSequence{hashes: hash(original), lines: original},
		&lineSequence{hashes: hash(modified), lines: modified}
}

func (s *lineSequence) Len() int {
	return len(s.hashes)
}

func (s *lineSequence) Element(i int) uint64 {
	return s.hashes[i]
}

// BoundaryScore prefers boundaries next to blank or shallowly indented
// lines, so change regions align with logical blocks.
func (s *lineSequence) BoundaryScore(i int) int {
	indentBefore := 0
	if i > 0 {
		indentBefore = indentation(s.lines[i-1])
	}
	indentAfter := 0
	if i < len(s.lines) {
		indentAfter = indentation(s.lines[i])
	}
	return 1000 - (indentBefore + indentAfter)
}

// indentation returns the number of leading whitespace characters.
func indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// charSequence presents the characters of a slice of lines as diff
// elements: the UTF-16 code units of each line, with a "\n" element
// between lines. When whitespace changes are not considered, leading
// and trailing whitespace of each line is excluded from the element
// stream, but offset translation still reports true columns.
//
// A slice may additionally carry a junction newline at either edge: a
// leading junction is the line break ending the line before the slice,
// a trailing junction is the line break after the slice's last line.
// Junctions let a change anchor at a line boundary without pulling the
// neighboring line's content into the comparison.
type charSequence struct {
	elements []uint64

	firstLine        int   // 0-based index of the first line of the slice
	lineStartOffsets []int // element offset where each line begins
	trimmedWSLengths []int // leading code units skipped per line

	startAnchor      Position // position of any offset before the first line
	trailingJunction bool
	endAnchor        Position // position just past a trailing junction

	wordRanges []OffsetRange // sorted spans of word characters
}

// newCharSequence builds a character sequence over lines[lineRange].
// lineRange holds 0-based line indices and may be empty, in which case
// the sequence has no elements but is still anchored for offset
// translation: at the end of the previous line with a leading
// junction, at the start of line lineRange.Start otherwise.
func newCharSequence(lines []string, lineRange OffsetRange, considerWhitespaceChanges, leadingJunction, trailingJunction bool) *charSequence {
	s := &charSequence{
		firstLine:   lineRange.Start,
		startAnchor: Position{Line: lineRange.Start + 1, Column: 1},
	}
	if leadingJunction {
		s.startAnchor = Position{
			Line:   lineRange.Start,
			Column: utf16Length(lines[lineRange.Start-1]) + 1,
		}
		if !lineRange.IsEmpty() {
			s.elements = append(s.elements, uint64('\n'))
		}
	}
	for li := lineRange.Start; li < lineRange.EndExclusive; li++ {
		line := lines[li]
		content := line
		trimmedStart := 0
		if !considerWhitespaceChanges {
			trimmedLeft := strings.TrimLeft(line, " \t")
			trimmedStart = utf16Length(line) - utf16Length(trimmedLeft)
			content = strings.TrimRight(trimmedLeft, " \t")
		}

		s.lineStartOffsets = append(s.lineStartOffsets, len(s.elements))
		s.trimmedWSLengths = append(s.trimmedWSLengths, trimmedStart)
		s.appendLineContent(content)

		if li < lineRange.EndExclusive-1 {
			s.elements = append(s.elements, uint64('\n'))
		}
	}
	if trailingJunction && !lineRange.IsEmpty() {
		s.elements = append(s.elements, uint64('\n'))
		s.trailingJunction = true
		s.endAnchor = Position{Line: lineRange.EndExclusive + 1, Column: 1}
	}
	return s
}

// appendLineContent encodes content into elements and records the word
// spans it contains.
func (s *charSequence) appendLineContent(content string) {
	base := len(s.elements)

	// Element offset for each byte offset at rune starts, plus the end.
	elemAtByte := make([]int, len(content)+1)
	cur := base
	for i, r := range content {
		elemAtByte[i] = cur
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			s.elements = append(s.elements, uint64(r1), uint64(r2))
			cur += 2
		} else {
			s.elements = append(s.elements, uint64(r))
			cur++
		}
	}
	elemAtByte[len(content)] = cur

	iter := words.FromString(content)
	for iter.Next() {
		if !tokenIsWord(iter.Value()) {
			continue
		}
		s.wordRanges = append(s.wordRanges, OffsetRange{
			Start:        elemAtByte[iter.Start()],
			EndExclusive: elemAtByte[iter.End()],
		})
	}
}

// tokenIsWord reports whether a segmentation token is an actual word
// (contains a letter, digit, or underscore) rather than punctuation or
// whitespace.
func tokenIsWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

func (s *charSequence) Len() int {
	return len(s.elements)
}

func (s *charSequence) Element(i int) uint64 {
	return s.elements[i]
}

// Translate converts an element offset (0..Len()) into a document
// position with true 1-based line and column numbers.
func (s *charSequence) Translate(offset int) Position {
	if len(s.lineStartOffsets) == 0 || offset < s.lineStartOffsets[0] {
		return s.startAnchor
	}
	if s.trailingJunction && offset == len(s.elements) {
		return s.endAnchor
	}
	i := sort.Search(len(s.lineStartOffsets), func(i int) bool {
		return s.lineStartOffsets[i] > offset
	}) - 1
	return Position{
		Line:   s.firstLine + i + 1,
		Column: offset - s.lineStartOffsets[i] + s.trimmedWSLengths[i] + 1,
	}
}

// wordContaining returns the word span w with w.Start <= offset < w.End,
// if any.
func (s *charSequence) wordContaining(offset int) (OffsetRange, bool) {
	i := sort.Search(len(s.wordRanges), func(i int) bool {
		return s.wordRanges[i].EndExclusive > offset
	})
	if i < len(s.wordRanges) && s.wordRanges[i].Start <= offset {
		return s.wordRanges[i], true
	}
	return OffsetRange{}, false
}

// Character categories used for boundary scoring.
type charCategory int

const (
	catWordLower charCategory = iota
	catWordUpper
	catWordNumber
	catWordOther
	catSeparator
	catSpace
	catLineBreak
	catOther
	catBoundary // virtual category for the sequence edges
)

func categoryOf(unit uint64) charCategory {
	switch {
	case unit == '\n' || unit == '\r':
		return catLineBreak
	case unit == ' ' || unit == '\t':
		return catSpace
	case unit >= 'a' && unit <= 'z':
		return catWordLower
	case unit >= 'A' && unit <= 'Z':
		return catWordUpper
	case unit >= '0' && unit <= '9':
		return catWordNumber
	case unit == ',' || unit == ';' || unit == ':' || unit == '.' || unit == '!' || unit == '?':
		return catSeparator
	case unit < 0xD800 && unicode.IsLetter(rune(unit)):
		return catWordOther
	default:
		return catOther
	}
}

func categoryScore(c charCategory) int {
	switch c {
	case catLineBreak:
		return 10
	case catSpace:
		return 3
	case catSeparator:
		return 30
	case catBoundary:
		return 10
	case catOther:
		return 2
	default: // word characters: worst place to split
		return 0
	}
}

// BoundaryScore rates position i: line breaks beat separators beat
// whitespace beats splitting a word.
func (s *charSequence) BoundaryScore(i int) int {
	prev := catBoundary
	if i > 0 {
		prev = categoryOf(s.elements[i-1])
	}
	next := catBoundary
	if i < len(s.elements) {
		next = categoryOf(s.elements[i])
	}

	score := 0
	if prev == catLineBreak {
		// Right after a line break is the best possible boundary.
		score += 150
	}
	score += categoryScore(prev)
	score += categoryScore(next)
	return score
}
