// Package linediff computes line-oriented diffs between two text
// documents with character-level detail inside each changed region.
//
// Beyond the plain edit script, linediff includes:
//   - Postprocessing: boundary shifting and whole-word extension for
//     more readable changes
//   - Move detection: blocks of lines relocated within the document,
//     reported as moves instead of unrelated delete/insert pairs
//   - Graceful degradation: an optional wall-clock budget under which
//     results get coarser instead of failing
//   - A legacy computer producing the older inclusive-line result
//     format
package linediff

import (
	"math"
	"time"
)

// LinesDiff is the result of comparing two documents line by line.
type LinesDiff struct {
	// Changes are the changed regions, ordered by position and
	// separated by at least one unchanged line on both sides.
	Changes []DetailedLineRangeMapping

	// Moves are detected relocations of line blocks. The moved lines
	// also appear in Changes as a deletion and an insertion.
	Moves []MovedText

	// QuitEarly reports that the time budget expired. The result is
	// still valid, merely coarser than it could have been.
	QuitEarly bool
}

type options struct {
	ignoreTrimWhitespace bool
	computeMoves         bool
	maxComputationTime   time.Duration
}

// Option configures ComputeDiff.
type Option func(*options)

// WithIgnoreTrimWhitespace makes lines that differ only in leading or
// trailing whitespace compare as equal.
func WithIgnoreTrimWhitespace() Option {
	return func(o *options) { o.ignoreTrimWhitespace = true }
}

// WithComputeMoves enables detection of moved line blocks.
func WithComputeMoves() Option {
	return func(o *options) { o.computeMoves = true }
}

// WithMaxComputationTime bounds the wall-clock time spent diffing.
// When the budget expires the result degrades gracefully: remaining
// regions are reported changed wholesale and QuitEarly is set. A zero
// or negative budget means no limit.
func WithMaxComputationTime(d time.Duration) Option {
	return func(o *options) { o.maxComputationTime = d }
}

// lineCountDPThreshold is the combined line count below which the
// dynamic programming algorithm is used for the line-level pass.
const lineCountDPThreshold = 1700

// charCountDPThreshold is the combined character count below which
// the dynamic programming algorithm is used for character refinement.
const charCountDPThreshold = 500

// ComputeDiff compares two documents given as slices of lines (without
// line terminators) and returns the changed regions with
// character-level detail.
func ComputeDiff(original, modified []string, opts ...Option) *LinesDiff {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	considerWS := !o.ignoreTrimWhitespace
	dl := newDeadline(o.maxComputationTime)

	if len(original) == 0 {
		original = []string{""}
	}
	if len(modified) == 0 {
		modified = []string{""}
	}

	if equalLines(original, modified) {
		return &LinesDiff{}
	}
	if (len(original) == 1 && original[0] == "") || (len(modified) == 1 && modified[0] == "") {
		return wholeDocumentDiff(original, modified)
	}

	seq1, seq2 := newLineSequences(original, modified, true)

	var lineDiffs []seqDiff
	var quitEarly bool
	if seq1.Len()+seq2.Len() < lineCountDPThreshold {
		// Weight exact matches by line length so the alignment
		// prefers pairing identical lines over lines that only agree
		// after trimming.
		lineDiffs, quitEarly = dpDiff(seq1, seq2, dl, func(i, j int) float64 {
			if original[i] != modified[j] {
				return 0.99
			}
			if modified[j] == "" {
				return 0.1
			}
			return 1 + math.Log(1+float64(utf16Length(modified[j])))
		})
	} else {
		lineDiffs, quitEarly = myersDiff(seq1, seq2, dl)
	}
	lineDiffs = optimizeSequenceDiffs(seq1, seq2, lineDiffs)

	var alignments []RangeMapping
	seq1LastStart, seq2LastStart := 0, 0

	// Line matching is trim-insensitive, so matched regions can still
	// hide pure whitespace changes. Walk them pairwise and refine any
	// line that differs in its raw text.
	scanForWhitespaceChanges := func(equalLinesCount int) {
		if !considerWS {
			return
		}
		for i := 0; i < equalLinesCount; i++ {
			o1 := seq1LastStart + i
			o2 := seq2LastStart + i
			if original[o1] == modified[o2] {
				continue
			}
			mappings, hit := refineDiff(original, modified, seqDiff{
				seq1: OffsetRange{Start: o1, EndExclusive: o1 + 1},
				seq2: OffsetRange{Start: o2, EndExclusive: o2 + 1},
			}, dl, considerWS)
			alignments = append(alignments, mappings...)
			quitEarly = quitEarly || hit
		}
	}

	for _, d := range lineDiffs {
		assertf(d.seq1.Start-seq1LastStart == d.seq2.Start-seq2LastStart,
			"unequal gap before line diff %v/%v", d.seq1, d.seq2)
		scanForWhitespaceChanges(d.seq1.Start - seq1LastStart)
		seq1LastStart = d.seq1.EndExclusive
		seq2LastStart = d.seq2.EndExclusive

		mappings, hit := refineDiff(original, modified, d, dl, considerWS)
		alignments = append(alignments, mappings...)
		quitEarly = quitEarly || hit
	}
	scanForWhitespaceChanges(len(original) - seq1LastStart)

	changes := lineRangeMappingsFromRangeMappings(alignments, original, modified)

	var moves []MovedText
	if o.computeMoves {
		moves = computeMoves(changes, original, modified, dl, considerWS)
	}

	return &LinesDiff{Changes: changes, Moves: moves, QuitEarly: quitEarly}
}

// wholeDocumentDiff reports one change spanning both documents. Used
// when one side is empty, where the general algorithm's anchoring
// rules have nothing to hold on to.
func wholeDocumentDiff(original, modified []string) *LinesDiff {
	return &LinesDiff{Changes: []DetailedLineRangeMapping{{
		LineRangeMapping: LineRangeMapping{
			Original: LineRange{Start: 1, EndExclusive: len(original) + 1},
			Modified: LineRange{Start: 1, EndExclusive: len(modified) + 1},
		},
		InnerChanges: []RangeMapping{{
			OriginalRange: NewRange(1, 1, len(original), utf16Length(original[len(original)-1])+1),
			ModifiedRange: NewRange(1, 1, len(modified), utf16Length(modified[len(modified)-1])+1),
		}},
	}}}
}

// refineDiff runs a character-level diff inside one line-level diff
// and translates the result back to document ranges.
//
// The slices are bounded by line junctions so that insertions and
// deletions anchor at line boundaries: when a following line exists on
// both sides, the slices end with that junction; when a preceding line
// exists on both sides and one side of the diff is empty, the slices
// begin with it. Without an anchor a pure insertion at the document
// edge would have nothing on the other side to attach its position to.
func refineDiff(original, modified []string, d seqDiff, dl deadline, considerWS bool) ([]RangeMapping, bool) {
	var leading, trailing bool
	switch {
	case d.seq1.EndExclusive < len(original) && d.seq2.EndExclusive < len(modified):
		trailing = true
	case !d.seq1.IsEmpty() && !d.seq2.IsEmpty():
		// Both sides have content to align on.
	case d.seq1.Start > 0 && d.seq2.Start > 0:
		leading = true
	}

	slice1 := newCharSequence(original, d.seq1, considerWS, leading, trailing)
	slice2 := newCharSequence(modified, d.seq2, considerWS, leading, trailing)

	var diffs []seqDiff
	var hitTimeout bool
	if slice1.Len()+slice2.Len() < charCountDPThreshold {
		diffs, hitTimeout = dpDiff(slice1, slice2, dl, nil)
	} else {
		diffs, hitTimeout = myersDiff(slice1, slice2, dl)
	}
	diffs = optimizeSequenceDiffs(slice1, slice2, diffs)
	diffs = extendDiffsToEntireWords(slice1, slice2, diffs)
	diffs = removeShortMatches(diffs)

	mappings := make([]RangeMapping, 0, len(diffs))
	for _, cd := range diffs {
		mappings = append(mappings, RangeMapping{
			OriginalRange: RangeFromPositions(
				slice1.Translate(cd.seq1.Start), slice1.Translate(cd.seq1.EndExclusive)),
			ModifiedRange: RangeFromPositions(
				slice2.Translate(cd.seq2.Start), slice2.Translate(cd.seq2.EndExclusive)),
		})
	}
	return mappings, hitTimeout
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
