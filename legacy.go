package linediff

import "time"

// legacyCharDiffBudget caps the time spent on character-level detail
// in the legacy computer, independent of the caller's overall budget.
const legacyCharDiffBudget = 5 * time.Second

// LegacyDiffOptions configures a LegacyDiffComputer.
type LegacyDiffOptions struct {
	// ShouldComputeCharChanges enables character-level detail for
	// changes that modify lines on both sides.
	ShouldComputeCharChanges bool

	// ShouldPostProcessCharChanges merges character changes separated
	// by trivially short matches into single changes.
	ShouldPostProcessCharChanges bool

	// ShouldIgnoreTrimWhitespace makes lines that differ only in
	// leading or trailing whitespace compare as equal.
	ShouldIgnoreTrimWhitespace bool

	// ShouldMakePrettyDiff shifts change boundaries to aesthetically
	// better positions.
	ShouldMakePrettyDiff bool

	// MaxComputationTime bounds the wall-clock time spent diffing.
	// Zero means no limit.
	MaxComputationTime time.Duration
}

// CharChange is a character-level change in the legacy result format,
// with 1-based inclusive line numbers and 1-based columns.
type CharChange struct {
	OriginalStartLineNumber int
	OriginalStartColumn     int
	OriginalEndLineNumber   int
	OriginalEndColumn       int
	ModifiedStartLineNumber int
	ModifiedStartColumn     int
	ModifiedEndLineNumber   int
	ModifiedEndColumn       int
}

// LineChange is one changed region in the legacy result format. Line
// numbers are 1-based and inclusive on both ends, with one special
// convention: an end line number of 0 marks an empty side, whose start
// line number is then the line before which the other side's lines
// were inserted (or after which they were deleted).
type LineChange struct {
	OriginalStartLineNumber int
	OriginalEndLineNumber   int
	ModifiedStartLineNumber int
	ModifiedEndLineNumber   int

	// CharChanges is nil unless character-level detail was computed
	// for this change.
	CharChanges []CharChange
}

// LegacyDiffResult is the outcome of a legacy diff computation.
type LegacyDiffResult struct {
	QuitEarly bool
	Changes   []LineChange
}

// LegacyDiffComputer computes diffs in the legacy result format.
type LegacyDiffComputer struct {
	originalLines []string
	modifiedLines []string
	opts          LegacyDiffOptions
}

// NewLegacyDiffComputer returns a computer comparing originalLines to
// modifiedLines (both without line terminators).
func NewLegacyDiffComputer(originalLines, modifiedLines []string, opts LegacyDiffOptions) *LegacyDiffComputer {
	return &LegacyDiffComputer{
		originalLines: originalLines,
		modifiedLines: modifiedLines,
		opts:          opts,
	}
}

// ComputeDiff runs the comparison.
func (c *LegacyDiffComputer) ComputeDiff() *LegacyDiffResult {
	original, modified := c.originalLines, c.modifiedLines
	if len(original) == 0 {
		original = []string{""}
	}
	if len(modified) == 0 {
		modified = []string{""}
	}
	if equalLines(original, modified) {
		return &LegacyDiffResult{}
	}

	dl := newDeadline(c.opts.MaxComputationTime)
	charDL := dl.min(newDeadline(legacyCharDiffBudget))

	// Unlike the line matching of ComputeDiff, the legacy computer
	// only ignores whitespace when asked to.
	seq1, seq2 := newLineSequences(original, modified, c.opts.ShouldIgnoreTrimWhitespace)

	lineDiffs, quitEarly := myersDiff(seq1, seq2, dl)
	if c.opts.ShouldMakePrettyDiff {
		lineDiffs = optimizeSequenceDiffs(seq1, seq2, lineDiffs)
	}

	changes := make([]LineChange, 0, len(lineDiffs))
	for _, d := range lineDiffs {
		change := LineChange{}
		change.OriginalStartLineNumber, change.OriginalEndLineNumber = legacyLineSpan(d.seq1)
		change.ModifiedStartLineNumber, change.ModifiedEndLineNumber = legacyLineSpan(d.seq2)

		if c.opts.ShouldComputeCharChanges && !d.seq1.IsEmpty() && !d.seq2.IsEmpty() {
			charChanges, hit := c.computeCharChanges(original, modified, d, charDL)
			change.CharChanges = charChanges
			quitEarly = quitEarly || hit
		}
		changes = append(changes, change)
	}

	return &LegacyDiffResult{QuitEarly: quitEarly, Changes: changes}
}

// legacyLineSpan converts a 0-based half-open line range to the legacy
// 1-based inclusive convention with its end-0 marker for empty spans.
func legacyLineSpan(r OffsetRange) (start, end int) {
	if r.IsEmpty() {
		return r.Start + 1, 0
	}
	return r.Start + 1, r.EndExclusive
}

func (c *LegacyDiffComputer) computeCharChanges(original, modified []string, d seqDiff, dl deadline) ([]CharChange, bool) {
	considerWS := !c.opts.ShouldIgnoreTrimWhitespace
	slice1 := newCharSequence(original, d.seq1, considerWS, false, false)
	slice2 := newCharSequence(modified, d.seq2, considerWS, false, false)

	diffs, hitTimeout := myersDiff(slice1, slice2, dl)
	if c.opts.ShouldMakePrettyDiff {
		diffs = optimizeSequenceDiffs(slice1, slice2, diffs)
	}
	if c.opts.ShouldPostProcessCharChanges {
		diffs = removeShortMatches(diffs)
	}

	charChanges := make([]CharChange, 0, len(diffs))
	for _, cd := range diffs {
		oStart := slice1.Translate(cd.seq1.Start)
		oEnd := slice1.Translate(cd.seq1.EndExclusive)
		mStart := slice2.Translate(cd.seq2.Start)
		mEnd := slice2.Translate(cd.seq2.EndExclusive)
		charChanges = append(charChanges, CharChange{
			OriginalStartLineNumber: oStart.Line,
			OriginalStartColumn:     oStart.Column,
			OriginalEndLineNumber:   oEnd.Line,
			OriginalEndColumn:       oEnd.Column,
			ModifiedStartLineNumber: mStart.Line,
			ModifiedStartColumn:     mStart.Column,
			ModifiedEndLineNumber:   mEnd.Line,
			ModifiedEndColumn:       mEnd.Column,
		})
	}
	return charChanges, hitTimeout
}
