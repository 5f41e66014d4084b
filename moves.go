package linediff

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// moveSimilarityThreshold is the minimum similarity ratio for two
	// blocks to count as a fuzzy move.
	moveSimilarityThreshold = 0.90

	// moveMinBlockLines is the minimum block size for fuzzy matching.
	// Smaller blocks must match exactly.
	moveMinBlockLines = 3

	// moveMinContentLen is the minimum normalized content length for a
	// block smaller than moveMinBlockLines. Tiny blocks match all over
	// the place and reporting them as moves is noise.
	moveMinContentLen = 15

	// moveCommonLineLimit is the occurrence count above which a line
	// is too common to identify a block on its own.
	moveCommonLineLimit = 5
)

// moveCandidate is one side of a potential move: a block of deleted
// lines or a block of inserted lines.
type moveCandidate struct {
	change    int // index of the change the block belongs to
	lines     LineRange
	text      string // trimmed lines joined with "\n"
	lineCount int
}

// computeMoves pairs deleted blocks with inserted blocks that carry
// the same (or nearly the same) text, reporting each pair as a move.
// An exact pass runs first; a fuzzy pass then pairs larger blocks by
// similarity. Each line can take part in at most one move, and a
// deletion is never paired with the insertion of its own change.
func computeMoves(changes []DetailedLineRangeMapping, original, modified []string, dl deadline, considerWS bool) []MovedText {
	counts := lineOccurrences(original, modified)

	var deletions, insertions []moveCandidate
	for i, c := range changes {
		if !c.Original.IsEmpty() {
			deletions = append(deletions, newMoveCandidate(i, c.Original, original))
		}
		if !c.Modified.IsEmpty() {
			insertions = append(insertions, newMoveCandidate(i, c.Modified, modified))
		}
	}

	var claimedOriginal, claimedModified OffsetRangeSet
	var moves []MovedText

	claim := func(del, ins moveCandidate) {
		claimedOriginal.AddRange(del.lines.ToOffsetRange())
		claimedModified.AddRange(ins.lines.ToOffsetRange())
		moves = append(moves, MovedText{
			Mapping: LineRangeMapping{Original: del.lines, Modified: ins.lines},
			Changes: diffMovedBlock(original, modified, del.lines, ins.lines, dl, considerWS),
		})
	}

	// Exact pass.
	for _, del := range deletions {
		if dl.expired() {
			return sortMoves(moves)
		}
		if !blockIsDistinctive(del, counts) || claimedOriginal.Intersects(del.lines.ToOffsetRange()) {
			continue
		}
		for _, ins := range insertions {
			if ins.change == del.change || ins.text != del.text ||
				claimedModified.Intersects(ins.lines.ToOffsetRange()) {
				continue
			}
			claim(del, ins)
			break
		}
	}

	// Fuzzy pass over blocks big enough for similarity to mean
	// something.
	dmp := diffmatchpatch.New()
	for _, del := range deletions {
		if dl.expired() {
			return sortMoves(moves)
		}
		if del.lineCount < moveMinBlockLines || !blockIsDistinctive(del, counts) ||
			claimedOriginal.Intersects(del.lines.ToOffsetRange()) {
			continue
		}
		best := -1
		bestSimilarity := 0.0
		for j, ins := range insertions {
			if ins.change == del.change || ins.lineCount < moveMinBlockLines ||
				claimedModified.Intersects(ins.lines.ToOffsetRange()) {
				continue
			}
			similarity := textSimilarity(dmp, del.text, ins.text)
			if similarity >= moveSimilarityThreshold && similarity > bestSimilarity {
				best = j
				bestSimilarity = similarity
			}
		}
		if best >= 0 {
			claim(del, insertions[best])
		}
	}

	return sortMoves(moves)
}

func newMoveCandidate(change int, lines LineRange, doc []string) moveCandidate {
	trimmed := make([]string, 0, lines.Length())
	for i := lines.Start; i < lines.EndExclusive; i++ {
		trimmed = append(trimmed, strings.TrimSpace(doc[i-1]))
	}
	return moveCandidate{
		change:    change,
		lines:     lines,
		text:      strings.Join(trimmed, "\n"),
		lineCount: lines.Length(),
	}
}

// lineOccurrences counts each trimmed line across both documents.
func lineOccurrences(original, modified []string) map[string]int {
	counts := make(map[string]int, len(original)+len(modified))
	for _, line := range original {
		counts[strings.TrimSpace(line)]++
	}
	for _, line := range modified {
		counts[strings.TrimSpace(line)]++
	}
	return counts
}

// blockIsDistinctive reports whether a block carries enough identity
// to be matched as a move: short blocks need a minimum amount of text,
// and every block needs at least one line that is not boilerplate
// repeated throughout the documents.
func blockIsDistinctive(c moveCandidate, counts map[string]int) bool {
	if c.lineCount < moveMinBlockLines && len(c.text) < moveMinContentLen {
		return false
	}
	for _, line := range strings.Split(c.text, "\n") {
		if line != "" && counts[line] <= moveCommonLineLimit {
			return true
		}
	}
	return false
}

// textSimilarity returns a similarity ratio in [0, 1] based on the
// edit distance between a and b.
func textSimilarity(dmp *diffmatchpatch.DiffMatchPatch, a, b string) float64 {
	if a == b {
		return 1
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1
	}
	diffs := dmp.DiffMain(a, b, false)
	return 1 - float64(dmp.DiffLevenshtein(diffs))/float64(longer)
}

// diffMovedBlock diffs the deleted block against the inserted block,
// reporting changes in absolute document coordinates.
func diffMovedBlock(original, modified []string, orig, mod LineRange, dl deadline, considerWS bool) []DetailedLineRangeMapping {
	sub1 := original[orig.Start-1 : orig.EndExclusive-1]
	sub2 := modified[mod.Start-1 : mod.EndExclusive-1]

	seq1, seq2 := newLineSequences(sub1, sub2, true)
	var lineDiffs []seqDiff
	if seq1.Len()+seq2.Len() < lineCountDPThreshold {
		lineDiffs, _ = dpDiff(seq1, seq2, dl, nil)
	} else {
		lineDiffs, _ = myersDiff(seq1, seq2, dl)
	}
	lineDiffs = optimizeSequenceDiffs(seq1, seq2, lineDiffs)

	var mappings []RangeMapping
	for _, d := range lineDiffs {
		abs := seqDiff{
			seq1: d.seq1.Delta(orig.Start - 1),
			seq2: d.seq2.Delta(mod.Start - 1),
		}
		m, _ := refineDiff(original, modified, abs, dl, considerWS)
		mappings = append(mappings, m...)
	}
	return lineRangeMappingsFromRangeMappings(mappings, original, modified)
}

func sortMoves(moves []MovedText) []MovedText {
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].Mapping.Original.Start != moves[j].Mapping.Original.Start {
			return moves[i].Mapping.Original.Start < moves[j].Mapping.Original.Start
		}
		return moves[i].Mapping.Modified.Start < moves[j].Mapping.Modified.Start
	})
	return moves
}
