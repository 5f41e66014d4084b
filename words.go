package linediff

// extendDiffsToEntireWords widens character diffs that cut a word in
// half so they cover the whole word on both sides. A diff boundary in
// the middle of an identifier produces confusing output ("orig" matched
// inside both "original" and "originally"); covering the full word
// reads as the single substitution it is. Diffs that overlap after
// extension are merged.
//
// The extension consumes only matched context, so moving both sides by
// the same distance keeps the script valid.
func extendDiffsToEntireWords(seq1, seq2 *charSequence, diffs []seqDiff) []seqDiff {
	if len(diffs) == 0 {
		return diffs
	}

	result := make([]seqDiff, 0, len(diffs))
	for i, d := range diffs {
		prevEnd1, prevEnd2 := 0, 0
		if len(result) > 0 {
			last := result[len(result)-1]
			prevEnd1 = last.seq1.EndExclusive
			prevEnd2 = last.seq2.EndExclusive
		}
		nextStart1, nextStart2 := seq1.Len(), seq2.Len()
		if i+1 < len(diffs) {
			nextStart1 = diffs[i+1].seq1.Start
			nextStart2 = diffs[i+1].seq2.Start
		}

		startDelta := 0
		if w, ok := seq1.wordContaining(d.seq1.Start); ok && w.Start < d.seq1.Start {
			startDelta = d.seq1.Start - w.Start
		}
		if w, ok := seq2.wordContaining(d.seq2.Start); ok && w.Start < d.seq2.Start {
			startDelta = max(startDelta, d.seq2.Start-w.Start)
		}
		startDelta = min(startDelta, d.seq1.Start-prevEnd1, d.seq2.Start-prevEnd2)

		endDelta := 0
		if w, ok := seq1.wordContaining(d.seq1.EndExclusive); ok && w.Start < d.seq1.EndExclusive {
			endDelta = w.EndExclusive - d.seq1.EndExclusive
		}
		if w, ok := seq2.wordContaining(d.seq2.EndExclusive); ok && w.Start < d.seq2.EndExclusive {
			endDelta = max(endDelta, w.EndExclusive-d.seq2.EndExclusive)
		}
		endDelta = min(endDelta, nextStart1-d.seq1.EndExclusive, nextStart2-d.seq2.EndExclusive)

		extended := seqDiff{
			seq1: d.seq1.DeltaStart(-startDelta).DeltaEnd(endDelta),
			seq2: d.seq2.DeltaStart(-startDelta).DeltaEnd(endDelta),
		}

		if len(result) > 0 {
			last := result[len(result)-1]
			if last.seq1.IntersectsOrTouches(extended.seq1) || last.seq2.IntersectsOrTouches(extended.seq2) {
				result[len(result)-1] = seqDiff{
					seq1: last.seq1.Join(extended.seq1),
					seq2: last.seq2.Join(extended.seq2),
				}
				continue
			}
		}
		result = append(result, extended)
	}
	return result
}
