package linediff

// optimizeSequenceDiffs adjusts raw diff output for readability. When
// matching elements surround a pure insertion or deletion there may be
// multiple valid placements; the change is shifted to the placement
// whose boundaries score best (blank lines staying separators, word
// edges beating word interiors). Diffs that collide after shifting are
// merged.
func optimizeSequenceDiffs(seq1, seq2 sequence, diffs []seqDiff) []seqDiff {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = joinSequenceDiffs(diffs)
	diffs = shiftSequenceDiffs(seq1, seq2, diffs)
	diffs = joinSequenceDiffs(diffs)
	return diffs
}

// joinSequenceDiffs merges diffs that intersect or touch on either
// side, restoring the "at least one matching element between diffs"
// invariant.
func joinSequenceDiffs(diffs []seqDiff) []seqDiff {
	if len(diffs) <= 1 {
		return diffs
	}
	result := make([]seqDiff, 0, len(diffs))
	current := diffs[0]
	for _, d := range diffs[1:] {
		if current.seq1.IntersectsOrTouches(d.seq1) || current.seq2.IntersectsOrTouches(d.seq2) {
			current = seqDiff{
				seq1: current.seq1.Join(d.seq1),
				seq2: current.seq2.Join(d.seq2),
			}
			continue
		}
		result = append(result, current)
		current = d
	}
	return append(result, current)
}

// shiftSequenceDiffs shifts each pure insertion or deletion within its
// equal neighborhood to the best-scoring position. Replacements (both
// sides non-empty) are left alone.
func shiftSequenceDiffs(seq1, seq2 sequence, diffs []seqDiff) []seqDiff {
	result := make([]seqDiff, len(diffs))
	copy(result, diffs)

	for i, d := range result {
		// Bound the slide by the neighboring diffs so shifted changes
		// never claim another diff's elements.
		lo1, lo2 := 0, 0
		if i > 0 {
			lo1 = result[i-1].seq1.EndExclusive
			lo2 = result[i-1].seq2.EndExclusive
		}
		hi1, hi2 := seq1.Len(), seq2.Len()
		if i+1 < len(result) {
			hi1 = result[i+1].seq1.Start
			hi2 = result[i+1].seq2.Start
		}

		switch {
		case d.seq1.IsEmpty() && !d.seq2.IsEmpty():
			result[i] = shiftDiff(seq2, d, false, lo1, hi1, lo2, hi2)
		case d.seq2.IsEmpty() && !d.seq1.IsEmpty():
			result[i] = shiftDiff(seq1, d, true, lo1, hi1, lo2, hi2)
		}
	}
	return result
}

// shiftDiff slides one diff whose content lives entirely in seq (the
// first sequence when deletion is true, the second otherwise). Both
// ranges move together: the empty range marks where the other sequence
// aligns and must follow the slide.
func shiftDiff(seq sequence, d seqDiff, deletion bool, lo1, hi1, lo2, hi2 int) seqDiff {
	r := d.seq2
	lo, hi := lo2, hi2
	otherLo, otherHi := lo1, hi1
	other := d.seq1
	if deletion {
		r = d.seq1
		lo, hi = lo1, hi1
		otherLo, otherHi = lo2, hi2
		other = d.seq2
	}

	// How far the change can slide while the surrounding elements keep
	// matching: sliding right by one requires seq[start] == seq[end].
	maxForward := 0
	for i := 0; r.EndExclusive+i < hi && other.Start+i < otherHi; i++ {
		if seq.Element(r.Start+i) != seq.Element(r.EndExclusive+i) {
			break
		}
		maxForward = i + 1
	}
	maxBackward := 0
	for i := 0; r.Start-i-1 >= lo && other.Start-i-1 >= otherLo; i++ {
		if seq.Element(r.EndExclusive-i-1) != seq.Element(r.Start-i-1) {
			break
		}
		maxBackward = i + 1
	}
	if maxForward == 0 && maxBackward == 0 {
		return d
	}

	scorer, ok := seq.(boundaryScored)
	if !ok {
		return d
	}

	score := func(shift int) int {
		return scorer.BoundaryScore(r.Start+shift) + scorer.BoundaryScore(r.EndExclusive+shift)
	}

	bestShift := 0
	bestScore := score(0)
	for shift := 1; shift <= maxForward; shift++ {
		if s := score(shift); s > bestScore {
			bestScore = s
			bestShift = shift
		}
	}
	for shift := 1; shift <= maxBackward; shift++ {
		if s := score(-shift); s > bestScore {
			bestScore = s
			bestShift = -shift
		}
	}
	if bestShift == 0 {
		return d
	}

	return seqDiff{
		seq1: d.seq1.Delta(bestShift),
		seq2: d.seq2.Delta(bestShift),
	}
}

// removeShortMatches absorbs tiny equal runs squeezed between two
// substantial changes, so the result reads as one edit instead of a
// fragmented cluster.
func removeShortMatches(diffs []seqDiff) []seqDiff {
	if len(diffs) <= 1 {
		return diffs
	}
	result := make([]seqDiff, 0, len(diffs))
	current := diffs[0]
	for _, d := range diffs[1:] {
		// Matched elements between diffs pair 1:1, so the gap is the
		// same on both sides.
		gap := d.seq1.Start - current.seq1.EndExclusive
		size := current.seq1.Length() + current.seq2.Length() + d.seq1.Length() + d.seq2.Length()
		if gap <= 2 && size >= 8 {
			current = seqDiff{
				seq1: current.seq1.Join(d.seq1),
				seq2: current.seq2.Join(d.seq2),
			}
			continue
		}
		result = append(result, current)
		current = d
	}
	return append(result, current)
}
