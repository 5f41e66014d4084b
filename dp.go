package linediff

// dpDiff computes a diff using dynamic programming over the full LCS
// table. Quadratic, so only used for small inputs, where it produces
// better-aligned results than the greedy search: the weight function
// lets callers value some matches over others (for example, preferring
// exact line matches over matches that only agree after trimming).
//
// A nil weight treats every match equally. On deadline expiry the
// whole input is reported as replaced, which is valid but not minimal.
func dpDiff(seq1, seq2 sequence, dl deadline, weight func(i, j int) float64) ([]seqDiff, bool) {
	n := seq1.Len()
	m := seq2.Len()
	if n == 0 && m == 0 {
		return nil, false
	}
	if n == 0 || m == 0 {
		return []seqDiff{{
			seq1: OffsetRange{Start: 0, EndExclusive: n},
			seq2: OffsetRange{Start: 0, EndExclusive: m},
		}}, false
	}
	if weight == nil {
		weight = func(i, j int) float64 { return 1 }
	}

	const (
		dirDiag = iota
		dirUp   // skip seq1[i-1]: deletion
		dirLeft // skip seq2[j-1]: insertion
	)

	score := make([]float64, (n+1)*(m+1))
	dirs := make([]int8, (n+1)*(m+1))
	idx := func(i, j int) int { return i*(m+1) + j }

	for i := 1; i <= n; i++ {
		if dl.expired() {
			return []seqDiff{{
				seq1: OffsetRange{Start: 0, EndExclusive: n},
				seq2: OffsetRange{Start: 0, EndExclusive: m},
			}}, true
		}
		for j := 1; j <= m; j++ {
			up := score[idx(i-1, j)]
			left := score[idx(i, j-1)]

			best := up
			dir := int8(dirUp)
			if left > best {
				best = left
				dir = dirLeft
			}
			if seq1.Element(i-1) == seq2.Element(j-1) {
				if diag := score[idx(i-1, j-1)] + weight(i-1, j-1); diag >= best {
					best = diag
					dir = dirDiag
				}
			}
			score[idx(i, j)] = best
			dirs[idx(i, j)] = dir
		}
	}

	// Backtrack, marking changed elements.
	changes1 := make([]bool, n)
	changes2 := make([]bool, m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			changes2[j-1] = true
			j--
		case j == 0:
			changes1[i-1] = true
			i--
		default:
			switch dirs[idx(i, j)] {
			case dirDiag:
				i--
				j--
			case dirUp:
				changes1[i-1] = true
				i--
			default:
				changes2[j-1] = true
				j--
			}
		}
	}

	ctx := &diffContext{changes1: changes1, changes2: changes2}
	return ctx.buildSeqDiffs(), false
}
