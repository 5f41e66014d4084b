package linediff

import "time"

// seqDiff pairs a changed range of the first sequence with the
// corresponding changed range of the second. One side may be empty
// (pure insertion or deletion); between two consecutive seqDiffs there
// is at least one matching element on both sides.
type seqDiff struct {
	seq1 OffsetRange
	seq2 OffsetRange
}

func (d seqDiff) flip() seqDiff {
	return seqDiff{seq1: d.seq2, seq2: d.seq1}
}

// deadline is a soft wall-clock budget. The zero value never expires.
type deadline struct {
	at time.Time
}

func newDeadline(budget time.Duration) deadline {
	if budget <= 0 {
		return deadline{}
	}
	return deadline{at: time.Now().Add(budget)}
}

func (d deadline) expired() bool {
	return !d.at.IsZero() && !time.Now().Before(d.at)
}

// min returns a deadline that expires no later than either input.
func (d deadline) min(other deadline) deadline {
	if d.at.IsZero() {
		return other
	}
	if other.at.IsZero() || d.at.Before(other.at) {
		return d
	}
	return other
}

// significantMatchLen is the minimum length of a diagonal run that
// indicates significant alignment progress. Runs this long are recorded
// as fallback split points for when the time budget runs out.
const significantMatchLen = 16

// diffContext holds algorithm state during one comparison.
type diffContext struct {
	seq1, seq2   sequence
	fdiag, bdiag []int  // forward/backward diagonal arrays
	changes1     []bool // marks changed elements in seq1
	changes2     []bool // marks changed elements in seq2
	dl           deadline
	quitEarly    bool
}

func newDiffContext(seq1, seq2 sequence, dl deadline) *diffContext {
	n := seq1.Len()
	m := seq2.Len()
	diagSize := n + m + 3
	return &diffContext{
		seq1:     seq1,
		seq2:     seq2,
		fdiag:    make([]int, diagSize),
		bdiag:    make([]int, diagSize),
		changes1: make([]bool, n),
		changes2: make([]bool, m),
		dl:       dl,
	}
}

// equal reports whether seq1[i] equals seq2[j].
func (ctx *diffContext) equal(i, j int) bool {
	return ctx.seq1.Element(i) == ctx.seq2.Element(j)
}

func (ctx *diffContext) markDeleted(xoff, xlim int) {
	for i := xoff; i < xlim; i++ {
		ctx.changes1[i] = true
	}
}

func (ctx *diffContext) markInserted(yoff, ylim int) {
	for i := yoff; i < ylim; i++ {
		ctx.changes2[i] = true
	}
}

// myersDiff runs the O(ND) algorithm over two sequences and returns
// the changed-range pairs plus whether the time budget was exceeded.
// When the budget runs out the result is still a valid edit script
// covering the full input; it is just not guaranteed to be minimal.
func myersDiff(seq1, seq2 sequence, dl deadline) ([]seqDiff, bool) {
	ctx := newDiffContext(seq1, seq2, dl)
	if seq1.Len() > 0 || seq2.Len() > 0 {
		ctx.compareSeq(0, seq1.Len(), 0, seq2.Len())
	}
	return ctx.buildSeqDiffs(), ctx.quitEarly
}

// compareSeq is the divide-and-conquer core of the Myers algorithm. It
// compares seq1[xoff:xlim] with seq2[yoff:ylim] and marks changes.
func (ctx *diffContext) compareSeq(xoff, xlim, yoff, ylim int) {
	// Trim matching elements from the start and end.
	for xoff < xlim && yoff < ylim && ctx.equal(xoff, yoff) {
		xoff++
		yoff++
	}
	for xoff < xlim && yoff < ylim && ctx.equal(xlim-1, ylim-1) {
		xlim--
		ylim--
	}

	// Base cases: one side is empty.
	if xoff == xlim {
		ctx.markInserted(yoff, ylim)
		return
	}
	if yoff == ylim {
		ctx.markDeleted(xoff, xlim)
		return
	}

	// Out of budget: report the remainder as replaced wholesale. This
	// keeps the script valid and fully covering, just not minimal.
	if ctx.quitEarly || ctx.dl.expired() {
		ctx.quitEarly = true
		ctx.markDeleted(xoff, xlim)
		ctx.markInserted(yoff, ylim)
		return
	}

	// Find the middle snake and recurse on both halves.
	part := ctx.findMiddleSnake(xoff, xlim, yoff, ylim)
	assertf(part.xmid >= xoff && part.xmid <= xlim && part.ymid >= yoff && part.ymid <= ylim,
		"middle snake (%d,%d) outside [%d,%d]x[%d,%d]",
		part.xmid, part.ymid, xoff, xlim, yoff, ylim)
	ctx.compareSeq(xoff, part.xmid, yoff, part.ymid)
	ctx.compareSeq(part.xmid, xlim, part.ymid, ylim)
}

// partition is the result of findMiddleSnake: the midpoint where the
// edit path can be split.
type partition struct {
	xmid, ymid int
}

// snakeInfo tracks a diagonal run of matches found during the search.
// In Myers terminology a "snake" is a sequence of diagonal moves
// (matching elements) in the edit graph.
type snakeInfo struct {
	x, y    int // endpoint of the diagonal run (local coordinates)
	forward bool
}

// findMiddleSnake implements the bidirectional search from Myers 1986
// Section 4b ("An O(ND) Difference Algorithm and Its Variations"). The
// search additionally samples the wall-clock deadline at bounded
// intervals; on expiry it falls back to the best significant snake seen
// so far, or to a greedy split that guarantees progress, so the overall
// algorithm always terminates with a valid script.
//
// Tie-breaking is deterministic: diagonals are explored in a fixed
// order and only strict improvements replace the recorded best snake,
// which aligns changes with earlier positions in the first sequence.
func (ctx *diffContext) findMiddleSnake(xoff, xlim, yoff, ylim int) partition {
	n := xlim - xoff
	m := ylim - yoff

	delta := n - m
	deltaOdd := delta&1 != 0

	// Diagonals range from -m to n; index with k + offset.
	offset := m + 1

	fdiag := ctx.fdiag
	bdiag := ctx.bdiag
	fdiag[offset+1] = 0
	// Backward diagonals are re-centered so the corner (n,m) lies on
	// k = 0; the d=0 step with k == d reads the k-1 slot.
	bdiag[offset-1] = n

	maxD := (n + m + 1) / 2

	var bestSnake snakeInfo
	bestSnakeScore := 0

	for d := 0; d <= maxD; d++ {
		// Sample the clock once per edit-distance step.
		if d&15 == 0 && ctx.dl.expired() {
			ctx.quitEarly = true
			if bestSnakeScore > 0 {
				return snakeToPartition(bestSnake, xoff, yoff)
			}
			return ctx.greedyFallback(xoff, xlim, yoff, ylim)
		}

		// Forward search.
		kMin := -d
		if kMin < -m {
			kMin = -m
		}
		kMax := d
		if kMax > n {
			kMax = n
		}
		if (kMin+d)%2 != 0 {
			kMin++
		}

		for k := kMin; k <= kMax; k += 2 {
			kIdx := offset + k
			if kIdx-1 < 0 || kIdx+1 >= len(fdiag) {
				continue
			}

			// Come from k+1 (deletion) or k-1 (insertion).
			var x int
			if k == -d || (k != d && fdiag[kIdx-1] < fdiag[kIdx+1]) {
				x = fdiag[kIdx+1]
			} else {
				x = fdiag[kIdx-1] + 1
			}
			y := x - k

			if y < 0 || y > m || x < 0 || x > n {
				fdiag[kIdx] = x
				continue
			}

			snakeStartX := x
			for x < n && y < m && ctx.equal(xoff+x, yoff+y) {
				x++
				y++
			}
			snakeLen := x - snakeStartX
			fdiag[kIdx] = x

			if snakeLen >= significantMatchLen {
				midDist := abs((x+y)/2 - (n+m)/4)
				score := snakeLen*2 - midDist
				if score > bestSnakeScore {
					bestSnakeScore = score
					bestSnake = snakeInfo{x: x, y: y, forward: true}
				}
			}

			// With odd delta, overlap is detected on forward steps.
			if deltaOdd && k >= delta-(d-1) && k <= delta+(d-1) {
				bIdx := offset + k - delta
				if bIdx >= 0 && bIdx < len(bdiag) && fdiag[kIdx] >= bdiag[bIdx] {
					return partition{xmid: xoff + x, ymid: yoff + y}
				}
			}
		}

		// Backward search.
		bkMin := -d
		if bkMin < -m {
			bkMin = -m
		}
		bkMax := d
		if bkMax > n {
			bkMax = n
		}
		if (bkMin+d)%2 != 0 {
			bkMin++
		}

		for k := bkMin; k <= bkMax; k += 2 {
			kIdx := offset + k
			if kIdx-1 < 0 || kIdx+1 >= len(bdiag) {
				continue
			}

			var x int
			if k == d || (k != -d && bdiag[kIdx-1] < bdiag[kIdx+1]) {
				x = bdiag[kIdx-1]
			} else {
				x = bdiag[kIdx+1] - 1
			}
			y := x - k - delta

			if y < 0 || y > m || x < 0 || x > n {
				bdiag[kIdx] = x
				continue
			}

			snakeStartX := x
			for x > 0 && y > 0 && ctx.equal(xoff+x-1, yoff+y-1) {
				x--
				y--
			}
			snakeLen := snakeStartX - x
			bdiag[kIdx] = x

			if snakeLen >= significantMatchLen {
				midDist := abs((x+y)/2 - (n+m)/4)
				score := snakeLen*2 - midDist
				if score > bestSnakeScore {
					bestSnakeScore = score
					bestSnake = snakeInfo{x: x, y: y, forward: false}
				}
			}

			// With even delta, overlap is detected on backward steps.
			if !deltaOdd && k+delta >= -d && k+delta <= d {
				fIdx := offset + k + delta
				if fIdx >= 0 && fIdx < len(fdiag) && fdiag[fIdx] >= bdiag[kIdx] {
					fx := fdiag[fIdx]
					fy := fx - (k + delta)
					return partition{xmid: xoff + fx, ymid: yoff + fy}
				}
			}
		}
	}

	// Exhausted the search without overlap; should not happen, but
	// degrade the same way the timeout does rather than crash.
	if bestSnakeScore > 0 {
		return snakeToPartition(bestSnake, xoff, yoff)
	}
	return ctx.greedyFallback(xoff, xlim, yoff, ylim)
}

// snakeToPartition converts a diagonal run into a split point: forward
// snakes split at their end, backward snakes at their start.
func snakeToPartition(snake snakeInfo, xoff, yoff int) partition {
	return partition{xmid: xoff + snake.x, ymid: yoff + snake.y}
}

// greedyFallback provides a split that guarantees progress when the
// optimal search was cut short: matches from the start if any, else a
// single deletion.
func (ctx *diffContext) greedyFallback(xoff, xlim, yoff, ylim int) partition {
	n := xlim - xoff
	m := ylim - yoff

	x, y := 0, 0
	for x < n && y < m && ctx.equal(xoff+x, yoff+y) {
		x++
		y++
	}
	if x > 0 {
		return partition{xmid: xoff + x, ymid: yoff + y}
	}
	if n > 0 {
		return partition{xmid: xoff + 1, ymid: yoff}
	}
	return partition{xmid: xoff, ymid: yoff + 1}
}

// buildSeqDiffs converts the change marks into changed-range pairs,
// grouping adjacent deletions and insertions into one seqDiff.
func (ctx *diffContext) buildSeqDiffs() []seqDiff {
	var diffs []seqDiff
	n := len(ctx.changes1)
	m := len(ctx.changes2)
	i, j := 0, 0

	for i < n || j < m {
		// Skip matched elements.
		for i < n && j < m && !ctx.changes1[i] && !ctx.changes2[j] {
			i++
			j++
		}

		delStart, insStart := i, j
		for i < n && ctx.changes1[i] {
			i++
		}
		for j < m && ctx.changes2[j] {
			j++
		}
		if i > delStart || j > insStart {
			diffs = append(diffs, seqDiff{
				seq1: OffsetRange{Start: delStart, EndExclusive: i},
				seq2: OffsetRange{Start: insStart, EndExclusive: j},
			})
		}
	}
	return diffs
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
