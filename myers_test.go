package linediff

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"
)

// testSeq exposes the bytes of a string as diff elements.
type testSeq string

func (s testSeq) Len() int             { return len(s) }
func (s testSeq) Element(i int) uint64 { return uint64(s[i]) }

// checkSeqDiffs verifies the structural invariants of an edit script
// between a and b: diffs ordered, gaps equal on both sides, at least
// one matching element between consecutive diffs, and all unchanged
// regions actually equal.
func checkSeqDiffs(t *testing.T, a, b string, diffs []seqDiff) {
	t.Helper()
	pos1, pos2 := 0, 0
	for i, d := range diffs {
		if d.seq1.Start < pos1 || d.seq2.Start < pos2 {
			t.Fatalf("diff %d %v/%v overlaps previous (at %d/%d)", i, d.seq1, d.seq2, pos1, pos2)
		}
		if d.seq1.Start-pos1 != d.seq2.Start-pos2 {
			t.Fatalf("diff %d %v/%v has unequal gaps", i, d.seq1, d.seq2)
		}
		if i > 0 && d.seq1.Start == pos1 {
			t.Fatalf("diff %d %v/%v touches previous diff", i, d.seq1, d.seq2)
		}
		if a[pos1:d.seq1.Start] != b[pos2:d.seq2.Start] {
			t.Fatalf("gap before diff %d differs: %q vs %q", i, a[pos1:d.seq1.Start], b[pos2:d.seq2.Start])
		}
		if d.seq1.EndExclusive > len(a) || d.seq2.EndExclusive > len(b) {
			t.Fatalf("diff %d %v/%v out of bounds", i, d.seq1, d.seq2)
		}
		pos1, pos2 = d.seq1.EndExclusive, d.seq2.EndExclusive
	}
	if a[pos1:] != b[pos2:] {
		t.Fatalf("tail differs: %q vs %q", a[pos1:], b[pos2:])
	}
}

func TestMyersDiff_Basic(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []seqDiff
	}{
		{
			name: "equal",
			a:    "abc",
			b:    "abc",
			want: nil,
		},
		{
			name: "insertion",
			a:    "abc",
			b:    "abXc",
			want: []seqDiff{{seq1: OffsetRange{2, 2}, seq2: OffsetRange{2, 3}}},
		},
		{
			name: "deletion",
			a:    "abXc",
			b:    "abc",
			want: []seqDiff{{seq1: OffsetRange{2, 3}, seq2: OffsetRange{2, 2}}},
		},
		{
			name: "replacement",
			a:    "abc",
			b:    "aXc",
			want: []seqDiff{{seq1: OffsetRange{1, 2}, seq2: OffsetRange{1, 2}}},
		},
		{
			name: "a empty",
			a:    "",
			b:    "xy",
			want: []seqDiff{{seq1: OffsetRange{0, 0}, seq2: OffsetRange{0, 2}}},
		},
		{
			name: "b empty",
			a:    "xy",
			b:    "",
			want: []seqDiff{{seq1: OffsetRange{0, 2}, seq2: OffsetRange{0, 0}}},
		},
		{
			name: "disjoint",
			a:    "abc",
			b:    "xyz",
			want: []seqDiff{{seq1: OffsetRange{0, 3}, seq2: OffsetRange{0, 3}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quitEarly := myersDiff(testSeq(tt.a), testSeq(tt.b), deadline{})
			if quitEarly {
				t.Error("quitEarly = true without a deadline")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("myersDiff() = %v, want %v", got, tt.want)
			}
			checkSeqDiffs(t, tt.a, tt.b, got)
		})
	}
}

func TestMyersDiff_ValidScripts(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"classic", "abcabba", "cbabac"},
		{"scattered", "the quick brown fox", "a quick red fox jumps"},
		{"repeats", "aaaaabaaaaa", "aaaabbaaaa"},
		{"prefix overlap", "function foo()", "function foobar()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, _ := myersDiff(testSeq(tt.a), testSeq(tt.b), deadline{})
			checkSeqDiffs(t, tt.a, tt.b, diffs)
		})
	}
}

func TestMyersDiff_UnevenLengths(t *testing.T) {
	// Inputs whose lengths differ substantially exercise the
	// off-center backward diagonals of the bidirectional search.
	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "long tail removed",
			a:    strings.Repeat("abcab", 10) + "xyz",
			b:    strings.Repeat("abcab", 5),
		},
		{
			name: "long head added",
			a:    strings.Repeat("qrs", 4),
			b:    strings.Repeat("tuv", 30) + strings.Repeat("qrs", 4),
		},
		{
			name: "interleaved shrink",
			a:    strings.Repeat("no common sub ", 8),
			b:    "no sub" + strings.Repeat(" common", 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, quitEarly := myersDiff(testSeq(tt.a), testSeq(tt.b), deadline{})
			if quitEarly {
				t.Error("quitEarly = true without a deadline")
			}
			checkSeqDiffs(t, tt.a, tt.b, diffs)
		})
	}
}

func TestMyersDiff_RandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const alphabet = "abcd"

	randSeq := func(maxLen int) string {
		buf := make([]byte, rng.Intn(maxLen+1))
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(buf)
	}

	for i := 0; i < 2000; i++ {
		a := randSeq(120)
		b := randSeq(120)
		diffs, quitEarly := myersDiff(testSeq(a), testSeq(b), deadline{})
		if quitEarly {
			t.Fatalf("iteration %d: quitEarly = true without a deadline (a=%q b=%q)", i, a, b)
		}
		// The fixed seed makes any failing iteration reproducible.
		checkSeqDiffs(t, a, b, diffs)
	}
}

func TestMyersDiff_Deterministic(t *testing.T) {
	a := "kitten sitting in the kitchen"
	b := "mitten fitting in the mitten"

	first, _ := myersDiff(testSeq(a), testSeq(b), deadline{})
	for i := 0; i < 5; i++ {
		again, _ := myersDiff(testSeq(a), testSeq(b), deadline{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestMyersDiff_ExpiredDeadline(t *testing.T) {
	a := strings.Repeat("abcdefghij", 100) + "X" + strings.Repeat("klmnopqrst", 100)
	b := strings.Repeat("abcdefghij", 100) + "Y" + strings.Repeat("klmnopqrst", 100)

	expired := deadline{at: time.Now().Add(-time.Hour)}
	diffs, quitEarly := myersDiff(testSeq(a), testSeq(b), expired)

	if !quitEarly {
		t.Error("quitEarly = false with an expired deadline")
	}
	// The script must still be valid and cover the full input.
	checkSeqDiffs(t, a, b, diffs)
}

func TestDeadline(t *testing.T) {
	if (deadline{}).expired() {
		t.Error("zero deadline should never expire")
	}
	past := deadline{at: time.Now().Add(-time.Second)}
	if !past.expired() {
		t.Error("past deadline should be expired")
	}
	future := newDeadline(time.Hour)
	if future.expired() {
		t.Error("future deadline should not be expired")
	}
	if got := future.min(past); got != past {
		t.Errorf("min() = %v, want the earlier deadline", got)
	}
	if got := (deadline{}).min(future); got != future {
		t.Errorf("min() with zero deadline = %v, want the bounded one", got)
	}
}
