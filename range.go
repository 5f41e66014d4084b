package linediff

import "fmt"

// Range is a span between two positions. The start is inclusive and the
// end is exclusive in the position sense: a range whose start equals its
// end is empty. Construction normalizes the endpoints so that start is
// never after end.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// NewRange creates a Range from two positions given in any order.
// If the endpoints are out of order, the smaller one becomes the start.
func NewRange(startLine, startColumn, endLine, endColumn int) Range {
	start := Position{Line: startLine, Column: startColumn}
	end := Position{Line: endLine, Column: endColumn}
	if start.After(end) {
		start, end = end, start
	}
	return Range{
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
	}
}

// RangeFromPositions creates a Range between two positions.
func RangeFromPositions(start, end Position) Range {
	return NewRange(start.Line, start.Column, end.Line, end.Column)
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d -> %d,%d]", r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}

// Start returns the start position.
func (r Range) Start() Position {
	return Position{Line: r.StartLine, Column: r.StartColumn}
}

// End returns the end position.
func (r Range) End() Position {
	return Position{Line: r.EndLine, Column: r.EndColumn}
}

// IsEmpty reports whether the range spans no content.
func (r Range) IsEmpty() bool {
	return r.StartLine == r.EndLine && r.StartColumn == r.EndColumn
}

// ContainsPosition reports whether p lies within the range, treating
// both endpoints as inclusive.
func (r Range) ContainsPosition(p Position) bool {
	return r.Start().BeforeOrEqual(p) && p.BeforeOrEqual(r.End())
}

// ContainsRange reports whether other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return r.Start().BeforeOrEqual(other.Start()) && other.End().BeforeOrEqual(r.End())
}

// PlusRange returns the smallest range enclosing both r and other.
func (r Range) PlusRange(other Range) Range {
	start := r.Start()
	if other.Start().Before(start) {
		start = other.Start()
	}
	end := r.End()
	if other.End().After(end) {
		end = other.End()
	}
	return RangeFromPositions(start, end)
}
