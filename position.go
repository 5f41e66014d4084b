package linediff

import "fmt"

// Position is a location in a document: a 1-based line number and a
// 1-based column. Columns are measured in UTF-16 code units so that
// positions are directly usable with LSP-style editor protocols.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Positions are ordered by line first, then column.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// BeforeOrEqual reports whether p comes before other or equals it.
func (p Position) BeforeOrEqual(other Position) bool {
	return p.Compare(other) <= 0
}

// After reports whether p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}
