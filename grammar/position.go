package grammar

import "unicode/utf8"

// Position is a location in the input expression.
// Lines are 1-based; Character counts runes from the start of the line.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Offset    int `json:"offset"` // 0-based byte offset
}

// Range is the span of input a token or fragment was taken from
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// PositionTracker walks the input and converts byte offsets to positions.
// Offsets must be requested in increasing order.
type PositionTracker struct {
	source    string
	line      int
	character int
	offset    int
}

// NewPositionTracker creates a tracker at the start of source
func NewPositionTracker(source string) *PositionTracker {
	return &PositionTracker{source: source, line: 1}
}

// AdvanceTo moves the tracker to byte offset off, counting newlines and runes
func (pt *PositionTracker) AdvanceTo(off int) {
	if off > len(pt.source) {
		off = len(pt.source)
	}
	for pt.offset < off {
		r, size := utf8.DecodeRuneInString(pt.source[pt.offset:])
		if r == '\n' {
			pt.line++
			pt.character = 0
		} else {
			pt.character++
		}
		pt.offset += size
	}
}

// CurrentPosition returns the current position snapshot
func (pt *PositionTracker) CurrentPosition() Position {
	return Position{Line: pt.line, Character: pt.character, Offset: pt.offset}
}

// PositionAt returns the position of byte offset off in source
func PositionAt(source string, off int) Position {
	pt := NewPositionTracker(source)
	pt.AdvanceTo(off)
	return pt.CurrentPosition()
}

// RangeOf returns the range covered by bytes [start, end) of source
func RangeOf(source string, start, end int) Range {
	pt := NewPositionTracker(source)
	pt.AdvanceTo(start)
	from := pt.CurrentPosition()
	pt.AdvanceTo(end)
	return Range{Start: from, End: pt.CurrentPosition()}
}
