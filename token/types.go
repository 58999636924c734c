package token

import "fmt"

// Line is a non-empty line of a buffer. End excludes the line terminator.
type Line struct {
	Start, End int
	No         int
}

func (l Line) Len() int { return l.End - l.Start }

// Span locates a label:value field. The label is d[Start:Colon] and the
// value is d[Colon+1:End].
type Span struct {
	Start, Colon, End int
}

func (s Span) Label(d []byte) []byte { return d[s.Start:s.Colon] }
func (s Span) Value(d []byte) []byte { return d[s.Colon+1 : s.End] }

// Segment is a tab delimited piece of a line which has no colon.
type Segment struct {
	Start, End int
}

func (s Segment) Bytes(d []byte) []byte { return d[s.Start:s.End] }

// Pos is a 1-based line and column with the absolute byte offset.
type Pos struct {
	I         int
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// PosOf returns the position of byte offset off within line l.
func PosOf(l Line, off int) Pos {
	return Pos{I: off, Line: l.No, Col: off - l.Start + 1}
}
