package token

import (
	"bytes"
	"iter"
)

type state int

const (
	scanLabel state = iota
	scanValue
)

func (s state) String() string {
	switch s {
	case scanLabel:
		return "SCAN_LABEL"
	case scanValue:
		return "SCAN_VALUE"
	default:
		return "<bad state>"
	}
}

// Lines yields the non-empty lines of d in order.  A line ends at '\n' or
// at the end of d.  Every other byte, '\r' included, belongs to the line.
// Line numbers count every line, including skipped empty ones.
func Lines(d []byte) iter.Seq[Line] {
	return lines(d, false)
}

// LinesCRLF is Lines with a '\r' directly before the end of a line taken
// as part of the terminator.  A line holding only "\r" is then empty and
// skipped.
func LinesCRLF(d []byte) iter.Seq[Line] {
	return lines(d, true)
}

func lines(d []byte, trimCR bool) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		no := 0
		for off := 0; off < len(d); {
			no++
			end, next := len(d), len(d)
			if i := bytes.IndexByte(d[off:], '\n'); i >= 0 {
				end = off + i
				next = end + 1
			}
			if trimCR && end > off && d[end-1] == '\r' {
				end--
			}
			if end > off {
				if !yield(Line{Start: off, End: end, No: no}) {
					return
				}
			}
			off = next
		}
	}
}

// Fields scans line l of d.  field is called for every segment containing a
// colon, in order; drop, if not nil, is called for every non-empty segment
// without one.
func Fields(d []byte, l Line, field func(Span), drop func(Segment)) {
	st := scanLabel
	start, colon := l.Start, -1
	for i := l.Start; i <= l.End; i++ {
		if i == l.End || d[i] == '\t' {
			switch st {
			case scanValue:
				field(Span{Start: start, Colon: colon, End: i})
			case scanLabel:
				if i > start && drop != nil {
					drop(Segment{Start: start, End: i})
				}
			}
			st, start, colon = scanLabel, i+1, -1
			continue
		}
		if st == scanLabel && d[i] == ':' {
			st, colon = scanValue, i
		}
	}
}
