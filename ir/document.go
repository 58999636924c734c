package ir

import (
	"fmt"
	"iter"
)

// records with more fields than this get a first-match index.
const indexThreshold = 8

type span struct {
	start, colon, end int
}

type recordSpan struct {
	first, n   int
	start, end int
	line       int
	index      map[string]int
}

// Document is the ordered collection of records parsed from one buffer.
type Document struct {
	source  string
	data    []byte
	fields  []span
	records []recordSpan
	closed  bool
}

// Source is the name the document was parsed from, if any.
func (d *Document) Source() string {
	return d.source
}

// Len returns the number of records.  It is 0 once d is closed.
func (d *Document) Len() int {
	if d == nil || d.closed {
		return 0
	}
	return len(d.records)
}

// Record returns the i'th record in input order.
func (d *Document) Record(i int) (Record, error) {
	if d == nil || d.closed {
		return Record{}, ErrClosed
	}
	if i < 0 || i >= len(d.records) {
		return Record{}, fmt.Errorf("%w: record %d of %d", ErrIndexOutOfRange, i, len(d.records))
	}
	return Record{doc: d, i: i}, nil
}

// Records iterates over the records in input order.
func (d *Document) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := 0; i < d.Len(); i++ {
			if !yield(i, Record{doc: d, i: i}) {
				return
			}
		}
	}
}

// Labels returns the distinct labels of d in the order they are first seen.
func (d *Document) Labels() []string {
	var res []string
	seen := map[string]bool{}
	for _, rec := range d.Records() {
		for l := range rec.All() {
			if seen[l] {
				continue
			}
			seen[l] = true
			res = append(res, l)
		}
	}
	return res
}

// LabelCounts returns the number of fields carrying each label.
func (d *Document) LabelCounts() map[string]int {
	res := map[string]int{}
	for _, rec := range d.Records() {
		for l := range rec.All() {
			res[l]++
		}
	}
	return res
}

// Close releases the storage of d.  Records obtained from d are invalid
// afterwards.
func (d *Document) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.closed = true
	d.data = nil
	d.fields = nil
	d.records = nil
	return nil
}

func (d *Document) str(from, to int) string {
	return string(d.data[from:to])
}
