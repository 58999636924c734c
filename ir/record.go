package ir

import (
	"fmt"
	"iter"
)

// Field is one label:value pair.
type Field struct {
	Label string
	Value string
}

// Record is a view of one parsed line.  The zero Record has no fields.
type Record struct {
	doc *Document
	i   int
}

func (r Record) span() *recordSpan {
	if r.doc == nil || r.doc.closed {
		return nil
	}
	return &r.doc.records[r.i]
}

// Valid reports whether r still refers to an open document.
func (r Record) Valid() bool {
	return r.span() != nil
}

// Index is the position of r in its document.
func (r Record) Index() int {
	return r.i
}

// Line is the 1-based source line r was parsed from, or 0 when r is not
// valid.
func (r Record) Line() int {
	rs := r.span()
	if rs == nil {
		return 0
	}
	return rs.line
}

// FieldCount returns the number of fields of r, possibly 0.
func (r Record) FieldCount() int {
	rs := r.span()
	if rs == nil {
		return 0
	}
	return rs.n
}

func (r Record) field(i int) (*span, error) {
	rs := r.span()
	if rs == nil {
		return nil, ErrClosed
	}
	if i < 0 || i >= rs.n {
		return nil, fmt.Errorf("%w: field %d of %d", ErrIndexOutOfRange, i, rs.n)
	}
	return &r.doc.fields[rs.first+i], nil
}

// Label returns the label of the i'th field.
func (r Record) Label(i int) (string, error) {
	f, err := r.field(i)
	if err != nil {
		return "", err
	}
	return r.doc.str(f.start, f.colon), nil
}

// ValueAt returns the value of the i'th field.
func (r Record) ValueAt(i int) (string, error) {
	f, err := r.field(i)
	if err != nil {
		return "", err
	}
	return r.doc.str(f.colon+1, f.end), nil
}

// Field returns the i'th field.
func (r Record) Field(i int) (Field, error) {
	f, err := r.field(i)
	if err != nil {
		return Field{}, err
	}
	return Field{
		Label: r.doc.str(f.start, f.colon),
		Value: r.doc.str(f.colon+1, f.end),
	}, nil
}

// Fields returns a copy of all fields in order.
func (r Record) Fields() []Field {
	var res []Field
	for l, v := range r.All() {
		res = append(res, Field{Label: l, Value: v})
	}
	return res
}

// All iterates over the fields of r in order.
func (r Record) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		rs := r.span()
		if rs == nil {
			return
		}
		for _, f := range r.doc.fields[rs.first : rs.first+rs.n] {
			if !yield(r.doc.str(f.start, f.colon), r.doc.str(f.colon+1, f.end)) {
				return
			}
		}
	}
}

// Lookup returns the position of the first field labelled label, or -1.
func (r Record) Lookup(label string) int {
	rs := r.span()
	if rs == nil {
		return -1
	}
	if rs.index != nil {
		if j, ok := rs.index[label]; ok {
			return j
		}
		return -1
	}
	for j, f := range r.doc.fields[rs.first : rs.first+rs.n] {
		if string(r.doc.data[f.start:f.colon]) == label {
			return j
		}
	}
	return -1
}

// Value returns the value of the first field labelled label.  The match is
// exact and case sensitive.  A missing label is reported by ok == false.
func (r Record) Value(label string) (value string, ok bool) {
	j := r.Lookup(label)
	if j < 0 {
		return "", false
	}
	f := &r.doc.fields[r.span().first+j]
	return r.doc.str(f.colon+1, f.end), true
}

// Has reports whether r has a field labelled label.
func (r Record) Has(label string) bool {
	return r.Lookup(label) >= 0
}

// Map returns the fields of r keyed by label, keeping the first value of a
// repeated label.
func (r Record) Map() map[string]string {
	res := make(map[string]string, r.FieldCount())
	for l, v := range r.All() {
		if _, ok := res[l]; ok {
			continue
		}
		res[l] = v
	}
	return res
}

// Raw returns the source line of r without its terminator.
func (r Record) Raw() string {
	rs := r.span()
	if rs == nil {
		return ""
	}
	return r.doc.str(rs.start, rs.end)
}

func (r Record) String() string {
	return fmt.Sprintf("record %d (line %d, %d fields)", r.i, r.Line(), r.FieldCount())
}
