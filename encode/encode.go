package encode

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"

	"github.com/signadot/ltsv-format/go-ltsv/format"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

type EncState struct {
	format  format.Format
	labels  []string
	verbose bool
	header  bool

	Color func(ColorAttr, string) string
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// nullText stands in for the value of a missing label in verbose text
// output.
const nullText = "(null)"

// pair is one rendered field.  ok is false for a selected label the record
// lacks.
type pair struct {
	label, value string
	ok           bool
}

// Encoder renders records to a writer.  An Encoder may be fed records from
// several documents; the header is written at most once.
type Encoder struct {
	w       io.Writer
	es      *EncState
	started bool
	buf     bytes.Buffer
}

func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return &Encoder{w: w, es: es}
}

// Encode renders every record of doc to w.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	return NewEncoder(w, opts...).Document(doc)
}

// EncodeRecord renders a single record to w.
func EncodeRecord(r ir.Record, w io.Writer, opts ...EncodeOption) error {
	_, err := NewEncoder(w, opts...).Record(r)
	return err
}

// Header writes the leading separator if the encoder was configured with
// EncodeHeader and it has not been written yet.
func (e *Encoder) Header() error {
	if e.started {
		return nil
	}
	e.started = true
	if !e.es.header || !e.es.format.IsText() {
		return nil
	}
	_, err := io.WriteString(e.w, e.es.color(SepColor, "--")+"\n")
	return err
}

// Document renders every record of doc.
func (e *Encoder) Document(doc *ir.Document) error {
	if err := e.Header(); err != nil {
		return err
	}
	for i, r := range doc.Records() {
		if _, err := e.Record(r); err != nil {
			return fmt.Errorf("error encoding record %d: %w", i, err)
		}
	}
	return nil
}

// Record renders r and reports whether anything was written for it.
func (e *Encoder) Record(r ir.Record) (bool, error) {
	return e.render(e.pairs(r.Value, r.All()))
}

// Fields renders fs the way a record with those fields, in that order, is
// rendered.
func (e *Encoder) Fields(fs []ir.Field) (bool, error) {
	value := func(label string) (string, bool) {
		for _, f := range fs {
			if f.Label == label {
				return f.Value, true
			}
		}
		return "", false
	}
	all := func(yield func(string, string) bool) {
		for _, f := range fs {
			if !yield(f.Label, f.Value) {
				return
			}
		}
	}
	return e.render(e.pairs(value, all))
}

func (e *Encoder) render(pairs []pair) (bool, error) {
	if err := e.Header(); err != nil {
		return false, err
	}
	if len(pairs) == 0 {
		return false, nil
	}
	e.buf.Reset()
	var err error
	switch e.es.format {
	case format.TextFormat:
		e.text(pairs)
	case format.JSONFormat:
		err = e.json(pairs)
	case format.YAMLFormat:
		err = e.yaml(pairs)
	default:
		err = fmt.Errorf("%w: %d", format.ErrBadFormat, e.es.format)
	}
	if err != nil {
		return false, err
	}
	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// pairs selects what to render of a record given its first-wins lookup
// and its fields in order.  Without selected labels every position is
// rendered, each with the first value of its label.
func (e *Encoder) pairs(value func(string) (string, bool), all iter.Seq2[string, string]) []pair {
	var res []pair
	if e.es.labels != nil {
		for _, l := range e.es.labels {
			v, ok := value(l)
			if ok || e.es.verbose {
				res = append(res, pair{label: l, value: v, ok: ok})
			}
		}
		return res
	}
	for l := range all {
		v, _ := value(l)
		res = append(res, pair{label: l, value: v, ok: true})
	}
	return res
}

func (e *Encoder) text(pairs []pair) {
	for _, p := range pairs {
		e.buf.WriteString(e.es.color(LabelColor, p.label))
		e.buf.WriteString(": ")
		if p.ok {
			e.buf.WriteString(e.es.color(ValueColor, p.value))
		} else {
			e.buf.WriteString(e.es.color(MissingColor, nullText))
		}
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString(e.es.color(SepColor, "--"))
	e.buf.WriteByte('\n')
}

// uniq drops later occurrences of a repeated label; JSON and YAML mappings
// need distinct keys.
func uniq(pairs []pair) []pair {
	seen := make(map[string]bool, len(pairs))
	res := pairs[:0:0]
	for _, p := range pairs {
		if seen[p.label] {
			continue
		}
		seen[p.label] = true
		res = append(res, p)
	}
	return res
}

func (e *Encoder) json(pairs []pair) error {
	e.buf.WriteByte('{')
	for i, p := range uniq(pairs) {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		k, err := json.Marshal(p.label)
		if err != nil {
			return err
		}
		e.buf.Write(k)
		e.buf.WriteByte(':')
		if !p.ok {
			e.buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(p.value)
		if err != nil {
			return err
		}
		e.buf.Write(v)
	}
	e.buf.WriteString("}\n")
	return nil
}

func (e *Encoder) yaml(pairs []pair) error {
	ms := yaml.MapSlice{}
	for _, p := range uniq(pairs) {
		item := yaml.MapItem{Key: p.label}
		if p.ok {
			item.Value = p.value
		}
		ms = append(ms, item)
	}
	d, err := yaml.Marshal(ms)
	if err != nil {
		return err
	}
	e.buf.WriteString("---\n")
	e.buf.Write(d)
	return nil
}
