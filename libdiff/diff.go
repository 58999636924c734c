package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/ltsv-format/go-ltsv/debug"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
	Modify
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "="
	case Delete:
		return "-"
	case Insert:
		return "+"
	case Modify:
		return "~"
	default:
		return "?"
	}
}

// FieldChange is a difference of one field within a modified record.
type FieldChange struct {
	Op       Op
	Label    string
	From, To string
}

// Change is a difference of one record.  From is the zero Record for
// inserts and To is the zero Record for deletes.
type Change struct {
	Op       Op
	From, To ir.Record
	Fields   []FieldChange
}

func (c Change) String() string {
	switch c.Op {
	case Delete:
		return fmt.Sprintf("%s %d", c.Op, c.From.Line())
	case Insert:
		return fmt.Sprintf("%s %d", c.Op, c.To.Line())
	default:
		return fmt.Sprintf("%s %d,%d", c.Op, c.From.Line(), c.To.Line())
	}
}

// Changed reports whether any change in cs is not Equal.
func Changed(cs []Change) bool {
	for i := range cs {
		if cs[i].Op != Equal {
			return true
		}
	}
	return false
}

// interner assigns runes to strings, skipping the surrogate range so that
// every rune survives the string conversions done by diffmatchpatch.
type interner struct {
	m  map[string]rune
	im map[rune]string
}

func newInterner() *interner {
	return &interner{m: map[string]rune{}, im: map[rune]string{}}
}

func (in *interner) intern(s string) rune {
	r, ok := in.m[s]
	if ok {
		return r
	}
	r = rune(len(in.m))
	if r >= 0xd800 {
		r += 0x800
	}
	in.m[s] = r
	in.im[r] = s
	return r
}

func recordKey(r ir.Record) string {
	b := &strings.Builder{}
	for l, v := range r.All() {
		b.WriteString(l)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte('\t')
	}
	return b.String()
}

func mapRecordsTo(in *interner, doc *ir.Document) ([]rune, []ir.Record) {
	rs := make([]rune, 0, doc.Len())
	recs := make([]ir.Record, 0, doc.Len())
	for _, r := range doc.Records() {
		rs = append(rs, in.intern(recordKey(r)))
		recs = append(recs, r)
	}
	return rs, recs
}

// Documents computes the record level differences from from to to, in
// order.  The result covers every record of both documents.
func Documents(from, to *ir.Document) []Change {
	in := newInterner()
	fromRunes, fromRecs := mapRecordsTo(in, from)
	toRunes, toRecs := mapRecordsTo(in, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	var res, dels, inss []Change
	flush := func() {
		n := min(len(dels), len(inss))
		for i := 0; i < n; i++ {
			res = append(res, Records(dels[i].From, inss[i].To))
		}
		res = append(res, dels[n:]...)
		res = append(res, inss[n:]...)
		dels, inss = dels[:0], inss[:0]
	}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				dels = append(dels, Change{Op: Delete, From: fromRecs[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				inss = append(inss, Change{Op: Insert, To: toRecs[ti]})
				ti++
			}
		case diffpatch.DiffEqual:
			flush()
			for range diff.Text {
				res = append(res, Change{Op: Equal, From: fromRecs[fi], To: toRecs[ti]})
				fi++
				ti++
			}
		}
	}
	flush()
	if debug.Diff() {
		debug.Logf("diff %q %q: %d records -> %d records, %d changes\n",
			from.Source(), to.Source(), len(fromRecs), len(toRecs), len(res))
	}
	return res
}

// Records compares two records field by field.  The result is Equal when
// both have the same fields in the same order, and Modify otherwise.
func Records(from, to ir.Record) Change {
	res := Change{Op: Equal, From: from, To: to}
	in := newInterner()
	fromLabels, fromVals := mapFieldsTo(in, from)
	toLabels, toVals := mapFieldsTo(in, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromLabels, toLabels, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				res.Fields = append(res.Fields, FieldChange{Op: Delete, Label: in.im[r], From: fromVals[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				res.Fields = append(res.Fields, FieldChange{Op: Insert, Label: in.im[r], To: toVals[ti]})
				ti++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				if fromVals[fi] != toVals[ti] {
					res.Fields = append(res.Fields, FieldChange{
						Op:    Modify,
						Label: in.im[r],
						From:  fromVals[fi],
						To:    toVals[ti],
					})
				}
				fi++
				ti++
			}
		}
	}
	if len(res.Fields) != 0 {
		res.Op = Modify
	}
	return res
}

func mapFieldsTo(in *interner, r ir.Record) ([]rune, []string) {
	n := r.FieldCount()
	rs := make([]rune, 0, n)
	vals := make([]string, 0, n)
	for l, v := range r.All() {
		rs = append(rs, in.intern(l))
		vals = append(vals, v)
	}
	return rs, vals
}
