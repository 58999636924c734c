// Package filter selects records with boolean expressions.
//
// Two expression languages are supported.  [Expr] compiles an expr-lang
// expression in which every label of the record is a variable:
//
//	status == "500" && hasLabel("reqtime")
//
// [CEL] compiles a Common Expression Language expression over the map
// fields:
//
//	"status" in fields && fields["status"].startsWith("5")
//
// In both, line is the source line number of the record.  A label the
// record lacks is nil in expr.  In CEL it is absent from fields, where
// indexing it fails; fields.value("x") gives "" instead.
package filter

import (
	"github.com/signadot/ltsv-format/go-ltsv/debug"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

// Filter decides whether a record is selected.
type Filter interface {
	Match(ir.Record) (bool, error)
}

// Func adapts a function to a Filter.
type Func func(ir.Record) (bool, error)

func (f Func) Match(r ir.Record) (bool, error) { return f(r) }

type matchAll struct{}

func (matchAll) Match(ir.Record) (bool, error) { return true, nil }

// All returns the conjunction of fs, skipping nil entries.
func All(fs ...Filter) Filter {
	var res []Filter
	for _, f := range fs {
		if f == nil {
			continue
		}
		if _, ok := f.(matchAll); ok {
			continue
		}
		res = append(res, f)
	}
	switch len(res) {
	case 0:
		return matchAll{}
	case 1:
		return res[0]
	}
	return Func(func(r ir.Record) (bool, error) {
		for _, f := range res {
			ok, err := f.Match(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Apply returns the records of doc selected by f, in order.
func Apply(doc *ir.Document, f Filter) ([]ir.Record, error) {
	var res []ir.Record
	for _, r := range doc.Records() {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if debug.Filter() {
			debug.Logf("filter %v: %v\n", r, ok)
		}
		if ok {
			res = append(res, r)
		}
	}
	return res, nil
}
