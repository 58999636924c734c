package filter

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/signadot/ltsv-format/go-ltsv/debug"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

type celFilter struct {
	src  string
	prog cel.Program
}

// CEL compiles src as a CEL filter over fields (map(string, string)) and
// line (int).  Indexing fields with a label the record lacks is an
// evaluation error, so test with "x" in fields or has(fields.x) first, or
// use fields.value("x"), which gives "" for a missing label.  An empty src
// selects every record.
func CEL(src string) (Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return matchAll{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("fields", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("line", cel.IntType),
		cel.Function("value",
			cel.MemberOverload("fields_value_string",
				[]*cel.Type{cel.MapType(cel.StringType, cel.StringType), cel.StringType},
				cel.StringType,
				cel.BinaryBinding(celValue))),
	)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Parse(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("parse filter %q: %w", src, iss.Err())
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return nil, fmt.Errorf("check filter %q: %w", src, iss2.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("program filter %q: %w", src, err)
	}
	return &celFilter{src: src, prog: prog}, nil
}

func (f *celFilter) Match(r ir.Record) (bool, error) {
	out, _, err := f.prog.Eval(map[string]any{
		"fields": r.Map(),
		"line":   int64(r.Line()),
	})
	if err != nil {
		if debug.Filter() {
			debug.Logf("cel %q line %d: %v\n", f.src, r.Line(), err)
		}
		return false, fmt.Errorf("filter %q on line %d: %w", f.src, r.Line(), err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %v", f.src, out.Type())
	}
	return b, nil
}

func celValue(fields, label ref.Val) ref.Val {
	m, ok := fields.(traits.Mapper)
	if !ok {
		return types.NewErr("value: fields is %v", fields.Type())
	}
	v, found := m.Find(label)
	if !found {
		return types.String("")
	}
	return v
}
