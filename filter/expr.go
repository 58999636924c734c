package filter

import (
	"fmt"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

type exprFilter struct {
	src string
	prg *vm.Program
}

// Expr compiles src as an expr-lang filter.  An empty src selects every
// record.
func Expr(src string) (Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return matchAll{}, nil
	}
	prg, err := expr.Compile(src,
		expr.Env(exprEnv(nil, 0)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &exprFilter{src: src, prg: prg}, nil
}

// exprEnv binds every label as a variable, then the reserved names
// fields, line, hasLabel and value.
func exprEnv(fields map[string]string, line int) map[string]any {
	if fields == nil {
		fields = map[string]string{}
	}
	env := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		env[k] = v
	}
	env["fields"] = fields
	env["line"] = line
	env["hasLabel"] = func(label string) bool {
		_, ok := fields[label]
		return ok
	}
	env["value"] = func(label string) string {
		return fields[label]
	}
	return env
}

func (f *exprFilter) Match(r ir.Record) (bool, error) {
	res, err := expr.Run(f.prg, exprEnv(r.Map(), r.Line()))
	if err != nil {
		return false, fmt.Errorf("filter %q on line %d: %w", f.src, r.Line(), err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T", f.src, res)
	}
	return b, nil
}
