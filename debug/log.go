package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

// Logf writes a debug message to stderr.  Records and field slices in args
// are rendered inline.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, map[string]string:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case ir.Record:
			args[i] = recordString(x)
		case []ir.Field:
			parts := make([]string, len(x))
			for j, f := range x {
				parts[j] = f.Label + ":" + f.Value
			}
			args[i] = "[" + strings.Join(parts, " ") + "]"
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func recordString(r ir.Record) string {
	if !r.Valid() {
		return "[invalid record]"
	}
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "[line %d]", r.Line())
	for l, v := range r.All() {
		fmt.Fprintf(buf, " %q=%q", l, v)
	}
	return buf.String()
}
