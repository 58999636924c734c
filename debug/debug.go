package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Stream bool
	Filter bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("LTSV_DEBUG_PARSE")
	d.Stream = boolEnv("LTSV_DEBUG_STREAM")
	d.Filter = boolEnv("LTSV_DEBUG_FILTER")
	d.Diff = boolEnv("LTSV_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Stream() bool {
	return d.Stream
}
func Filter() bool {
	return d.Filter
}
func Diff() bool {
	return d.Diff
}
