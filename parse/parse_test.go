package parse

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

func fieldsOf(doc *ir.Document) [][]ir.Field {
	res := [][]ir.Field{}
	for _, r := range doc.Records() {
		fs := r.Fields()
		if fs == nil {
			fs = []ir.Field{}
		}
		res = append(res, fs)
	}
	return res
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]ir.Field
	}{
		{
			name: "empty",
			in:   "",
			want: [][]ir.Field{},
		},
		{
			name: "basic",
			in:   "a:1\tb:2\tc:3\n",
			want: [][]ir.Field{{{Label: "a", Value: "1"}, {Label: "b", Value: "2"}, {Label: "c", Value: "3"}}},
		},
		{
			name: "two lines no trailing newline",
			in:   "a:1\nb:2",
			want: [][]ir.Field{{{Label: "a", Value: "1"}}, {{Label: "b", Value: "2"}}},
		},
		{
			name: "duplicate labels",
			in:   "a:1\ta:2",
			want: [][]ir.Field{{{Label: "a", Value: "1"}, {Label: "a", Value: "2"}}},
		},
		{
			name: "malformed field dropped",
			in:   "a:1\tnocolon\tb:2",
			want: [][]ir.Field{{{Label: "a", Value: "1"}, {Label: "b", Value: "2"}}},
		},
		{
			name: "empty line skipped",
			in:   "a:1\n\nb:2\n",
			want: [][]ir.Field{{{Label: "a", Value: "1"}}, {{Label: "b", Value: "2"}}},
		},
		{
			name: "malformed line kept empty",
			in:   "a:1\njunk\nb:2\n",
			want: [][]ir.Field{{{Label: "a", Value: "1"}}, {}, {{Label: "b", Value: "2"}}},
		},
		{
			name: "empty values and labels",
			in:   "a:\t:b\n",
			want: [][]ir.Field{{{Label: "a", Value: ""}, {Label: "", Value: "b"}}},
		},
		{
			name: "value keeps colons",
			in:   "time:[10/Oct/2000:13:55:36 -0700]\n",
			want: [][]ir.Field{{{Label: "time", Value: "[10/Oct/2000:13:55:36 -0700]"}}},
		},
		{
			name: "cr is part of the value",
			in:   "a:1\r\nb:2\r\n",
			want: [][]ir.Field{{{Label: "a", Value: "1\r"}}, {{Label: "b", Value: "2\r"}}},
		},
		{
			name: "cr only line is an empty record",
			in:   "a:1\n\r\nb:2",
			want: [][]ir.Field{{{Label: "a", Value: "1"}}, {}, {{Label: "b", Value: "2"}}},
		},
		{
			name: "control bytes pass through",
			in:   "a:\x01\x02\x7f\tb:\xff\xfe",
			want: [][]ir.Field{{{Label: "a", Value: "\x01\x02\x7f"}, {Label: "b", Value: "\xff\xfe"}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseString(tc.in)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tc.in, err)
			}
			defer doc.Close()
			if diff := cmp.Diff(tc.want, fieldsOf(doc)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSpecExamples(t *testing.T) {
	doc, err := Parse([]byte("a:1\tb:2\tc:3"))
	if err != nil {
		t.Fatal(err)
	}
	r, err := doc.Record(0)
	if err != nil {
		t.Fatal(err)
	}
	if r.FieldCount() != 3 {
		t.Errorf("field count %d", r.FieldCount())
	}
	if l, _ := r.Label(0); l != "a" {
		t.Errorf("label 0 %q", l)
	}
	if v, ok := r.Value("b"); !ok || v != "2" {
		t.Errorf("value b %q %v", v, ok)
	}
	if _, ok := r.Value("missing"); ok {
		t.Error("missing label found")
	}
}

func TestParseNilBuffer(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if doc == nil || doc.Len() != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}
}

func TestParseCopiesInput(t *testing.T) {
	in := []byte("a:1\tb:2")
	doc, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	copy(in, "x:9\ty:8")
	r, _ := doc.Record(0)
	if v, _ := r.Value("a"); v != "1" {
		t.Errorf("document shares caller buffer: a=%q", v)
	}
}

// Every non-empty line yields exactly one record.
func TestParseRecordCountProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("ab:\t\n\r x")
	for i := 0; i < 500; i++ {
		n := rng.Intn(64)
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		doc, err := Parse(buf)
		if err != nil {
			t.Fatalf("Parse(%q): %v", buf, err)
		}
		want := 0
		for _, line := range bytes.Split(buf, []byte("\n")) {
			if len(line) > 0 {
				want++
			}
		}
		if doc.Len() != want {
			t.Fatalf("Parse(%q): %d records, want %d", buf, doc.Len(), want)
		}
	}
}

func TestParseCR(t *testing.T) {
	doc, err := ParseString("a:1\r\n\r\nb:2\r")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", doc.Len())
	}
	r, _ := doc.Record(0)
	if v, _ := r.Value("a"); v != "1\r" {
		t.Errorf("Value(a) = %q", v)
	}
	if r, _ := doc.Record(1); r.FieldCount() != 0 {
		t.Errorf("cr only line has %d fields", r.FieldCount())
	}

	doc, err = ParseString("a:1\r\n\r\nb:2\r", TrimCR(true))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]ir.Field{{{Label: "a", Value: "1"}}, {{Label: "b", Value: "2"}}}
	if diff := cmp.Diff(want, fieldsOf(doc)); diff != "" {
		t.Errorf("TrimCR mismatch (-want +got):\n%s", diff)
	}
	if r, _ := doc.Record(1); r.Line() != 3 {
		t.Errorf("expected line 3, got %d", r.Line())
	}
}

func TestParseStrict(t *testing.T) {
	_, err := ParseString("a:1\nb:2\tbad\n", Strict(true), WithFilename("x.log"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if !errors.Is(err, ErrMissingColon) || !errors.Is(err, ErrParse) {
		t.Errorf("unexpected error chain: %v", err)
	}
	if pe.Pos.Line != 2 || pe.Pos.Col != 5 {
		t.Errorf("unexpected position %s", pe.Pos)
	}
	if got := pe.Error(); got != "x.log:2:5: parse error: field without colon" {
		t.Errorf("Error() = %q", got)
	}
	doc, err := ParseString("a:1\n\nb:2\n", Strict(true))
	if err != nil {
		t.Fatalf("strict parse of valid input: %v", err)
	}
	if doc.Len() != 2 {
		t.Errorf("expected 2 records, got %d", doc.Len())
	}
}

func TestParseMaxBytes(t *testing.T) {
	in := []byte(strings.Repeat("a:1\n", 10))
	if _, err := Parse(in, MaxBytes(int64(len(in)))); err != nil {
		t.Errorf("at limit: %v", err)
	}
	_, err := Parse(in, MaxBytes(int64(len(in)-1)))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	_, err = ParseString(string(in), MaxBytes(3))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestParseLogsDropped(t *testing.T) {
	buf := &bytes.Buffer{}
	l := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := ParseString("a:1\tjunk", WithLogger(l), WithFilename("f")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"dropped field without colon", "line=1", "col=5", "segment=junk"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestParseErrorNoLocation(t *testing.T) {
	err := &ParseError{Err: ErrTooLarge}
	if err.Error() != ErrTooLarge.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
	err = &ParseError{Filename: "f", Err: ErrTooLarge}
	if err.Error() != fmt.Sprintf("f: %s", ErrTooLarge) {
		t.Errorf("Error() = %q", err.Error())
	}
}
