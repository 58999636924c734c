package encode

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ltsv-format/go-ltsv/format"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/parse"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

const access = "host:example\tpath:/index\tua:curl\n" +
	"junk\n" +
	"host:other\tpath:/\thost:dup\n"

func mustParse(t *testing.T, s string) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func encodeString(t *testing.T, doc *ir.Document, opts ...EncodeOption) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := Encode(doc, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEncodeText(t *testing.T) {
	doc := mustParse(t, access)
	got := encodeString(t, doc, EncodeHeader(true))
	want := "--\n" +
		"host: example\npath: /index\nua: curl\n--\n" +
		"host: other\npath: /\nhost: other\n--\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTextDuplicateLabels(t *testing.T) {
	doc := mustParse(t, "a:1\tb:x\ta:2\n")
	if diff := cmp.Diff("a: 1\nb: x\na: 1\n--\n", encodeString(t, doc)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got := encodeString(t, doc, EncodeFormat(format.JSONFormat))
	if diff := cmp.Diff(`{"a":"1","b":"x"}`+"\n", got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoderFields(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf, EncodeFormat(format.JSONFormat))
	wrote, err := enc.Fields([]ir.Field{{Label: "label", Value: "a:b"}, {Label: "count", Value: "2"}})
	if err != nil {
		t.Fatal(err)
	}
	if !wrote {
		t.Error("nothing written")
	}
	if diff := cmp.Diff(`{"label":"a:b","count":"2"}`+"\n", buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	buf.Reset()
	enc = NewEncoder(buf, EncodeLabels("count", "x"), EncodeVerbose(true))
	if _, err := enc.Fields([]ir.Field{{Label: "count", Value: "1"}}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("count: 1\nx: (null)\n--\n", buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTextLabels(t *testing.T) {
	doc := mustParse(t, access)
	got := encodeString(t, doc, EncodeLabels("ua", "host"))
	want := "ua: curl\nhost: example\n--\n" +
		"host: other\n--\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTextVerbose(t *testing.T) {
	doc := mustParse(t, access)
	got := encodeString(t, doc, EncodeLabels("ua"), EncodeVerbose(true))
	want := "ua: curl\n--\n" +
		"ua: (null)\n--\n" +
		"ua: (null)\n--\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeColors(t *testing.T) {
	doc := mustParse(t, "a:50%\n")
	got := encodeString(t, doc, EncodeColors(NewColors()))
	for _, want := range []string{"\x1b[1;34ma\x1b[", "\x1b[32m50%\x1b["} {
		if !strings.Contains(got, want) {
			t.Errorf("colored output %q lacks %q", got, want)
		}
	}
	if stripped := ansi.ReplaceAllString(got, ""); stripped != "a: 50%\n--\n" {
		t.Errorf("stripped output %q", stripped)
	}
	plain := encodeString(t, doc, EncodeColors(nil))
	if plain != "a: 50%\n--\n" {
		t.Errorf("uncolored output %q", plain)
	}
}

func TestEncodeJSON(t *testing.T) {
	doc := mustParse(t, access)
	got := encodeString(t, doc, EncodeFormat(format.JSONFormat), EncodeHeader(true))
	want := `{"host":"example","path":"/index","ua":"curl"}` + "\n" +
		`{"host":"other","path":"/"}` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	got = encodeString(t, doc, EncodeFormat(format.JSONFormat), EncodeLabels("ua", "path"), EncodeVerbose(true))
	want = `{"ua":"curl","path":"/index"}` + "\n" +
		`{"ua":null,"path":null}` + "\n" +
		`{"ua":null,"path":"/"}` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verbose mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	doc := mustParse(t, "host:example\tua:curl\n")
	got := encodeString(t, doc, EncodeFormat(format.YAMLFormat), EncodeLabels("host", "missing"), EncodeVerbose(true))
	if !strings.HasPrefix(got, "---\n") {
		t.Errorf("expected document marker, got %q", got)
	}
	hi := strings.Index(got, "host: example")
	mi := strings.Index(got, "missing:")
	if hi < 0 || mi < 0 || mi < hi {
		t.Errorf("unexpected yaml %q", got)
	}
	if strings.Contains(got, "ua:") {
		t.Errorf("unselected label rendered: %q", got)
	}
}

func TestEncoderAcrossDocuments(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf, EncodeHeader(true))
	for _, s := range []string{"a:1\n", "b:2\n"} {
		if err := enc.Document(mustParse(t, s)); err != nil {
			t.Fatal(err)
		}
	}
	if got := buf.String(); got != "--\na: 1\n--\nb: 2\n--\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeRecordNothingSelected(t *testing.T) {
	doc := mustParse(t, "a:1\n")
	r, _ := doc.Record(0)
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf, EncodeLabels("b"))
	wrote, err := enc.Record(r)
	if err != nil {
		t.Fatal(err)
	}
	if wrote || buf.Len() != 0 {
		t.Errorf("wrote %q for a record without selected labels", buf.String())
	}
	if err := EncodeRecord(r, buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a: 1\n--\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := FormatFromOpts(EncodeFormat(format.YAMLFormat)); !f.IsYAML() {
		t.Errorf("got %s", f)
	}
}
