package parse

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sample = "host:127.0.0.1\tstatus:200\n\nhost:10.0.0.1\tstatus:404\n"

func writeFile(t *testing.T, name string, d []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, d, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func checkSample(t *testing.T, name string, src Source) {
	t.Helper()
	doc, err := Open(src)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	defer doc.Close()
	if doc.Len() != 2 {
		t.Fatalf("%s: expected 2 records, got %d", name, doc.Len())
	}
	r, _ := doc.Record(1)
	if v, _ := r.Value("status"); v != "404" {
		t.Errorf("%s: status = %q", name, v)
	}
	if r.Line() != 3 {
		t.Errorf("%s: line = %d", name, r.Line())
	}
}

func TestParseFile(t *testing.T) {
	p := writeFile(t, "access.log", []byte(sample))
	doc, err := ParseFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Source() != p {
		t.Errorf("Source() = %q", doc.Source())
	}
	checkSample(t, "file", FileSource(p))
}

func TestParseFileEmpty(t *testing.T) {
	p := writeFile(t, "empty.log", nil)
	doc, err := ParseFile(p)
	if err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("expected empty document, got %d records", doc.Len())
	}
}

func TestParseFileNotFound(t *testing.T) {
	doc, err := ParseFile("/nonexistent/ltsv/access.log")
	if doc != nil {
		t.Error("expected no document")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected underlying fs.ErrNotExist, got %v", err)
	}
}

func TestParseFilePermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	p := writeFile(t, "secret.log", []byte(sample))
	if err := os.Chmod(p, 0); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(p)
	if !errors.Is(err, ErrPermission) {
		t.Errorf("expected ErrPermission, got %v", err)
	}
}

func TestParseFileDirectory(t *testing.T) {
	_, err := ParseFile(t.TempDir())
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestParseFileGzip(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := gzip.NewWriter(buf)
	if _, err := zw.Write([]byte(sample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, "access.log.gz", buf.Bytes())
	checkSample(t, "gzip", FileSource(p))
}

func TestParseFileZstd(t *testing.T) {
	buf := &bytes.Buffer{}
	zw, err := zstd.NewWriter(buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Write([]byte(sample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	checkSample(t, "zstd", ReaderSource{bytes.NewReader(buf.Bytes())})
}

func TestParseReaderNoDecompress(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := gzip.NewWriter(buf)
	zw.Write([]byte(sample))
	zw.Close()
	doc, err := ParseReader(bytes.NewReader(buf.Bytes()), Decompress(false))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range doc.Records() {
		if r.Has("status") {
			t.Fatalf("compressed bytes parsed as text: %v", r)
		}
	}
}

func TestParseReaderCorruptGzip(t *testing.T) {
	_, err := ParseReader(bytes.NewReader([]byte{0x1f, 0x8b, 0, 1, 2}))
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestParseReaderMaxBytes(t *testing.T) {
	_, err := ParseReader(strings.NewReader(sample), MaxBytes(10))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestOpenBytes(t *testing.T) {
	checkSample(t, "bytes", BytesSource(sample))
	checkSample(t, "reader", ReaderSource{strings.NewReader(sample)})
}
