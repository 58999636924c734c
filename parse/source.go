package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/signadot/ltsv-format/go-ltsv/ir"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Source is something a Document can be opened from.
type Source interface {
	open(o *parseOpts) (*ir.Document, error)
}

// FileSource names a file to read whole.
type FileSource string

// BytesSource is an in-memory buffer.
type BytesSource []byte

// ReaderSource is a reader consumed to EOF.
type ReaderSource struct {
	io.Reader
}

func (s FileSource) open(o *parseOpts) (*ir.Document, error) {
	return parseFile(string(s), o)
}

func (s BytesSource) open(o *parseOpts) (*ir.Document, error) {
	if err := o.checkSize(int64(len(s))); err != nil {
		return nil, err
	}
	return parseOwned(bytes.Clone(s), o)
}

func (s ReaderSource) open(o *parseOpts) (*ir.Document, error) {
	return parseReader(s.Reader, o)
}

// Open parses src.  The caller owns the result and should Close it.
func Open(src Source, opts ...ParseOption) (*ir.Document, error) {
	return src.open(newParseOpts(opts))
}

// ParseFile reads the file at path and parses it.  Failure to open or read
// the file is reported as ErrNotFound, ErrPermission or ErrIO; an empty file
// gives an empty Document.
func ParseFile(path string, opts ...ParseOption) (*ir.Document, error) {
	return parseFile(path, newParseOpts(opts))
}

func parseFile(path string, o *parseOpts) (*ir.Document, error) {
	if o.filename == "" {
		o.filename = path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, sourceErr(path, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, sourceErr(path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	return parseReader(f, o)
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Document, error) {
	return parseReader(r, newParseOpts(opts))
}

func parseReader(r io.Reader, o *parseOpts) (*ir.Document, error) {
	name := o.filename
	if name == "" {
		name = "<reader>"
	}
	if o.decompress {
		dr, closer, err := decompressor(r)
		if err != nil {
			return nil, sourceErr(name, err)
		}
		defer closer()
		r = dr
	}
	if o.maxBytes > 0 {
		r = io.LimitReader(r, o.maxBytes+1)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, sourceErr(name, err)
	}
	if err := o.checkSize(int64(len(d))); err != nil {
		return nil, err
	}
	return parseOwned(d, o)
}

// decompressor sniffs r for gzip or zstd framing.
func decompressor(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	}
	return br, func() {}, nil
}
