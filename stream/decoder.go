package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/ltsv-format/go-ltsv/debug"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/parse"
)

// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
const maxEmptyReads = 100

// Decoder reads chunks from an io.Reader and parses each one.
type Decoder struct {
	r      io.Reader
	buf    []byte
	opts   []parse.ParseOption
	chunks int
	err    error
}

func NewDecoder(r io.Reader, opts ...StreamOption) *Decoder {
	sOpts := &streamOpts{}
	for _, opt := range opts {
		opt(sOpts)
	}
	if sOpts.chunkSize <= 0 {
		sOpts.chunkSize = DefaultChunkSize
	}
	var pOpts []parse.ParseOption
	if sOpts.name != "" {
		pOpts = append(pOpts, parse.WithFilename(sOpts.name))
	}
	return &Decoder{
		r:    r,
		buf:  make([]byte, sOpts.chunkSize),
		opts: append(pOpts, sOpts.parseOpts...),
	}
}

// Chunks returns the number of chunks read so far.
func (d *Decoder) Chunks() int {
	return d.chunks
}

// Next reads one chunk and parses it.  It returns io.EOF once the reader
// is exhausted.  Read failures are reported as parse.ErrIO.
func (d *Decoder) Next() (*ir.Document, error) {
	if d.err != nil {
		return nil, d.err
	}
	for i := 0; i < maxEmptyReads; i++ {
		n, err := d.r.Read(d.buf)
		if err != nil {
			d.err = d.readErr(err)
		}
		if n > 0 {
			d.chunks++
			if debug.Stream() {
				debug.Logf("chunk %d: %d bytes\n", d.chunks, n)
			}
			doc, perr := parse.Parse(d.buf[:n], d.opts...)
			if perr != nil {
				return nil, fmt.Errorf("chunk %d: %w", d.chunks, perr)
			}
			return doc, nil
		}
		if d.err != nil {
			return nil, d.err
		}
	}
	d.err = fmt.Errorf("%w: %w", parse.ErrIO, io.ErrNoProgress)
	return nil, d.err
}

func (d *Decoder) readErr(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("%w: read chunk %d: %w", parse.ErrIO, d.chunks+1, err)
}

// Each calls fn with every chunk's Document until the input is exhausted,
// the parse of a chunk fails, fn returns an error, or ctx is done.  ctx is
// checked between chunks only.  Documents are closed after fn returns.
func (d *Decoder) Each(ctx context.Context, fn func(*ir.Document) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := d.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		err = fn(doc)
		doc.Close()
		if err != nil {
			return err
		}
	}
}
