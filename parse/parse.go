package parse

import (
	"bytes"
	"log/slog"

	"github.com/signadot/ltsv-format/go-ltsv/debug"
	"github.com/signadot/ltsv-format/go-ltsv/ir"
	"github.com/signadot/ltsv-format/go-ltsv/token"
)

// Parse parses d into a Document with one record per non-empty line.  The
// Document keeps its own copy of d.  An empty d gives an empty Document.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := newParseOpts(opts)
	if err := pOpts.checkSize(int64(len(d))); err != nil {
		return nil, err
	}
	return parseOwned(bytes.Clone(d), pOpts)
}

func ParseString(s string, opts ...ParseOption) (*ir.Document, error) {
	pOpts := newParseOpts(opts)
	if err := pOpts.checkSize(int64(len(s))); err != nil {
		return nil, err
	}
	return parseOwned([]byte(s), pOpts)
}

// parseOwned parses d, which becomes the storage of the result.
func parseOwned(d []byte, opts *parseOpts) (*ir.Document, error) {
	b := ir.NewBuilder(d).WithSource(opts.filename)
	var err error
	for l := range opts.lines(d) {
		b.Begin(l.Start, l.End, l.No)
		token.Fields(d, l, func(s token.Span) {
			b.Add(s.Start, s.Colon, s.End)
		}, func(s token.Segment) {
			if opts.strict && err == nil {
				err = &ParseError{
					Filename: opts.filename,
					Pos:      token.PosOf(l, s.Start),
					Err:      ErrMissingColon,
				}
			}
			opts.dropped(d, l, s)
		})
		b.End()
		if err != nil {
			return nil, err
		}
	}
	doc := b.Document()
	if debug.Parse() {
		debug.Logf("parsed %q: %d bytes %d records\n", opts.filename, len(d), doc.Len())
	}
	return doc, nil
}

func (o *parseOpts) dropped(d []byte, l token.Line, s token.Segment) {
	if debug.Parse() {
		debug.Logf("drop %s:%s %q\n", o.filename, token.PosOf(l, s.Start), s.Bytes(d))
	}
	if o.logger == nil {
		return
	}
	o.logger.Debug("dropped field without colon",
		slog.String("file", o.filename),
		slog.Int("line", l.No),
		slog.Int("col", s.Start-l.Start+1),
		slog.String("segment", string(s.Bytes(d))))
}
