package parse

import (
	"iter"
	"log/slog"

	"github.com/signadot/ltsv-format/go-ltsv/token"
)

type parseOpts struct {
	filename   string
	maxBytes   int64
	strict     bool
	trimCR     bool
	decompress bool
	logger     *slog.Logger
}

type ParseOption func(*parseOpts)

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{decompress: true}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

// WithFilename names the input in errors and log messages.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// MaxBytes bounds the size of the input, after decompression.  n <= 0
// means no bound.
func MaxBytes(n int64) ParseOption {
	return func(o *parseOpts) { o.maxBytes = n }
}

// Strict makes a segment without a colon fail the parse instead of being
// dropped.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}

// TrimCR treats a '\r' before each newline as part of the line
// terminator, for CRLF input.  It is off by default: a '\r' is then an
// ordinary byte of the value it ends.
func TrimCR(v bool) ParseOption {
	return func(o *parseOpts) { o.trimCR = v }
}

// Decompress controls gzip and zstd detection for files and readers.  It
// is on by default.
func Decompress(v bool) ParseOption {
	return func(o *parseOpts) { o.decompress = v }
}

// WithLogger logs dropped segments at debug level.
func WithLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.logger = l }
}

func (o *parseOpts) lines(d []byte) iter.Seq[token.Line] {
	if o.trimCR {
		return token.LinesCRLF(d)
	}
	return token.Lines(d)
}

func (o *parseOpts) checkSize(n int64) error {
	if o.maxBytes > 0 && n > o.maxBytes {
		return &ParseError{Filename: o.filename, Err: ErrTooLarge}
	}
	return nil
}
