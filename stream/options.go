package stream

import "github.com/signadot/ltsv-format/go-ltsv/parse"

// DefaultChunkSize is the read size used when none is given.
const DefaultChunkSize = 4096

// StreamOption configures a Decoder.
type StreamOption func(*streamOpts)

type streamOpts struct {
	chunkSize int
	name      string
	parseOpts []parse.ParseOption
}

// ChunkSize sets the maximum number of bytes read per chunk.  n <= 0
// selects DefaultChunkSize.
func ChunkSize(n int) StreamOption {
	return func(opts *streamOpts) {
		opts.chunkSize = n
	}
}

// WithName names the input in parse errors.
func WithName(name string) StreamOption {
	return func(opts *streamOpts) {
		opts.name = name
	}
}

// WithParseOptions passes options to the parse of every chunk.
func WithParseOptions(po ...parse.ParseOption) StreamOption {
	return func(opts *streamOpts) {
		opts.parseOpts = append(opts.parseOpts, po...)
	}
}
