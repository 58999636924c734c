// Package parse parses LTSV text into an [ir.Document].
//
// # Usage
//
//	// Parse a buffer
//	doc, err := parse.Parse([]byte("host:127.0.0.1\tstatus:200\n"))
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	// Parse a file; gzip and zstd files are decompressed transparently
//	doc, err := parse.ParseFile("access.log.gz")
//
//	// Parse with options
//	doc, err := parse.Parse(data, parse.WithFilename("access.log"), parse.Strict(true))
//
// Parsing does not stop at malformed input.  A tab separated segment
// without a colon is dropped and a line without any field becomes an empty
// record.  Only an input larger than [MaxBytes], an unreadable source, or a
// dropped segment under [Strict] fails the whole call.
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/ir - Document and Record
//   - github.com/signadot/ltsv-format/go-ltsv/token - Line and field scanning
//   - github.com/signadot/ltsv-format/go-ltsv/stream - Chunked input
package parse
