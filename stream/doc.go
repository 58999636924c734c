// Package stream decodes unbounded LTSV input, such as a pipe on stdin, in
// bounded chunks.
//
// Every call to [Decoder.Next] performs one Read of at most the configured
// chunk size and parses exactly the bytes it returned into its own
// [ir.Document].  Records are not joined across chunks: a line that
// straddles two reads is parsed as two partial lines.  Callers that need
// whole lines should use a chunk size larger than their longest line or
// parse the input whole with parse.ParseReader.
//
// # Example
//
//	dec := stream.NewDecoder(os.Stdin, stream.ChunkSize(64<<10))
//	err := dec.Each(ctx, func(doc *ir.Document) error {
//	    return enc.Document(doc)
//	})
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/parse - Whole buffer parsing
package stream
