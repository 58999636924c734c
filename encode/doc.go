// Package encode renders LTSV records to a writer.
//
// # Usage
//
//	// Render every field of every record
//	err := encode.Encode(doc, os.Stdout)
//
//	// Render selected labels in color, including missing ones
//	err := encode.Encode(doc, os.Stdout,
//	    encode.EncodeLabels("host", "status"),
//	    encode.EncodeVerbose(true),
//	    encode.EncodeColors(encode.NewColors()))
//
//	// JSON lines
//	err := encode.Encode(doc, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// Text output prints one "label: value" line per field and a "--" line
// after every record that printed something.
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/ir - Document and Record
//   - github.com/signadot/ltsv-format/go-ltsv/format - Output formats
package encode
