// Package format names the output formats records can be rendered in.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	err = encode.Encode(doc, os.Stdout, encode.EncodeFormat(f))
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/encode - Render records
package format
