// Package ir holds the in-memory representation of parsed LTSV text.
//
// A [Document] owns one contiguous copy of the parsed bytes together with
// offset tables for its records and fields.  A [Record] is a small handle
// into those tables, so every label and value a Document hands out comes
// from storage it alone owns.  [Document.Close] releases that storage in one
// step; handles obtained earlier then behave as empty records.
//
// # Usage
//
//	doc, err := parse.ParseFile("access.log")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//	for _, rec := range doc.Records() {
//	    if v, ok := rec.Value("status"); ok {
//	        fmt.Println(v)
//	    }
//	}
//
// # Duplicate labels
//
// A line may repeat a label.  Positional access ([Record.Label],
// [Record.ValueAt]) sees every occurrence; keyed access ([Record.Value])
// sees the first.  Both read the same ordered field table.
//
// # Related Packages
//
//   - github.com/signadot/ltsv-format/go-ltsv/parse - Parse LTSV into a Document
//   - github.com/signadot/ltsv-format/go-ltsv/encode - Render records as text
package ir
