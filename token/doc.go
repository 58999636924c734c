// Package token provides the line and field scanner for LTSV text.
//
// [Lines] splits a buffer into non-empty lines ([LinesCRLF] also drops a
// '\r' before each newline) and [Fields] runs the
// per-line label/value state machine over one of them, reporting byte
// offsets into the original buffer. Neither function mutates its input.
package token
