package parse

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/signadot/ltsv-format/go-ltsv/token"
)

var (
	ErrParse        = errors.New("parse error")
	ErrTooLarge     = fmt.Errorf("%w: input too large", ErrParse)
	ErrMissingColon = fmt.Errorf("%w: field without colon", ErrParse)

	ErrNotFound   = errors.New("source not found")
	ErrPermission = errors.New("source permission denied")
	ErrIO         = errors.New("source i/o error")
)

// ParseError is a failure of a whole parse call.
type ParseError struct {
	Filename string
	// Pos is the zero Pos when the error is not tied to a location.
	Pos token.Pos
	Err error
}

func (e *ParseError) Error() string {
	loc := e.Filename
	if e.Pos.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += e.Pos.String()
	}
	if loc == "" {
		return e.Err.Error()
	}
	return loc + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func sourceErr(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrIO, name, err)
	}
}
