package ir

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrClosed          = errors.New("document closed")
)
