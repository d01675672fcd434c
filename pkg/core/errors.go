package core

import "errors"

// Common errors.
var (
	ErrNotFound       = errors.New("note not found")
	ErrCorruptData    = errors.New("corrupt data file")
	ErrIO             = errors.New("storage failure")
	ErrInvalidNote    = errors.New("invalid note")
	ErrInvalidPattern = errors.New("invalid tag pattern")
)
