package gait

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownColumn  = errors.New("unknown column")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrEmptyInput     = errors.New("empty input")
	ErrNonFiniteInput = errors.New("non-finite input")
	ErrBadHeader      = errors.New("bad header")
	ErrBadSelection   = errors.New("bad selection")
	ErrBadDictionary  = errors.New("bad dictionary")
	ErrBadFilename    = errors.New("bad filename")
	ErrNoCycles       = errors.New("no gait cycles")
)

// ColumnError ties a failure to the column that caused it.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Column)
}

func (e *ColumnError) Unwrap() error { return e.Err }

func unknownColumn(name string) error {
	return &ColumnError{Column: name, Err: ErrUnknownColumn}
}

func typeMismatch(name string) error {
	return &ColumnError{Column: name, Err: ErrTypeMismatch}
}

// HeaderError reports a malformed two-row info header. Its message is the
// bare reason so it can be shown to users as-is.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string { return e.Reason }

func (e *HeaderError) Is(target error) bool { return target == ErrBadHeader }
