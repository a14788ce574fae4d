package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where in the render sequence a failure happened.
type ErrorKind string

const (
	ErrConnection ErrorKind = "connection" // unreachable host, bad credentials
	ErrQuery      ErrorKind = "query"      // missing table, failed SELECT
	ErrSchema     ErrorKind = "schema"     // expected column absent after join
	ErrRender     ErrorKind = "render"     // chart drawing or file write failed
)

// StageError tags an underlying error with its kind. The HTTP layer still
// collapses every kind into one 500; the kind only reaches logs and the
// render history.
type StageError struct {
	Kind ErrorKind
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with a kind
func NewStageError(kind ErrorKind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to render for
// untagged errors.
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrRender
}
