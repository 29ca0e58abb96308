package convert

import (
	"errors"
	"fmt"
)

// Error definitions for the convert package.
var (
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrInvalidPrecision   = errors.New("invalid precision choice")
	ErrEngineUnsupported  = errors.New("AMD cannot export to TensorRT")
	ErrMissingDependency  = errors.New("missing required libraries")
	ErrInterpreterMissing = errors.New("python interpreter not found")
)

// PreconditionError is an unmet precondition: the run stops before or instead
// of exporting, and the operator must start over.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string { return e.Err.Error() }

func (e *PreconditionError) Unwrap() error { return e.Err }

// Precondition wraps err as a PreconditionError.
func Precondition(err error) error {
	return &PreconditionError{Err: err}
}

// ExportError is a failure raised by the toolkit during export.
type ExportError struct {
	Exporter string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Exporter, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsPrecondition reports whether err is an unmet precondition.
func IsPrecondition(err error) bool {
	var p *PreconditionError
	return errors.As(err, &p)
}

// IsExport reports whether err is an export failure.
func IsExport(err error) bool {
	var e *ExportError
	return errors.As(err, &e)
}
