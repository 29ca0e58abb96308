package backend

import "errors"

// Error definitions for the backend package.
var (
	ErrNotFound          = errors.New("no exporter registered for route")
	ErrAlreadyRegistered = errors.New("exporter is already registered for route")
	ErrBinaryNotFound    = errors.New("binary not found")
	ErrEmptyOutput       = errors.New("conversion failed to return a path")
)
