package model

import "errors"

// Error definitions for the model package.
var (
	ErrUnsupportedKind = errors.New("unsupported model type")
)
