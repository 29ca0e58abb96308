// Package gpu describes the supported GPU configurations and the vendor
// library directories each of them needs at conversion time.
package gpu

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the GPU configuration selected on the command line.
type Type string

const (
	CUDA118 Type = "118"
	CUDA126 Type = "126"
	CUDA128 Type = "128"
	AMD     Type = "amd"
)

// ErrUnknownType is returned when a GPU tag is not one of Types.
var ErrUnknownType = errors.New("unknown GPU type")

// Types lists every supported GPU tag.
var Types = []Type{CUDA118, CUDA126, CUDA128, AMD}

// Parse validates a raw GPU tag.
func Parse(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownType, raw, strings.Join(Names(), ", "))
}

// Names returns the supported tags as strings.
func Names() []string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return names
}

// IsAMD reports whether t selects the AMD configuration.
func (t Type) IsAMD() bool {
	return t == AMD
}

// SupportsEngine reports whether TensorRT engines can be built with t.
func (t Type) SupportsEngine() bool {
	return !t.IsAMD()
}

// Device is the toolkit device selector: the first CUDA device, or the CPU on AMD.
func (t Type) Device() string {
	if t.IsAMD() {
		return "cpu"
	}
	return "0"
}

// LibraryDirName is the vendor library directory for t, or "" when none is needed.
func (t Type) LibraryDirName() string {
	switch t {
	case CUDA118:
		return "dlls_11.8"
	case CUDA126, CUDA128:
		return "dlls_12.x"
	default:
		return ""
	}
}
