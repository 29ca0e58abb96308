package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/xfs"
)

// Kind is the type of an input model file.
type Kind string

const (
	// KindCheckpoint is a PyTorch checkpoint (.pt).
	KindCheckpoint Kind = "checkpoint"

	// KindONNX is an ONNX graph (.onnx).
	KindONNX Kind = "onnx"
)

// File extensions understood by the converter.
const (
	ExtCheckpoint = ".pt"
	ExtONNX       = ".onnx"
	ExtEngine     = ".engine"
)

// Format is a conversion target.
type Format string

const (
	FormatONNX   Format = "onnx"
	FormatEngine Format = "engine"
)

// Label returns the menu label for the format.
func (f Format) Label() string {
	switch f {
	case FormatONNX:
		return "ONNX (.onnx)"
	case FormatEngine:
		return "TensorRT (.engine) - (Nvidia Only)"
	default:
		return string(f)
	}
}

// KindOf classifies path by its extension, case-insensitively.
func KindOf(path string) (Kind, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtCheckpoint:
		return KindCheckpoint, nil
	case ExtONNX:
		return KindONNX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, ext)
	}
}

// Targets returns the formats a model of kind k can be converted to, in menu order.
func (k Kind) Targets() []Format {
	switch k {
	case KindCheckpoint:
		return []Format{FormatONNX, FormatEngine}
	case KindONNX:
		return []Format{FormatEngine}
	default:
		return nil
	}
}

// EnginePath is the output path of an ONNX-to-engine conversion: same base name, engine extension.
func EnginePath(onnxPath string) string {
	return xfs.ReplaceExt(onnxPath, ExtEngine)
}
