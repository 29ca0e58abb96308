package backend

import (
	"context"
	"fmt"

	"github.com/ekisa-team/yoloconv/internal/model"
)

// Route identifies a conversion by input kind and target format.
type Route struct {
	Kind   model.Kind
	Format model.Format
}

func (r Route) String() string {
	return fmt.Sprintf("%s->%s", r.Kind, r.Format)
}

// Exporter defines the core interface for the export adapters.
type Exporter interface {
	// Name returns the adapter identifier.
	Name() string

	// Export runs one conversion and returns the path of the produced file.
	Export(ctx context.Context, req *Request) (string, error)
}

// Request encapsulates all parameters for an export call.
type Request struct {
	// ModelPath is the path to the input model file.
	ModelPath string

	// Format is the target format.
	Format model.Format

	// Half requests FP16 precision.
	Half bool

	// Device is the toolkit device selector ("0" or "cpu").
	Device string
}

// PrecisionLabel returns "FP16" or "FP32".
func (r *Request) PrecisionLabel() string {
	if r.Half {
		return "FP16"
	}
	return "FP32"
}
