package ultralytics

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/model"
)

// ModelExporter runs the toolkit's generic model export on a checkpoint.
type ModelExporter struct {
	python Interpreter
	out    io.Writer
}

// NewModelExporter creates a ModelExporter relaying toolkit output to out.
func NewModelExporter(python Interpreter, out io.Writer) *ModelExporter {
	return &ModelExporter{python: python, out: out}
}

// Name implements backend.Exporter.
func (e *ModelExporter) Name() string {
	return "ultralytics.export"
}

// Export implements backend.Exporter. Simplification is always on and dynamic shapes are off.
func (e *ModelExporter) Export(ctx context.Context, req *backend.Request) (string, error) {
	mode := ""
	if req.Format == model.FormatEngine {
		mode = " " + req.PrecisionLabel()
	}

	fmt.Fprintln(e.out, "\n[INFO] Loading PyTorch Model...")
	fmt.Fprintf(e.out, "[INFO] Starting Export to %s%s...\n", strings.ToUpper(string(req.Format)), mode)

	out, err := runScript(ctx, e.python, e.out, exportScript,
		req.ModelPath, string(req.Format), req.Device, boolArg(req.Half))
	if err != nil {
		return "", fmt.Errorf("export %s to %s: %w", req.ModelPath, req.Format, err)
	}
	if out == "" {
		return "", backend.ErrEmptyOutput
	}

	return out, nil
}
