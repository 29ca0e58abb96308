package ultralytics

import (
	"context"
	"fmt"
	"io"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/model"
)

// EngineConverter builds a TensorRT engine from an ONNX graph.
type EngineConverter struct {
	python   Interpreter
	resolver *Resolver
	out      io.Writer
}

// NewEngineConverter creates an EngineConverter that locates onnx2engine via OnnxToEngineCandidates.
func NewEngineConverter(python Interpreter, out io.Writer) *EngineConverter {
	return &EngineConverter{
		python:   python,
		resolver: NewResolver(python, OnnxToEngineCandidates),
		out:      out,
	}
}

// Name implements backend.Exporter.
func (c *EngineConverter) Name() string {
	return "ultralytics.onnx2engine"
}

// Export implements backend.Exporter. The engine is written next to the ONNX
// file with the same base name and always uses static shapes.
func (c *EngineConverter) Export(ctx context.Context, req *backend.Request) (string, error) {
	fmt.Fprintln(c.out, "\n[INFO] Starting ONNX to TensorRT (.engine) conversion...")

	entry, err := c.resolver.Resolve(ctx)
	if err != nil {
		fmt.Fprintln(c.out, "[ERROR] Could not find 'onnx2engine'. Update Ultralytics: pip install -U ultralytics")
		return "", fmt.Errorf("toolkit version incompatible: %w", err)
	}

	enginePath := model.EnginePath(req.ModelPath)
	mode := "FP32 (Full)"
	if req.Half {
		mode = "FP16 (Half)"
	}
	fmt.Fprintf(c.out, "[INFO] Converting in STATIC mode (dynamic=False) with precision: %s...\n", mode)

	if _, err := runScript(ctx, c.python, c.out, onnxToEngineScript,
		entry.Module, req.ModelPath, enginePath, boolArg(req.Half)); err != nil {
		return "", fmt.Errorf("convert %s to engine: %w", req.ModelPath, err)
	}

	return enginePath, nil
}
