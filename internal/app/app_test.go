package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/yoloconv/internal/config"
	"github.com/ekisa-team/yoloconv/internal/gpu"
	"github.com/ekisa-team/yoloconv/internal/operator/operatortest"
)

// fakeRunner stands in for the Python interpreter. Run answers import probes,
// Start answers export scripts.
type fakeRunner struct {
	missing   []string
	exportOut []string
	exportErr error
	stderr    string

	probes  []string
	exports [][]string
	envs    [][]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args, env []string, _ io.Reader) ([]byte, []byte, error) {
	f.envs = append(f.envs, env)
	name := args[len(args)-1]
	f.probes = append(f.probes, name)
	if slices.Contains(f.missing, name) {
		return nil, []byte("ModuleNotFoundError: No module named '" + name + "'"), errors.New("exit status 1")
	}
	return []byte("1.0.0\n"), nil, nil
}

func (f *fakeRunner) Start(_ context.Context, _ string, args, env []string, _ io.Reader) (io.ReadCloser, io.ReadCloser, func() error, error) {
	f.envs = append(f.envs, env)
	f.exports = append(f.exports, args)
	stdout := io.NopCloser(strings.NewReader(strings.Join(f.exportOut, "\n") + "\n"))
	stderr := io.NopCloser(strings.NewReader(f.stderr))
	return stdout, stderr, func() error { return f.exportErr }, nil
}

func testConfig() *config.Config {
	return &config.Config{Python: "python3", LibrariesDir: "/nonexistent"}
}

func TestRun_Success(t *testing.T) {
	op := operatortest.New("1")
	op.File = "/models/yolo.pt"
	runner := &fakeRunner{exportOut: []string{"Ultralytics 8.3.0", "__YOLOCONV_RESULT__=/models/yolo.onnx"}}

	code := New(op, testConfig(), gpu.CUDA126, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, []string{"torch", "ultralytics", "onnxruntime"}, runner.probes)
	require.Len(t, runner.exports, 1)

	transcript := op.Transcript()
	assert.Contains(t, transcript, "EASY Model Converter")
	assert.Contains(t, transcript, "Selected: /models/yolo.pt")
	assert.Contains(t, transcript, "Ultralytics 8.3.0")
	assert.Contains(t, transcript, "CONVERSION SUCCESS")
	assert.Contains(t, transcript, "Saved to: /models/yolo.onnx")
	assert.NotContains(t, transcript, "__YOLOCONV_RESULT__")
	assert.Empty(t, op.ErrorDialogs)
	assert.Zero(t, op.Acks)
}

func TestRun_Cancel(t *testing.T) {
	op := operatortest.New()
	runner := &fakeRunner{}

	code := New(op, testConfig(), gpu.CUDA118, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, 1, op.FileDialogs)
	assert.Contains(t, op.Transcript(), "No file selected. Exiting.")
	assert.Empty(t, op.ErrorDialogs)
	assert.Empty(t, op.Prompts)
	assert.Empty(t, runner.exports)
}

func TestRun_MissingDependencies(t *testing.T) {
	op := operatortest.New()
	op.File = "/models/yolo.pt"
	runner := &fakeRunner{missing: []string{"torch", "onnxruntime"}}

	code := New(op, testConfig(), gpu.CUDA126, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, 1, op.Acks)
	assert.Zero(t, op.FileDialogs, "file dialog must not open")

	transcript := op.Transcript()
	assert.Contains(t, transcript, "MISSING LIBRARIES")
	assert.Contains(t, transcript, " - torch")
	assert.Contains(t, transcript, " - onnxruntime")
	assert.Contains(t, transcript, "pip install torch onnxruntime\n")
	assert.NotContains(t, transcript, " - ultralytics")
}

func TestRun_ExportFailure(t *testing.T) {
	op := operatortest.New("2", "1")
	op.File = "/models/yolo.pt"
	runner := &fakeRunner{
		exportOut: []string{"Loading weights"},
		exportErr: errors.New("exit status 1"),
		stderr:    "RuntimeError: TensorRT not found",
	}

	code := New(op, testConfig(), gpu.CUDA128, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitFailure, code)
	require.Len(t, op.ErrorDialogs, 1)
	assert.Equal(t, "Error", op.ErrorDialogs[0].Title)
	assert.True(t, strings.HasPrefix(op.ErrorDialogs[0].Message, "Conversion failed:\n"))
	assert.Contains(t, op.ErrorDialogs[0].Message, "TensorRT not found")

	transcript := op.Transcript()
	assert.Contains(t, transcript, "[ERROR] Conversion Failed.")
	assert.Contains(t, transcript, "Details: ")
	assert.NotContains(t, transcript, "CONVERSION SUCCESS")
	assert.Zero(t, op.Acks)
}

func TestRun_AMDEngineRefused(t *testing.T) {
	op := operatortest.New("1")
	op.File = "/models/yolo.onnx"
	runner := &fakeRunner{}

	code := New(op, testConfig(), gpu.AMD, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, 1, op.Acks)
	assert.Empty(t, runner.exports)
	assert.Empty(t, op.ErrorDialogs)
	assert.Contains(t, op.Transcript(), "Press Enter to close...")
}

func TestRun_SelectFileError(t *testing.T) {
	op := operatortest.New()
	op.FileErr = errors.New("no display")

	code := New(op, testConfig(), gpu.CUDA126, WithRunner(&fakeRunner{})).Run(context.Background())

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, 1, op.Acks)
}

func TestRun_InvalidTimeout(t *testing.T) {
	op := operatortest.New()
	cfg := testConfig()
	cfg.ExportTimeout = "soon"
	runner := &fakeRunner{}

	code := New(op, cfg, gpu.CUDA126, WithRunner(runner)).Run(context.Background())

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, runner.probes)
}

func TestRun_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	op := operatortest.New()
	op.File = "/models/yolo.pt"

	code := New(op, testConfig(), gpu.CUDA126, WithRunner(&fakeRunner{})).Run(ctx)

	assert.Equal(t, ExitInterrupted, code)
	assert.Zero(t, op.Acks)
	assert.Zero(t, op.FileDialogs)
}

func TestRun_ChildEnvironment(t *testing.T) {
	base := t.TempDir()
	dlls := filepath.Join(base, "dlls_12.x")
	require.NoError(t, os.Mkdir(dlls, 0o755))

	op := operatortest.New("1")
	op.File = "/models/yolo.pt"
	runner := &fakeRunner{exportOut: []string{"__YOLOCONV_RESULT__=/models/yolo.onnx"}}
	cfg := testConfig()
	cfg.LibrariesDir = base

	code := New(op, cfg, gpu.CUDA128, WithRunner(runner)).Run(context.Background())

	require.Equal(t, ExitOK, code)
	require.Len(t, runner.envs, 4, "three probes and one export")
	for _, env := range runner.envs {
		assert.Contains(t, env, "YOLOCONV_DLL_DIRS="+dlls)
		assert.Contains(t, env, "PYTHONUNBUFFERED=1")
	}
}

func TestRun_AMDHasNoDLLDirs(t *testing.T) {
	op := operatortest.New()
	runner := &fakeRunner{}

	New(op, testConfig(), gpu.AMD, WithRunner(runner)).Run(context.Background())

	require.NotEmpty(t, runner.envs)
	for _, env := range runner.envs {
		for _, kv := range env {
			assert.False(t, strings.HasPrefix(kv, "YOLOCONV_DLL_DIRS="), kv)
		}
	}
}
