// Package app wires the converter together: environment, dependency probe,
// file selection and dispatch, and maps the outcome to an exit code.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/backend/ultralytics"
	"github.com/ekisa-team/yoloconv/internal/config"
	"github.com/ekisa-team/yoloconv/internal/convert"
	"github.com/ekisa-team/yoloconv/internal/gpu"
	"github.com/ekisa-team/yoloconv/internal/operator"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

const ackPrompt = "\nPress Enter to close..."

// errNoFileSelected ends the run cleanly when the file dialog is cancelled.
var errNoFileSelected = errors.New("no file selected")

// App runs a single conversion.
type App struct {
	op     operator.Operator
	cfg    *config.Config
	gpu    gpu.Type
	runner backend.CommandRunner
}

// Option configures an App.
type Option func(*App)

// WithRunner runs the interpreter through r instead of looking it up on PATH.
func WithRunner(r backend.CommandRunner) Option {
	return func(a *App) {
		a.runner = r
	}
}

// New creates an App. cfg must have its defaults applied.
func New(op operator.Operator, cfg *config.Config, t gpu.Type, opts ...Option) *App {
	a := &App{op: op, cfg: cfg, gpu: t}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs the conversion and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	clearScreen(a.op.Output())
	a.op.Say("%s", banner)

	out, err := a.run(ctx)
	return a.finish(ctx, out, err)
}

func (a *App) run(ctx context.Context) (string, error) {
	dirs := gpu.ResolveSearchDirs(a.gpu, a.cfg.LibrariesDir)

	// Unbuffered so toolkit progress reaches the console line by line.
	environ := append(gpu.ProcessEnviron(dirs), "PYTHONUNBUFFERED=1")

	python, err := a.interpreter(environ)
	if err != nil {
		return "", err
	}

	if err := a.checkDependencies(ctx, python); err != nil {
		return "", err
	}

	a.op.Say("\n[STEP 1] Please select your **.pt** or **.onnx** model file...")
	modelPath, err := a.op.SelectFile(ctx)
	if err != nil {
		return "", convert.Precondition(fmt.Errorf("select model file: %w", err))
	}
	if modelPath == "" {
		a.op.Say("No file selected. Exiting.")
		return "", errNoFileSelected
	}
	a.op.Say("Selected: %s", modelPath)

	registry := backend.NewRegistry()
	if err := ultralytics.Register(registry, python, a.op.Output()); err != nil {
		return "", err
	}

	d := convert.NewDispatcher(a.op, registry, convert.Options{
		GPU:              a.gpu,
		LenientPrecision: a.cfg.LenientPrecision(),
	})
	return d.Dispatch(ctx, modelPath)
}

func (a *App) interpreter(environ []string) (*backend.Executor, error) {
	timeout, err := a.cfg.Timeout()
	if err != nil {
		return nil, convert.Precondition(err)
	}

	if a.runner != nil {
		return backend.NewExecutorWithRunner(a.cfg.Python, timeout, environ, a.runner), nil
	}

	executor, err := backend.NewExecutor(a.cfg.Python, timeout, environ)
	if err != nil {
		a.op.Say("\n[CRITICAL ERROR] Python interpreter not found: %s", a.cfg.Python)
		a.op.Say("Install Python or set %q in the config file.", "python")
		return nil, convert.Precondition(fmt.Errorf("%w: %w", convert.ErrInterpreterMissing, err))
	}

	slog.Debug("Using interpreter", "path", executor.BinaryPath())
	return executor, nil
}

func (a *App) checkDependencies(ctx context.Context, python ultralytics.Interpreter) error {
	missing := ultralytics.Missing(ultralytics.NewProber(python).Probe(ctx))
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	a.op.Say("\n%s", rule("!", 40))
	a.op.Say(" [CRITICAL ERROR] MISSING LIBRARIES")
	a.op.Say("%s", rule("!", 40))
	a.op.Say("This converter requires the following installed on your system:")
	for _, name := range missing {
		a.op.Say(" - %s", name)
	}
	a.op.Say("\nPlease run this command in your terminal:")
	a.op.Say("%s", ultralytics.InstallCommand(missing))

	return convert.Precondition(fmt.Errorf("%w: %v", convert.ErrMissingDependency, missing))
}

func (a *App) finish(ctx context.Context, out string, err error) int {
	switch {
	case err == nil:
		a.op.Say("\n%s", rule("=", 30))
		a.op.Say("       CONVERSION SUCCESS")
		a.op.Say("%s", rule("=", 30))
		a.op.Say("Saved to: %s", out)
		a.op.Say("Made with <3 by classic")
		slog.Info("Conversion finished", "output", out)
		return ExitOK

	case errors.Is(err, errNoFileSelected):
		return ExitOK

	case ctx.Err() != nil:
		slog.Warn("Conversion interrupted", "error", err)
		return ExitInterrupted

	case convert.IsPrecondition(err):
		slog.Error("Conversion not started", "error", err)
		a.op.WaitForAck(ackPrompt)
		return ExitFailure

	case convert.IsExport(err):
		slog.Error("Conversion failed", "error", err)
		a.op.Say("\n[ERROR] Conversion Failed.")
		a.op.Say("Details: %v", err)
		if derr := a.op.ShowError("Error", "Conversion failed:\n"+err.Error()); derr != nil {
			slog.Warn("Failed to show error dialog", "error", derr)
		}
		return ExitFailure

	default:
		slog.Error("Unexpected error", "error", err)
		a.op.Say("\n[ERROR] %v", err)
		return ExitFailure
	}
}
