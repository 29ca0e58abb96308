// Package convert implements the interactive conversion flow: it picks the
// target format and precision for a model file and hands the job to exactly
// one export adapter.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/gpu"
	"github.com/ekisa-team/yoloconv/internal/model"
	"github.com/ekisa-team/yoloconv/internal/operator"
)

// ExporterSource looks up the adapter for a route. *backend.Registry satisfies it.
type ExporterSource interface {
	Get(route backend.Route) (backend.Exporter, error)
}

// Options configures a Dispatcher.
type Options struct {
	// GPU is the configuration selected at start-up.
	GPU gpu.Type

	// LenientPrecision treats any precision input other than the FP32
	// selector as FP16 instead of rejecting it.
	LenientPrecision bool
}

// Dispatcher drives one conversion through its states.
type Dispatcher struct {
	op        operator.Operator
	exporters ExporterSource
	opts      Options
	state     State
}

// NewDispatcher creates a Dispatcher in StateAwaitInput.
func NewDispatcher(op operator.Operator, exporters ExporterSource, opts Options) *Dispatcher {
	return &Dispatcher{
		op:        op,
		exporters: exporters,
		opts:      opts,
		state:     StateAwaitInput,
	}
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

func (d *Dispatcher) transition(next State) {
	slog.Debug("Conversion state changed", "from", d.state, "to", next)
	d.state = next
}

func (d *Dispatcher) fail(err error) (string, error) {
	d.transition(StateFailed)
	return "", err
}

// Dispatch converts modelPath and returns the output path. Operator and
// toolkit errors are a *PreconditionError or an *ExportError; anything else
// is a wiring fault.
func (d *Dispatcher) Dispatch(ctx context.Context, modelPath string) (string, error) {
	if d.state != StateAwaitInput {
		return "", fmt.Errorf("dispatcher already used (state %s)", d.state)
	}

	kind, err := model.KindOf(modelPath)
	if err != nil {
		d.op.Say("[ERROR] Unsupported model type: %s", strings.ToLower(filepath.Ext(modelPath)))
		return d.fail(Precondition(err))
	}

	d.transition(StateAwaitFormatChoice)
	format, err := d.chooseFormat(kind)
	if err != nil {
		return d.fail(err)
	}

	if format == model.FormatEngine && !d.opts.GPU.SupportsEngine() {
		d.op.Say("\n[WARN] AMD cannot export to TensorRT. Exiting.")
		return d.fail(Precondition(ErrEngineUnsupported))
	}

	half := false
	if format == model.FormatEngine {
		d.transition(StateAwaitPrecisionChoice)
		if half, err = d.choosePrecision(); err != nil {
			return d.fail(err)
		}
	}

	d.transition(StateExporting)
	route := backend.Route{Kind: kind, Format: format}
	exporter, err := d.exporters.Get(route)
	if err != nil {
		return d.fail(fmt.Errorf("resolve exporter: %w", err))
	}

	req := &backend.Request{
		ModelPath: modelPath,
		Format:    format,
		Half:      half,
		Device:    d.opts.GPU.Device(),
	}
	slog.Info("Starting export", "exporter", exporter.Name(), "route", route, "precision", req.PrecisionLabel(), "device", req.Device)

	out, err := exporter.Export(ctx, req)
	if err == nil && out == "" {
		err = backend.ErrEmptyOutput
	}
	if err != nil {
		return d.fail(&ExportError{Exporter: exporter.Name(), Err: err})
	}

	d.transition(StateDone)
	return out, nil
}

func (d *Dispatcher) chooseFormat(kind model.Kind) (model.Format, error) {
	menu := FormatMenu(kind)

	d.op.Say("\n[STEP 2] Choose Output Format:")
	printMenu(d.op, menu)

	choice, err := d.op.Ask(choicePrompt(menu.Keys()))
	if err != nil {
		return "", Precondition(fmt.Errorf("%w: %w", ErrInvalidChoice, err))
	}

	format, ok := menu.Lookup(choice)
	if !ok {
		d.op.Say("[ERROR] Invalid choice. Exiting.")
		return "", Precondition(fmt.Errorf("%w: %q", ErrInvalidChoice, choice))
	}

	return format, nil
}

func (d *Dispatcher) choosePrecision() (bool, error) {
	d.op.Say("\n[STEP 3] Choose Precision:")
	printMenu(d.op, PrecisionMenu)

	choice, err := d.op.Ask(choicePrompt(PrecisionMenu.Keys()))
	if err != nil && !d.opts.LenientPrecision {
		return false, Precondition(fmt.Errorf("%w: %w", ErrInvalidPrecision, err))
	}

	if half, ok := PrecisionMenu.Lookup(choice); ok {
		return half, nil
	}

	if d.opts.LenientPrecision {
		slog.Warn("Unrecognised precision choice, using FP16", "choice", choice)
		return true, nil
	}

	d.op.Say("[ERROR] Invalid precision choice. Exiting.")
	return false, Precondition(fmt.Errorf("%w: %q", ErrInvalidPrecision, choice))
}

func printMenu[T any](op operator.Operator, menu Menu[T]) {
	for _, o := range menu {
		op.Say(" %s. %s", o.Key, o.Label)
	}
}

func choicePrompt(keys []string) string {
	return fmt.Sprintf("\nEnter choice (%s): ", strings.Join(keys, " or "))
}
