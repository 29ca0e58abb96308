package ultralytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrEntryPointNotFound is returned when no candidate location exposes the entry point.
var ErrEntryPointNotFound = errors.New("entry point not found in installed toolkit; update it with: pip install -U ultralytics")

// EntryPoint is a function exported by a toolkit module.
type EntryPoint struct {
	Module string
	Name   string
}

func (e EntryPoint) String() string {
	return e.Module + "." + e.Name
}

// OnnxToEngineCandidates lists where onnx2engine has lived across toolkit
// releases, newest first.
var OnnxToEngineCandidates = []EntryPoint{
	{Module: "ultralytics.utils.export.engine", Name: "onnx2engine"},
	{Module: "ultralytics.utils.export", Name: "onnx2engine"},
}

// Resolver finds the first importable entry point from an ordered candidate list.
type Resolver struct {
	python     Interpreter
	candidates []EntryPoint
}

// NewResolver creates a resolver trying candidates in order.
func NewResolver(python Interpreter, candidates []EntryPoint) *Resolver {
	return &Resolver{python: python, candidates: candidates}
}

// Resolve returns the first candidate that imports.
func (r *Resolver) Resolve(ctx context.Context) (EntryPoint, error) {
	for _, c := range r.candidates {
		_, _, err := r.python.Execute(ctx, []string{"-c", entryPointScript, c.Module, c.Name}, nil)
		if err == nil {
			slog.Debug("Resolved toolkit entry point", "entry_point", c)
			return c, nil
		}
		if ctx.Err() != nil {
			return EntryPoint{}, ctx.Err()
		}
		slog.Debug("Entry point candidate unavailable", "entry_point", c, "error", err)
	}

	name := "entry point"
	if len(r.candidates) > 0 {
		name = r.candidates[0].Name
	}
	slog.Error("Could not find toolkit entry point", "name", name)
	return EntryPoint{}, fmt.Errorf("%s: %w", name, ErrEntryPointNotFound)
}
