package ultralytics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Requirements are the Python libraries a conversion needs, in probe order.
var Requirements = []string{"torch", "ultralytics", "onnxruntime"}

// Dependency is the probe result for one library.
type Dependency struct {
	Name    string
	Version string
	Err     error
}

// Found reports whether the library imported.
func (d Dependency) Found() bool {
	return d.Err == nil
}

// Prober checks that the required libraries import in the interpreter.
type Prober struct {
	python       Interpreter
	requirements []string
}

// NewProber creates a prober for Requirements.
func NewProber(python Interpreter) *Prober {
	return &Prober{python: python, requirements: Requirements}
}

// Probe imports each requirement in turn and reports what it found.
func (p *Prober) Probe(ctx context.Context) []Dependency {
	deps := make([]Dependency, 0, len(p.requirements))
	for _, name := range p.requirements {
		stdout, stderr, err := p.python.Execute(ctx, []string{"-c", probeScript, name}, nil)
		if err != nil {
			if msg := trimOutput(stderr); msg != "" {
				err = fmt.Errorf("%w: %s", err, lastLine(msg))
			}
			slog.Debug("Library import failed", "library", name, "error", err)
			deps = append(deps, Dependency{Name: name, Err: err})
			continue
		}

		version := trimOutput(stdout)
		slog.Info("Library found", "library", name, "version", version)
		deps = append(deps, Dependency{Name: name, Version: version})
	}

	return deps
}

// Missing returns the names of the libraries that failed to import.
func Missing(deps []Dependency) []string {
	var missing []string
	for _, d := range deps {
		if !d.Found() {
			missing = append(missing, d.Name)
		}
	}
	return missing
}

// InstallCommand is the single pip command that installs every missing library.
func InstallCommand(missing []string) string {
	return "pip install " + strings.Join(missing, " ")
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
