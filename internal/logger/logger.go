// Package logger builds the process-wide slog logger: a colored console
// handler on stderr plus an optional rotating JSON file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/yoloconv/internal/env"
)

type options struct {
	level     slog.Level
	logToFile bool
	logFile   string
	console   io.Writer
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level for every sink.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLogToFile enables the rotating file sink.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile sets the file used by the rotating sink.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// WithConsole replaces stderr as the console sink.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// New creates a logger for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := options{
		level:   slog.LevelInfo,
		console: os.Stderr,
	}
	if environment.IsDevelopment() {
		o.level = slog.LevelDebug
	}
	for _, opt := range opts {
		opt(&o)
	}

	handlers := []slog.Handler{
		tint.NewHandler(o.console, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(o.console),
		}),
	}

	if o.logToFile && o.logFile != "" {
		handlers = append(handlers, slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}, &slog.HandlerOptions{Level: o.level}))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(fanout(handlers))
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
