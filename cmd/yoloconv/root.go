package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/yoloconv/internal/app"
	"github.com/ekisa-team/yoloconv/internal/config"
	"github.com/ekisa-team/yoloconv/internal/env"
	"github.com/ekisa-team/yoloconv/internal/gpu"
	"github.com/ekisa-team/yoloconv/internal/logger"
	"github.com/ekisa-team/yoloconv/internal/operator"
)

// exitError carries a process exit code out of RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type rootOptions struct {
	gpuType    string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "yoloconv --type <" + strings.Join(gpu.Names(), "|") + ">",
		Short: "Convert YOLO models to ONNX or TensorRT engines",
		Long: "Convert a YOLO model (.pt or .onnx) to ONNX or a TensorRT engine.\n\n" +
			"Conversion runs through a local Python installation with torch, ultralytics and onnxruntime.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := gpu.Parse(opts.gpuType)
			if err != nil {
				return err
			}
			return run(cmd.Context(), t, opts)
		},
	}

	cmd.Flags().StringVar(&opts.gpuType, "type", "", "GPU configuration: "+strings.Join(gpu.Names(), ", "))
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigFile(), "Path to config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: debug in development, else info)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func run(ctx context.Context, t gpu.Type, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERROR]", err)
		return &exitError{code: app.ExitFailure}
	}

	slog.SetDefault(newLogger(env.FromEnv(), opts.logLevel, cfg))
	slog.Debug("Config loaded", "config", opts.configPath, "python", cfg.Python, "libraries_dir", cfg.LibrariesDir)

	op := operator.NewConsole(os.Stdin, os.Stdout, nil)
	if code := app.New(op, cfg, t).Run(ctx); code != app.ExitOK {
		return &exitError{code: code}
	}
	return nil
}

// newLogger builds the process logger. An empty level keeps the environment's default.
func newLogger(environment env.Environment, level string, cfg *config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithLogToFile(cfg.LogFile != ""),
		logger.WithLogFile(cfg.LogFile),
	}
	if level != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(level)))
	}
	return logger.New(environment, opts...)
}

// execute runs the root command with args and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return app.ExitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
	return app.ExitUsage
}
