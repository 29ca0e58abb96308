package config

import (
	"fmt"
	"time"
)

// PrecisionFallback controls how unrecognised precision input is handled.
type PrecisionFallback string

const (
	// PrecisionFallbackNone rejects unrecognised precision input.
	PrecisionFallbackNone PrecisionFallback = ""

	// PrecisionFallbackHalf treats any input other than the FP32 selector as FP16.
	PrecisionFallbackHalf PrecisionFallback = "half"
)

// Config holds the main configuration for the application.
type Config struct {
	Python            string            `json:"python,omitempty"             yaml:"python,omitempty"`
	LibrariesDir      string            `json:"libraries_dir,omitempty"      yaml:"libraries_dir,omitempty"`
	LogFile           string            `json:"log_file,omitempty"           yaml:"log_file,omitempty"`
	PrecisionFallback PrecisionFallback `json:"precision_fallback,omitempty" yaml:"precision_fallback,omitempty"`
	ExportTimeout     string            `json:"export_timeout,omitempty"     yaml:"export_timeout,omitempty"`
}

// Timeout parses ExportTimeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.ExportTimeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.ExportTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid export_timeout %q: %w", c.ExportTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid export_timeout %q: must not be negative", c.ExportTimeout)
	}

	return d, nil
}

// LenientPrecision reports whether unrecognised precision input falls back to FP16.
func (c *Config) LenientPrecision() bool {
	return c.PrecisionFallback == PrecisionFallbackHalf
}
