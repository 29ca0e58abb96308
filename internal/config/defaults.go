package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ekisa-team/yoloconv/internal/envvar"
	"github.com/ekisa-team/yoloconv/internal/xfs"
)

// DefaultConfigPath returns the default path for the yoloconv config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "yoloconv", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "yoloconv")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "yoloconv")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "yoloconv")
		}
		return filepath.Join(home, ".config", "yoloconv")
	}
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigPath(), "config.yaml")
}

// DefaultPython returns the interpreter name used when none is configured.
func DefaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{}
}

// ApplyDefaults fills unset fields.
// Precedence:
// 1. Environment variables (YOLOCONV_PYTHON, YOLOCONV_LIBRARIES_DIR).
// 2. Values from the config file.
// 3. Built-in defaults.
func (c *Config) ApplyDefaults() {
	if p := os.Getenv(envvar.YoloconvPython); p != "" {
		c.Python = p
	}
	if c.Python == "" {
		c.Python = DefaultPython()
	}

	if d := os.Getenv(envvar.YoloconvLibrariesDir); d != "" {
		c.LibrariesDir = d
	}
	if c.LibrariesDir == "" {
		c.LibrariesDir = xfs.ExecutableDir()
	}
	c.LibrariesDir = xfs.ExpandTilde(c.LibrariesDir)

	if c.LogFile != "" {
		c.LogFile = xfs.ExpandTilde(c.LogFile)
	}
}
