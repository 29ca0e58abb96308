package gpu

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/envvar"
	"github.com/ekisa-team/yoloconv/internal/xfs"
)

// ResolveSearchDirs returns the library directories to expose to the toolkit for t.
// A directory is only returned when it exists under baseDir; a missing one is
// logged as a warning since the libraries may already be installed system-wide.
func ResolveSearchDirs(t Type, baseDir string) []string {
	slog.Info("Setting up libraries", "gpu_type", t)

	name := t.LibraryDirName()
	if name == "" {
		slog.Info("AMD mode: no NVIDIA libraries required")
		return nil
	}

	dir := filepath.Join(baseDir, name)
	if !xfs.IsDir(dir) {
		slog.Warn("Library folder not found, TensorRT conversion might fail if not installed on system", "path", dir)
		return nil
	}

	slog.Info("Loaded TensorRT libraries", "dir", name)
	return []string{dir}
}

// SearchPathVar returns the dynamic-library search variable for goos.
func SearchPathVar(goos string) string {
	switch goos {
	case "windows":
		return "PATH"
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

// Environ returns a copy of base with dirs prepended to the platform's library
// search variable. The dirs are also listed in YOLOCONV_DLL_DIRS so the helper
// scripts can register them with the Windows DLL loader. base itself is never
// modified.
func Environ(base []string, dirs []string) []string {
	return environFor(runtime.GOOS, base, dirs)
}

func environFor(goos string, base []string, dirs []string) []string {
	out := append([]string(nil), base...)
	if len(dirs) == 0 {
		return out
	}

	sep := string(listSeparator(goos))
	joined := strings.Join(dirs, sep)

	key := SearchPathVar(goos)
	prefix := joined
	if v, ok := lookup(goos, out, key); ok && v != "" {
		prefix += sep + v
	}

	out = setVar(goos, out, key, prefix)
	return setVar(goos, out, envvar.YoloconvDLLDirs, joined)
}

func lookup(goos string, env []string, key string) (string, bool) {
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && sameKey(goos, k, key) {
			return v, true
		}
	}
	return "", false
}

// setVar replaces key in env, keeping the existing spelling of the name, or appends it.
func setVar(goos string, env []string, key, value string) []string {
	for i, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); ok && sameKey(goos, k, key) {
			env[i] = k + "=" + value
			return env
		}
	}
	return append(env, key+"="+value)
}

func listSeparator(goos string) rune {
	if goos == "windows" {
		return ';'
	}
	return ':'
}

// Windows environment keys are case-insensitive ("Path" is common).
func sameKey(goos, a, b string) bool {
	if goos == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ProcessEnviron is Environ applied to the current process environment.
func ProcessEnviron(dirs []string) []string {
	return Environ(os.Environ(), dirs)
}
