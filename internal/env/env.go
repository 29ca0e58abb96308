package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/envvar"
)

// Environment is the runtime environment the program runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// FromEnv reads the environment from YOLOCONV_ENV, defaulting to production.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.YoloconvEnv))
}

// Parse converts a raw value into an Environment. Unknown values map to production.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dev", "development":
		return Development
	case "test":
		return Test
	default:
		return Production
	}
}

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool {
	return e == Development
}
