package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
)

// envVarPrefix is the prefix for all gofold environment variables.
const envVarPrefix = "GOFOLD_"

// envBinding applies one environment variable to a config.
type envBinding struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envBindings is sorted by suffix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"DIALECT", "Regex dialect: re2 or ecmascript", func(cfg *config.Config, v string) error {
		cfg.Dialect = marker.Dialect(strings.ToLower(v))
		return nil
	}},
	{"EXTENSIONS", "Comma-separated list of file extensions", func(cfg *config.Config, v string) error {
		cfg.Extensions = splitList(v)
		return nil
	}},
	{"FOLLOW_SYMLINKS", "Follow directory symlinks: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", v)
		}
		cfg.FollowSymlinks = b
		return nil
	}},
	{"FORMAT", "Output format: text, table, json or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(strings.ToLower(v))
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore globs", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		cfg.Jobs = n
		return nil
	}},
}

// LoadFromEnv applies GOFOLD_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	for _, binding := range envBindings {
		name := envVarPrefix + binding.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables, sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envBindings))
	for i, binding := range envBindings {
		vars[i] = EnvVar{Name: envVarPrefix + binding.suffix, Description: binding.description}
	}
	return vars
}
