// Package config defines gofold's configuration types. They are plain data
// with YAML tags; layered loading lives in internal/configloader.
package config

import (
	"maps"
	"slices"

	"github.com/yaklabco/gofold/pkg/marker"
)

// DefaultMarkers is the marker list used when no configuration names one.
func DefaultMarkers() marker.Specs {
	return marker.Specs{{Begin: "#region", End: "#endregion"}}
}

// Config is the root configuration structure.
type Config struct {
	// Dialect selects the regex engine for regex-shaped markers.
	Dialect marker.Dialect `yaml:"dialect"`

	// Markers is the default marker list, in priority order.
	Markers marker.Specs `yaml:"markers"`

	// Languages overrides Markers for files of a detected language. Keys are
	// normalized language identifiers ("go", "python", "c#").
	Languages map[string]marker.Specs `yaml:"languages,omitempty"`

	// Extensions limits directory walks to these file extensions. Empty means
	// every text file.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains doublestar glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// FollowSymlinks makes directory walks descend into symlinked directories.
	FollowSymlinks bool `yaml:"-"`

	// ExtraMarkers are appended after the configured markers of every set.
	ExtraMarkers marker.Specs `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Dialect:   marker.DialectRE2,
		Markers:   DefaultMarkers(),
		Languages: make(map[string]marker.Specs),
		Format:    FormatText,
		Jobs:      0, // 0 means use NumCPU
	}
}

// MarkersFor returns the marker list for a detected language: the language's
// own list when configured (an empty list disables folding for it), otherwise
// the default list. ExtraMarkers are appended in both cases.
func (c *Config) MarkersFor(language string) marker.Specs {
	specs, ok := c.Languages[language]
	if !ok {
		specs = c.Markers
	}

	out := make(marker.Specs, 0, len(specs)+len(c.ExtraMarkers))
	out = append(out, specs...)
	return append(out, c.ExtraMarkers...)
}

// LanguageNames returns the configured language keys, sorted.
func (c *Config) LanguageNames() []string {
	return slices.Sorted(maps.Keys(c.Languages))
}

// EffectiveDialect returns the configured dialect, or RE2 when unset.
func (c *Config) EffectiveDialect() marker.Dialect {
	if c.Dialect == "" {
		return marker.DialectRE2
	}
	return c.Dialect
}
