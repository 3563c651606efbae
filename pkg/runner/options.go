// Package runner provides multi-file folding orchestration: discovery,
// language selection, and concurrent scanning.
package runner

import (
	"strings"

	"github.com/yaklabco/gofold/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// glob patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions limits directory walks to these extensions (".go" or "go").
	// Empty means every file. Explicitly named files bypass this filter.
	Extensions []string

	// IncludeGlobs restricts walked files to those matching at least one
	// doublestar pattern, relative to WorkingDir. Empty includes everything.
	IncludeGlobs []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories.
	// Patterns without a slash also match against the base name.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks vendored directories (vendor/, node_modules/, ...)
	// that are skipped by default.
	IncludeVendored bool

	// SkipGenerated skips files that look machine-generated, such as Go
	// files with a "Code generated" header or minified JavaScript.
	SkipGenerated bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run. Nil means defaults.
	Config *config.Config
}

// OptionsFromConfig returns Options populated from cfg's file-selection
// fields.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:          paths,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: cfg.FollowSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// normalizedExtensions returns lowercase extensions with a leading dot.
func (o Options) normalizedExtensions() []string {
	if len(o.Extensions) == 0 {
		return nil
	}
	out := make([]string, 0, len(o.Extensions))
	for _, ext := range o.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
