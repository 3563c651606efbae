package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/langdetect"
	"github.com/yaklabco/gofold/pkg/marker"
)

// ValidationError is one finding about a configuration field.
type ValidationError struct {
	// Field locates the value, e.g. "languages.go[0]".
	Field    string
	Value    any
	Message  string
	FilePath string
}

// Error renders "file: field: message", omitting empty parts.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects the findings of Validate. Errors prevent loading;
// warnings flag settings that have no effect, such as markers that will be
// dropped.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins all errors, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns every finding prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks cfg. Marker specs the compiler would drop are reported as
// warnings, since compilation itself drops them silently.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Dialect != "" && !cfg.Dialect.IsValid() {
		result.errorf("dialect", cfg.Dialect, "invalid dialect %q; must be one of: re2, ecmascript", cfg.Dialect)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)
	validateMarkers(cfg, result)

	return result
}

// validateIgnorePatterns rejects malformed doublestar globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if ext == "" || strings.ContainsAny(ext, `/\*?[`) {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; use a plain suffix such as .go", ext)
		}
	}
}

func validateMarkers(cfg *config.Config, result *ValidationResult) {
	dialect := cfg.EffectiveDialect()
	if !dialect.IsValid() {
		// Already reported; compiling under a fallback would mislead.
		return
	}
	compiler := marker.NewCompiler(dialect)

	check := func(field string, specs marker.Specs) {
		for i, spec := range specs {
			if _, err := compiler.CompileSpec(spec); err != nil {
				result.warnf(fmt.Sprintf("%s[%d]", field, i), spec, "marker %s will be ignored: %v", spec, err)
			}
		}
	}

	check("markers", cfg.Markers)
	check("flags", cfg.ExtraMarkers)

	for _, lang := range cfg.LanguageNames() {
		field := "languages." + lang
		if normalized := langdetect.Normalize(lang); normalized != lang {
			result.warnf(field, lang, "language %q never matches a detected language; use %q", lang, normalized)
		}
		check(field, cfg.Languages[lang])
	}
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}
