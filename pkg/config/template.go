package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/gofold/pkg/marker"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes a languages section with the built-in presets.
	// If false, generates a minimal template.
	Full bool
}

// Presets returns the region marker conventions common editors recognize,
// keyed by normalized language identifier.
func Presets() map[string]marker.Specs {
	return map[string]marker.Specs{
		"c#":         {{BeginRegex: `^\s*#region\b`, EndRegex: `^\s*#endregion\b`}},
		"c++":        {{BeginRegex: `^\s*#pragma\s+region\b`, EndRegex: `^\s*#pragma\s+endregion\b`}},
		"css":        {{BeginRegex: `^\s*/\*\s*#region\b\s*(.*?)\s*\*/`, EndRegex: `^\s*/\*\s*#endregion\b.*\*/`}},
		"go":         {{BeginRegex: `^\s*//\s*region\b`, EndRegex: `^\s*//\s*endregion\b`}},
		"java":       {{BeginRegex: `^\s*//\s*(?:#?region\b|<editor-fold\b)`, EndRegex: `^\s*//\s*(?:#?endregion\b|</editor-fold>)`}},
		"javascript": {{BeginRegex: `^\s*//\s*#?region\b`, EndRegex: `^\s*//\s*#?endregion\b`}},
		"python":     {{BeginRegex: `^\s*#\s*region\b`, EndRegex: `^\s*#\s*endregion\b`}},
		"shell":      {{BeginRegex: `^\s*#\s*region\b`, EndRegex: `^\s*#\s*endregion\b`}},
		"typescript": {{BeginRegex: `^\s*//\s*#?region\b`, EndRegex: `^\s*//\s*#?endregion\b`}},
		"yaml":       {{BeginRegex: `^\s*#\s*region\b`, EndRegex: `^\s*#\s*endregion\b`}},
	}
}

// GenerateTemplate creates a commented configuration file that FromYAML
// accepts unchanged.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Regex engine for beginRegex/endRegex: re2 or ecmascript.
# ecmascript adds lookaround and backreferences.
dialect: re2

# Default markers, tried in order. A line matching a begin marker opens a
# region; the innermost open region closes on its own end marker.
# begin/end are literal text; beginRegex/endRegex are patterns and take
# precedence when both are set.
markers:
  - begin: "#region"
    end: "#endregion"

# File extensions to scan when walking directories (empty = all text files).
# extensions: [".go", ".py", ".ts"]

# Files to skip (doublestar glob patterns).
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Per-language markers replace the default list for that language.
# languages:
#   go:
#     - beginRegex: '^\s*//\s*region\b'
#       endRegex: '^\s*//\s*endregion\b'
`)
		return buf.Bytes(), nil
	}

	buf.WriteString(`
# Per-language markers replace the default list for that language.
# Keys are language names as reported by "gofold markers".
languages:
`)

	presets := Presets()
	for _, lang := range slices.Sorted(maps.Keys(presets)) {
		fmt.Fprintf(&buf, "  %q:\n", lang)
		for _, spec := range presets[lang] {
			fmt.Fprintf(&buf, "    - beginRegex: '%s'\n", spec.BeginRegex)
			fmt.Fprintf(&buf, "      endRegex: '%s'\n", spec.EndRegex)
		}
	}

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gofold configuration
# See: https://github.com/yaklabco/gofold`
}
