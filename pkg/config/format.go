package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies the output format for folding reports.
type OutputFormat string

const (
	// FormatText prints ranges grouped by file with the opening line.
	FormatText OutputFormat = "text"

	// FormatTable prints one table row per range.
	FormatTable OutputFormat = "table"

	// FormatJSON prints LSP-shaped folding ranges.
	FormatJSON OutputFormat = "json"

	// FormatSummary prints per-marker counts and run statistics.
	FormatSummary OutputFormat = "summary"
)

// Formats lists the supported output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSummary}
}

// IsValid reports whether f is a supported format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name case-insensitively. An empty name is text.
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q (valid: text, table, json, summary)", name)
	}
	return format, nil
}
