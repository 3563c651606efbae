package pretty

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/gofold/pkg/runner"
)

const (
	maxContextWidth = 72
	contextIndent   = "        "
	ellipsis        = "..."
)

// RangeRow is one folding range prepared for display. Start and End are
// 1-based line numbers.
type RangeRow struct {
	File     string
	Language string
	Start    int
	End      int
	Lines    int
	Marker   string
	Context  string
}

// RowsFor converts a file outcome into display rows, one per range.
func RowsFor(file *runner.FileOutcome) []RangeRow {
	rows := make([]RangeRow, 0, len(file.Ranges))
	for _, r := range file.Ranges {
		row := RangeRow{
			File:     file.DisplayPath,
			Language: file.Language,
			Start:    r.Start + 1,
			End:      r.End + 1,
			Lines:    r.Lines(),
		}
		if spec, ok := file.MarkerFor(r); ok {
			row.Marker = spec.String()
		}
		if file.Snapshot != nil {
			row.Context = string(bytes.TrimSpace(file.Snapshot.LineContent(row.Start)))
		}
		rows = append(rows, row)
	}
	return rows
}

// Span renders the row's line span as "start-end".
func (r RangeRow) Span() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// FormatRange formats a single range for terminal output, indented under
// its file header.
func (s *Styles) FormatRange(row RangeRow, showContext bool) string {
	return s.formatRange("  ", row, showContext)
}

// FormatRangeFlat formats a range prefixed with its file path, as
// "path:start-end".
func (s *Styles) FormatRangeFlat(row RangeRow, showContext bool) string {
	return s.formatRange(s.FilePath.Render(row.File)+":", row, showContext)
}

func (s *Styles) formatRange(prefix string, row RangeRow, showContext bool) string {
	var builder strings.Builder

	builder.WriteString(prefix)
	builder.WriteString(s.Location.Render(row.Span()))
	builder.WriteString("  " + s.LineCount.Render(pluralize(row.Lines, "line", "lines")))
	if row.Marker != "" {
		builder.WriteString("  " + s.Marker.Render("("+row.Marker+")"))
	}
	builder.WriteString("\n")

	if showContext && row.Context != "" {
		builder.WriteString(contextIndent + s.SourceLine.Render(truncate(row.Context, maxContextWidth)) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, language string, rangeCount int) string {
	header := s.FilePath.Render(path)
	if language != "" {
		header += " " + s.Language.Render("["+language+"]")
	}
	if rangeCount > 0 {
		header += s.Dim.Render(" (" + pluralize(rangeCount, "range", "ranges") + ")")
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s  %s  %s\n", s.FilePath.Render(path), s.Error.Render("error"), err)
}

// FormatSkipped formats a file that was not scanned.
func (s *Styles) FormatSkipped(path, reason string) string {
	return s.Dim.Render(fmt.Sprintf("%s  skipped (%s)", path, reason)) + "\n"
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// truncate shortens str to maxLen runes, adding an ellipsis if truncated.
func truncate(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}
