package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gofold/pkg/runner"
)

const (
	summaryDividerWidth = 40
	languageColumnWidth = 15
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 ranges in 3 files (5 files scanned, 1 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var head string
	if stats.RangesTotal == 0 {
		head = s.Dim.Render("No folding ranges found")
	} else {
		head = s.Success.Render(pluralize(stats.RangesTotal, "range", "ranges")) +
			" in " + pluralize(stats.FilesWithRanges, "file", "files")
	}

	details := []string{pluralize(stats.FilesProcessed, "file", "files") + " scanned"}
	if stats.FilesSkipped > 0 {
		details = append(details, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		details = append(details, s.Error.Render(pluralize(stats.FilesErrored, "error", "errors")))
	}

	return head + s.Dim.Render(" (") + strings.Join(details, s.Dim.Render(", ")) + s.Dim.Render(")") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files scanned:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files with errors: " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total ranges:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.RangesTotal)) + "\n")

	languages := make([]string, 0, len(stats.RangesByLanguage))
	for lang := range stats.RangesByLanguage {
		languages = append(languages, lang)
	}
	slices.Sort(languages)
	for _, lang := range languages {
		pad := strings.Repeat(" ", max(1, languageColumnWidth-len(lang)))
		builder.WriteString("    " + s.Language.Render(lang+":") + pad +
			s.SummaryValue.Render(strconv.Itoa(stats.RangesByLanguage[lang])) + "\n")
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Completed with errors"))
	} else {
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
