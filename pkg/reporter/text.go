package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to scan."))
		}
		return 0, nil
	}

	var total int
	if r.opts.GroupByFile {
		total = r.reportGrouped(ctx, result)
	} else {
		total = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes ranges under a header per file.
func (r *TextReporter) reportGrouped(_ context.Context, result *runner.Result) int {
	var total int

	for i := range result.Files {
		file := &result.Files[i]
		if r.reportUnscanned(file) {
			continue
		}
		if len(file.Ranges) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.DisplayPath, file.Language, len(file.Ranges)))
		for _, row := range pretty.RowsFor(file) {
			fmt.Fprint(r.bw, r.styles.FormatRange(row, r.opts.ShowContext))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes one "path:start-end" line per range.
func (r *TextReporter) reportFlat(_ context.Context, result *runner.Result) int {
	var total int

	for i := range result.Files {
		file := &result.Files[i]
		if r.reportUnscanned(file) {
			continue
		}

		for _, row := range pretty.RowsFor(file) {
			fmt.Fprint(r.bw, r.styles.FormatRangeFlat(row, r.opts.ShowContext))
			total++
		}
	}

	return total
}

// reportUnscanned writes errored and skipped files and reports whether file
// was one of them.
func (r *TextReporter) reportUnscanned(file *runner.FileOutcome) bool {
	switch {
	case file.Error != nil:
		fmt.Fprint(r.bw, r.styles.FormatFileError(file.DisplayPath, file.Error))
		return true
	case file.Skipped:
		if r.opts.ShowSkipped {
			fmt.Fprint(r.bw, r.styles.FormatSkipped(file.DisplayPath, file.SkipReason))
		}
		return true
	default:
		return false
	}
}
