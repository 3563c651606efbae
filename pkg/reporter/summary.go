package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/runner"
)

// Layout of the marker table.
const (
	tableWidth      = 60
	markerColWidth  = 44
	numColWidth     = 7
	maxMarkerLength = 42
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// MarkerCount is the number of ranges opened by one marker pair.
type MarkerCount struct {
	Marker string
	Ranges int
	Files  int
}

// CountByMarker aggregates ranges per marker, most used first. Ties are
// broken by marker text.
func CountByMarker(result *runner.Result) []MarkerCount {
	if result == nil {
		return nil
	}

	index := make(map[string]int)
	var counts []MarkerCount
	for i := range result.Files {
		file := &result.Files[i]
		seen := make(map[string]bool)
		for _, r := range file.Ranges {
			label := "<unknown>"
			if spec, ok := file.MarkerFor(r); ok {
				label = spec.String()
			}
			pos, ok := index[label]
			if !ok {
				pos = len(counts)
				index[label] = pos
				counts = append(counts, MarkerCount{Marker: label})
			}
			counts[pos].Ranges++
			if !seen[label] {
				seen[label] = true
				counts[pos].Files++
			}
		}
	}

	slices.SortFunc(counts, func(a, b MarkerCount) int {
		if c := cmp.Compare(b.Ranges, a.Ranges); c != 0 {
			return c
		}
		return strings.Compare(a.Marker, b.Marker)
	})
	return counts
}

// SummaryReporter writes aggregate statistics without individual ranges.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to scan."))
		return 0, nil
	}

	r.renderMarkerTable(CountByMarker(result))
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return countRanges(result), nil
}

func (r *SummaryReporter) renderMarkerTable(counts []MarkerCount) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Markers"))
	fmt.Fprintln(r.bw, r.styles.TableBorder.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.UnsetPadding().Render(padRight("Marker", markerColWidth)),
		r.styles.TableHeader.UnsetPadding().Render(padLeft("Ranges", numColWidth)),
		r.styles.TableHeader.UnsetPadding().Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableBorder.Render(strings.Repeat("─", tableWidth)))

	for _, count := range counts {
		label := count.Marker
		if len([]rune(label)) > maxMarkerLength {
			label = string([]rune(label)[:maxMarkerLength]) + "…"
		}
		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.Marker.Render(padRight(label, markerColWidth)),
			padLeft(strconv.Itoa(count.Ranges), numColWidth),
			padLeft(strconv.Itoa(count.Files), numColWidth),
		)
	}
}
