package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/document"
	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/marker"
	"github.com/yaklabco/gofold/pkg/reporter"
	"github.com/yaklabco/gofold/pkg/runner"
)

var testMarkers = []marker.Spec{
	{Begin: "#region", End: "#endregion"},
	{BeginRegex: `^\s*// \{\{\{`, EndRegex: `^\s*// \}\}\}`},
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:        "/repo/main.go",
				DisplayPath: "main.go",
				Language:    "go",
				Snapshot:    document.FromString("// #region imports\nimport \"fmt\"\n// #endregion\n// {{{ helpers\nfunc a() {}\n// }}}\n"),
				Ranges: []fold.Range{
					{Start: 0, End: 2, Marker: 0},
					{Start: 3, End: 5, Marker: 1},
				},
				Markers: testMarkers,
			},
			{
				Path:        "/repo/notes.txt",
				DisplayPath: "notes.txt",
				Language:    "text",
				Snapshot:    document.FromString("nothing here\n"),
				Ranges:      []fold.Range{},
				Markers:     testMarkers,
			},
			{
				Path:        "/repo/logo.png",
				DisplayPath: "logo.png",
				Skipped:     true,
				SkipReason:  runner.SkipBinary,
			},
			{
				Path:        "/repo/gone.go",
				DisplayPath: "gone.go",
				Error:       errors.New("file not found"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:  4,
			FilesProcessed:   2,
			FilesSkipped:     1,
			FilesErrored:     1,
			FilesWithRanges:  1,
			RangesTotal:      2,
			RangesByLanguage: map[string]int{"go": 2},
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  config.OutputFormat
		want    any
		wantErr bool
	}{
		{name: "text reporter", format: config.FormatText, want: &reporter.TextReporter{}},
		{name: "table reporter", format: config.FormatTable, want: &reporter.TableReporter{}},
		{name: "json reporter", format: config.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "summary reporter", format: config.FormatSummary, want: &reporter.SummaryReporter{}},
		{name: "empty defaults to text", format: "", want: &reporter.TextReporter{}},
		{name: "unknown format", format: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestTextReporter_Grouped(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.ShowSkipped = true

	out, count := report(t, opts, sampleResult())

	assert.Equal(t, 2, count)
	assert.Contains(t, out, "main.go [go] (2 ranges)")
	assert.Contains(t, out, "1-3  3 lines  (#region … #endregion)")
	assert.Contains(t, out, "4-6  3 lines")
	assert.Contains(t, out, "// #region imports")
	assert.Contains(t, out, "logo.png  skipped (binary)")
	assert.Contains(t, out, "gone.go")
	assert.Contains(t, out, "file not found")
	assert.NotContains(t, out, "notes.txt", "files without ranges are not listed")
	assert.Contains(t, out, "2 ranges in 1 file")
}

func TestTextReporter_Flat(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.GroupByFile = false
	opts.ShowContext = false
	opts.ShowSummary = false

	out, count := report(t, opts, sampleResult())

	assert.Equal(t, 2, count)
	assert.Contains(t, out, "main.go:1-3  3 lines")
	assert.Contains(t, out, "main.go:4-6  3 lines")
	assert.NotContains(t, out, "imports")
	assert.NotContains(t, out, "logo.png", "skipped files are hidden by default")
	assert.NotContains(t, out, "ranges in")
}

func TestTextReporter_Empty(t *testing.T) {
	out, count := report(t, reporter.DefaultOptions(), &runner.Result{})

	assert.Zero(t, count)
	assert.Contains(t, out, "No files to scan.")

	opts := reporter.DefaultOptions()
	opts.ShowSummary = false
	out, _ = report(t, opts, nil)
	assert.Empty(t, out)
}

func TestTableReporter(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.Format = config.FormatTable
	opts.ShowContext = false

	out, count := report(t, opts, sampleResult())

	assert.Equal(t, 2, count)
	for _, header := range []string{"FILE", "LANG", "START", "END", "LINES", "MARKER"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "gone.go")
	assert.Contains(t, out, "2 ranges in 1 file")
}

func TestJSONReporter(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.Format = config.FormatJSON

	out, count := report(t, opts, sampleResult())
	assert.Equal(t, 2, count)
	assert.Contains(t, out, "\n  \"version\"", "indented by default")

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, reporter.JSONVersion, decoded.Version)
	require.Len(t, decoded.Files, 4)

	goFile := decoded.Files[0]
	assert.Equal(t, "main.go", goFile.Path)
	assert.Equal(t, "go", goFile.Language)
	assert.Equal(t, []reporter.JSONRange{
		{StartLine: 0, EndLine: 2, Kind: "region", Marker: "#region … #endregion"},
		{StartLine: 3, EndLine: 5, Kind: "region", Marker: `/^\s*// \{\{\{/ … /^\s*// \}\}\}/`},
	}, goFile.Ranges)

	assert.NotNil(t, decoded.Files[1].Ranges, "empty range lists encode as []")
	assert.Empty(t, decoded.Files[1].Ranges)
	assert.True(t, decoded.Files[2].Skipped)
	assert.Equal(t, "binary", decoded.Files[2].SkipReason)
	assert.Equal(t, "file not found", decoded.Files[3].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesDiscovered: 4,
		FilesProcessed:  2,
		FilesSkipped:    1,
		FilesErrored:    1,
		FilesWithRanges: 1,
		TotalRanges:     2,
		ByLanguage:      map[string]int{"go": 2},
	}, decoded.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.Format = config.FormatJSON
	opts.Compact = true

	out, _ := report(t, opts, nil)

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"files":[]`)
}

func TestSummaryReporter(t *testing.T) {
	opts := reporter.DefaultOptions()
	opts.Format = config.FormatSummary

	out, count := report(t, opts, sampleResult())

	assert.Equal(t, 2, count)
	assert.Contains(t, out, "Markers")
	assert.Contains(t, out, "#region … #endregion")
	assert.Contains(t, out, "Total ranges:      2")
	assert.Contains(t, out, "Completed with errors")
}

func TestCountByMarker(t *testing.T) {
	result := sampleResult()
	result.Files[1].Ranges = []fold.Range{{Start: 0, End: 1, Marker: 1}, {Start: 2, End: 3, Marker: 1}}

	counts := reporter.CountByMarker(result)
	require.Len(t, counts, 2)

	assert.Equal(t, reporter.MarkerCount{Marker: `/^\s*// \{\{\{/ … /^\s*// \}\}\}/`, Ranges: 3, Files: 2}, counts[0])
	assert.Equal(t, reporter.MarkerCount{Marker: "#region … #endregion", Ranges: 1, Files: 1}, counts[1])

	assert.Nil(t, reporter.CountByMarker(nil))
}
