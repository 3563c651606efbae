package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/document"
	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/marker"
	"github.com/yaklabco/gofold/pkg/runner"
)

func sampleOutcome() *runner.FileOutcome {
	return &runner.FileOutcome{
		Path:        "/repo/src/main.go",
		DisplayPath: "src/main.go",
		Language:    "go",
		Snapshot:    document.FromString("package main\n\n\t// #region setup\n\tx := 1\n\t// #endregion\n"),
		Ranges:      []fold.Range{{Start: 2, End: 4, Marker: 0}},
		Markers:     []marker.Spec{{Begin: "#region", End: "#endregion"}},
	}
}

func TestRowsFor(t *testing.T) {
	rows := pretty.RowsFor(sampleOutcome())
	require.Len(t, rows, 1)

	assert.Equal(t, pretty.RangeRow{
		File:     "src/main.go",
		Language: "go",
		Start:    3,
		End:      5,
		Lines:    3,
		Marker:   "#region … #endregion",
		Context:  "// #region setup",
	}, rows[0])
	assert.Equal(t, "3-5", rows[0].Span())
}

func TestRowsFor_UnknownMarker(t *testing.T) {
	outcome := sampleOutcome()
	outcome.Markers = nil
	outcome.Snapshot = nil

	rows := pretty.RowsFor(outcome)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Marker)
	assert.Empty(t, rows[0].Context)
}

func TestFormatRange(t *testing.T) {
	styles := pretty.NewStyles(false)
	row := pretty.RowsFor(sampleOutcome())[0]

	withContext := styles.FormatRange(row, true)
	assert.Contains(t, withContext, "3-5")
	assert.Contains(t, withContext, "3 lines")
	assert.Contains(t, withContext, "(#region … #endregion)")
	assert.Contains(t, withContext, "// #region setup")

	without := styles.FormatRange(row, false)
	assert.NotContains(t, without, "setup")
	assert.Equal(t, 1, strings.Count(without, "\n"))
}

func TestFormatRange_TruncatesContext(t *testing.T) {
	styles := pretty.NewStyles(false)
	row := pretty.RangeRow{Start: 1, End: 2, Lines: 2, Context: strings.Repeat("x", 200)}

	out := styles.FormatRange(row, true)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 100))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "a.go [go] (1 range)", styles.FormatFileHeader("a.go", "go", 1))
	assert.Equal(t, "a.go [go] (4 ranges)", styles.FormatFileHeader("a.go", "go", 4))
	assert.Equal(t, "a.txt", styles.FormatFileHeader("a.txt", "", 0))
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatFileError("gone.txt", errors.New("file not found"))
	assert.Contains(t, out, "gone.txt")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "file not found")
}

func TestFormatSkipped(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Contains(t, styles.FormatSkipped("logo.png", runner.SkipBinary), "logo.png  skipped (binary)")
}

func TestFormatRangeFlat(t *testing.T) {
	styles := pretty.NewStyles(false)
	row := pretty.RowsFor(sampleOutcome())[0]

	out := styles.FormatRangeFlat(row, false)
	assert.True(t, strings.HasPrefix(out, "src/main.go:3-5  3 lines"), out)
}
