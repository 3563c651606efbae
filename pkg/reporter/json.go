package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gofold/pkg/runner"
)

// JSONVersion is the schema version of JSONOutput.
const JSONVersion = "1.0.0"

// FoldingRangeKindRegion is the LSP folding range kind for marker regions.
const FoldingRangeKindRegion = "region"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string      `json:"path"`
	Language   string      `json:"language,omitempty"`
	Ranges     []JSONRange `json:"ranges"`
	Skipped    bool        `json:"skipped,omitempty"`
	SkipReason string      `json:"skipReason,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// JSONRange is a folding range in the shape of an LSP FoldingRange.
// Lines are zero-based.
type JSONRange struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Kind      string `json:"kind"`
	Marker    string `json:"marker,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	FilesWithRanges int            `json:"filesWithRanges"`
	TotalRanges     int            `json:"totalRanges"`
	ByLanguage      map[string]int `json:"byLanguage"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalRanges, nil
}

// BuildJSONOutput converts a runner result into its JSON document.
func BuildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByLanguage: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for i := range result.Files {
		file := &result.Files[i]
		fileResult := JSONFileResult{
			Path:       file.DisplayPath,
			Language:   file.Language,
			Ranges:     make([]JSONRange, 0, len(file.Ranges)),
			Skipped:    file.Skipped,
			SkipReason: file.SkipReason,
		}
		if fileResult.Path == "" {
			fileResult.Path = file.Path
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, r := range file.Ranges {
			jsonRange := JSONRange{
				StartLine: r.Start,
				EndLine:   r.End,
				Kind:      FoldingRangeKindRegion,
			}
			if spec, ok := file.MarkerFor(r); ok {
				jsonRange.Marker = spec.String()
			}
			fileResult.Ranges = append(fileResult.Ranges, jsonRange)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesSkipped = stats.FilesSkipped
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.FilesWithRanges = stats.FilesWithRanges
	output.Summary.TotalRanges = countRanges(result)
	for lang, n := range stats.RangesByLanguage {
		output.Summary.ByLanguage[lang] = n
	}

	return output
}
