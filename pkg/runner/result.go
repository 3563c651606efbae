package runner

import (
	"github.com/yaklabco/gofold/pkg/document"
	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/marker"
)

// Skip reasons recorded on FileOutcome.
const (
	SkipBinary    = "binary"
	SkipGenerated = "generated"
)

// FileOutcome is the folding result for one file.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// DisplayPath is Path relative to the working directory, slash-separated.
	DisplayPath string

	// Language is the detected language identifier.
	Language string

	// Snapshot is the file content that was scanned. Nil when the file was
	// skipped or could not be read.
	Snapshot *document.Snapshot

	// Ranges are the folding ranges, ordered by start line.
	Ranges []fold.Range

	// Markers is the marker list the file was scanned with; Range.Marker
	// indexes into it. Shared between outcomes and must not be modified.
	Markers []marker.Spec

	// Skipped is set when the file was deliberately not scanned.
	Skipped bool

	// SkipReason says why the file was skipped.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// MarkerFor returns the spec that opened r.
func (o *FileOutcome) MarkerFor(r fold.Range) (marker.Spec, bool) {
	if r.Marker < 0 || r.Marker >= len(o.Markers) {
		return marker.Spec{}, false
	}
	return o.Markers[r.Marker], true
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully scanned.
	FilesProcessed int

	// FilesSkipped is the number of files deliberately not scanned.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithRanges is the number of files with at least one range.
	FilesWithRanges int

	// RangesTotal is the total number of ranges across all files.
	RangesTotal int

	// RangesByLanguage maps detected languages to range counts.
	RangesByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasRanges reports whether any folding range was found.
func (r *Result) HasRanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.RangesTotal > 0
}

func newStats() Stats {
	return Stats{
		RangesByLanguage: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		if n := len(outcome.Ranges); n > 0 {
			r.Stats.FilesWithRanges++
			r.Stats.RangesTotal += n
			r.Stats.RangesByLanguage[outcome.Language] += n
		}
	}
}
