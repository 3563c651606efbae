// Package fold computes folding ranges from compiled begin/end markers.
//
// Scanning is a single pass over the document's lines. Every line is tested
// against all begin patterns in priority order; the first match opens a
// region, possibly nested inside another. Otherwise, a line that matches the
// end pattern of the innermost open region closes it. Regions still open at
// the end of the document produce no range.
//
// Nesting is tracked on an explicit stack, so deeply nested input costs heap
// memory proportional to the depth rather than goroutine stack frames.
package fold

import "github.com/yaklabco/gofold/pkg/marker"

// Document is random-access, line-oriented read access to a text buffer.
// LineAt is only called with indexes in [0, LineCount()).
type Document interface {
	LineCount() int
	LineAt(index int) string
}

// Lines is an in-memory Document.
type Lines []string

// LineCount implements Document.
func (l Lines) LineCount() int { return len(l) }

// LineAt implements Document.
func (l Lines) LineAt(index int) string { return l[index] }

// Range is a foldable span of lines. Start and End are inclusive, zero-based
// line indexes with Start < End.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`

	// Marker is the index, in the compiled marker list, of the pair that
	// opened the region.
	Marker int `json:"marker"`
}

// Lines returns the number of lines the range spans.
func (r Range) Lines() int {
	return r.End - r.Start + 1
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// frame is an open region.
type frame struct {
	start  int
	marker int
	slot   int
}

// Scan walks doc once and returns the folding ranges delimited by markers,
// ordered by Start.
func Scan(markers []marker.Marker, doc Document) []Range {
	ranges := []Range{}
	if len(markers) == 0 || doc == nil {
		return ranges
	}

	lineCount := doc.LineCount()

	// Each opened region reserves a slot in ranges so the output comes out in
	// start order; slots of unterminated regions are compacted away at the end.
	var stack []frame
	var filled []bool

	for i := 0; i < lineCount; i++ {
		line := doc.LineAt(i)

		if idx := firstBegin(markers, line); idx >= 0 {
			stack = append(stack, frame{start: i, marker: idx, slot: len(ranges)})
			ranges = append(ranges, Range{Start: i, Marker: idx})
			filled = append(filled, false)
			continue
		}

		if len(stack) == 0 {
			continue
		}

		top := stack[len(stack)-1]
		if markers[top.marker].End.MatchString(line) {
			stack = stack[:len(stack)-1]
			ranges[top.slot].End = i
			filled[top.slot] = true
		}
	}

	if len(stack) == 0 {
		return ranges
	}

	out := ranges[:0]
	for slot, r := range ranges {
		if filled[slot] {
			out = append(out, r)
		}
	}
	return out
}

// firstBegin returns the index of the first marker whose begin pattern
// matches line, or -1.
func firstBegin(markers []marker.Marker, line string) int {
	for idx := range markers {
		if markers[idx].Begin.MatchString(line) {
			return idx
		}
	}
	return -1
}
