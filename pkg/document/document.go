// Package document provides an immutable, line-indexed view of a text file
// that satisfies fold.Document. Lines end at LF, CRLF or a lone CR.
package document

import (
	"context"
	"fmt"

	"github.com/yaklabco/gofold/pkg/fsutil"
)

// Snapshot is an immutable view of a file's content at a specific time.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo holds the byte offsets of a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a line without a trailing newline it equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// New creates a Snapshot and builds its line index.
func New(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// FromString creates an in-memory Snapshot.
func FromString(content string) *Snapshot {
	return New("", []byte(content))
}

// Load reads path and returns its snapshot.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return New(path, content), nil
}

// BuildLines constructs line metadata from file content. LF, CRLF and a
// lone CR all end a line, as in editors. Content ending in a terminator has
// a final empty line.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]
		if char != '\n' && char != '\r' {
			continue
		}

		newlineStart := idx
		if char == '\r' && idx+1 < len(content) && content[idx+1] == '\n' {
			idx++
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// LineAt returns the text of the zero-based line index, without its
// terminator. It panics if index is out of range, like a slice index.
func (s *Snapshot) LineAt(index int) string {
	info := s.Lines[index]
	return string(s.Content[info.StartOffset:info.NewlineStart])
}

// LineContent returns the content of a 1-based line number, excluding the
// newline. Returns nil if the line number is out of range.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	info := s.Lines[line-1]
	return s.Content[info.StartOffset:info.NewlineStart]
}
