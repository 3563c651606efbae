// Package marker turns user-supplied begin/end marker definitions into
// compiled pattern pairs.
//
// A Spec is either a literal pair (Begin/End), which is escaped before
// compilation, or a regex pair (BeginRegex/EndRegex), which is compiled as
// written. Specs that are incomplete or fail to compile are
// dropped silently by Compile; CompileSpec exposes the reason for callers
// (such as configuration validation) that want to report it.
package marker

import (
	"errors"
	"strings"
)

var (
	// ErrIncompleteSpec is returned when a spec carries neither a complete
	// regex pair nor a complete literal pair.
	ErrIncompleteSpec = errors.New("marker spec needs begin/end or beginRegex/endRegex")

	// ErrInvalidPattern is returned when a begin or end pattern fails to compile.
	ErrInvalidPattern = errors.New("invalid marker pattern")
)

// Shape describes which form of a Spec is honored.
type Shape string

const (
	// ShapeNone is a spec with neither a complete regex pair nor a complete
	// literal pair. It never compiles.
	ShapeNone Shape = "none"

	// ShapeRegex is a spec compiled from BeginRegex/EndRegex as written.
	ShapeRegex Shape = "regex"

	// ShapeLiteral is a spec compiled from Begin/End after escaping.
	ShapeLiteral Shape = "literal"
)

// Spec is one marker pair as written in configuration.
type Spec struct {
	Begin      string `json:"begin,omitempty" yaml:"begin,omitempty"`
	End        string `json:"end,omitempty" yaml:"end,omitempty"`
	BeginRegex string `json:"beginRegex,omitempty" yaml:"beginRegex,omitempty"`
	EndRegex   string `json:"endRegex,omitempty" yaml:"endRegex,omitempty"`
}

// Shape reports which form of the spec will be compiled. The regex form wins
// when both are complete.
func (s Spec) Shape() Shape {
	switch {
	case s.BeginRegex != "" && s.EndRegex != "":
		return ShapeRegex
	case s.Begin != "" && s.End != "":
		return ShapeLiteral
	default:
		return ShapeNone
	}
}

// Sources returns the begin and end regex sources that will be compiled for
// the spec, escaping literal text where needed.
func (s Spec) Sources() (string, string, error) {
	switch s.Shape() {
	case ShapeRegex:
		return s.BeginRegex, s.EndRegex, nil
	case ShapeLiteral:
		return Escape(s.Begin), Escape(s.End), nil
	default:
		return "", "", ErrIncompleteSpec
	}
}

// String renders the spec for logs and listings.
func (s Spec) String() string {
	switch s.Shape() {
	case ShapeRegex:
		return "/" + s.BeginRegex + "/ … /" + s.EndRegex + "/"
	case ShapeLiteral:
		return s.Begin + " … " + s.End
	default:
		return "<incomplete>"
	}
}

// Pattern is a compiled expression tested against a single line.
type Pattern interface {
	MatchString(line string) bool
}

// Marker is a compiled begin/end pair. It is immutable once built and safe
// for concurrent use.
type Marker struct {
	Begin Pattern
	End   Pattern

	// Spec is the configuration the marker was compiled from.
	Spec Spec
}

// metaChars is the set of characters escaped in literal markers.
const metaChars = `-|\{}()[]^$+*?.`

// Escape returns s with every regex metacharacter backslash-escaped so the
// result matches s literally. It works on bytes: all metacharacters are
// ASCII, and any other byte, valid UTF-8 or not, is copied unchanged.
func Escape(s string) string {
	if !strings.ContainsAny(s, metaChars) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(metaChars, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
