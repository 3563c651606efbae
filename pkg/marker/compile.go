package marker

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// Dialect selects the regular expression engine used for marker patterns.
type Dialect string

const (
	// DialectRE2 compiles patterns with Go's regexp package (RE2 syntax,
	// linear-time matching).
	DialectRE2 Dialect = "re2"

	// DialectECMAScript compiles patterns with regexp2 in ECMAScript mode, for
	// markers written against an editor's JavaScript engine.
	DialectECMAScript Dialect = "ecmascript"
)

// DefaultMatchTimeout bounds a single ECMAScript match.
const DefaultMatchTimeout = 100 * time.Millisecond

// IsValid reports whether d names a supported dialect.
func (d Dialect) IsValid() bool {
	switch d {
	case DialectRE2, DialectECMAScript:
		return true
	default:
		return false
	}
}

// Compiler compiles specs for one dialect. The zero value compiles RE2.
type Compiler struct {
	dialect      Dialect
	matchTimeout time.Duration
}

// NewCompiler returns a compiler for dialect. Unknown or empty dialects fall
// back to RE2.
func NewCompiler(dialect Dialect) *Compiler {
	if !dialect.IsValid() {
		dialect = DialectRE2
	}
	return &Compiler{
		dialect:      dialect,
		matchTimeout: DefaultMatchTimeout,
	}
}

// Dialect returns the dialect the compiler uses.
func (c *Compiler) Dialect() Dialect {
	if c == nil || c.dialect == "" {
		return DialectRE2
	}
	return c.dialect
}

// Compile compiles specs in order, dropping any spec that is incomplete or
// fails to compile. The order of the result is the match priority.
func (c *Compiler) Compile(specs ...Spec) []Marker {
	markers := make([]Marker, 0, len(specs))
	for _, spec := range specs {
		m, err := c.CompileSpec(spec)
		if err != nil {
			continue
		}
		markers = append(markers, m)
	}
	return markers
}

// CompileSpec compiles a single spec.
func (c *Compiler) CompileSpec(spec Spec) (Marker, error) {
	beginSrc, endSrc, err := spec.Sources()
	if err != nil {
		return Marker{}, err
	}

	begin, err := c.compilePattern(beginSrc)
	if err != nil {
		return Marker{}, fmt.Errorf("%w: begin %q: %w", ErrInvalidPattern, beginSrc, err)
	}

	end, err := c.compilePattern(endSrc)
	if err != nil {
		return Marker{}, fmt.Errorf("%w: end %q: %w", ErrInvalidPattern, endSrc, err)
	}

	return Marker{Begin: begin, End: end, Spec: spec}, nil
}

func (c *Compiler) compilePattern(src string) (Pattern, error) {
	if c.Dialect() == DialectECMAScript {
		re, err := regexp2.Compile(src, regexp2.ECMAScript)
		if err != nil {
			return nil, err
		}
		timeout := c.matchTimeout
		if timeout <= 0 {
			timeout = DefaultMatchTimeout
		}
		re.MatchTimeout = timeout
		return ecmaPattern{re: re}, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// ecmaPattern adapts regexp2 to Pattern. A match error (including a timeout)
// counts as no match.
type ecmaPattern struct {
	re *regexp2.Regexp
}

func (p ecmaPattern) MatchString(line string) bool {
	ok, err := p.re.MatchString(line)
	return err == nil && ok
}

// Compile compiles specs with an RE2 compiler.
func Compile(specs ...Spec) []Marker {
	return NewCompiler(DialectRE2).Compile(specs...)
}
