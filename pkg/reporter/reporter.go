// Package reporter writes folding results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/runner"
)

// Reporter formats and writes folding results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of ranges reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatTable:
		return NewTableReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// countRanges returns the number of ranges in result.
func countRanges(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var total int
	for i := range result.Files {
		total += len(result.Files[i].Ranges)
	}
	return total
}
