package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/configloader"
	"github.com/yaklabco/gofold/pkg/runner"
)

// Exit codes for gofold.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFilesFailed indicates that at least one input could not be read.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrFilesFailed is returned when one or more files could not be processed.
	// The per-file errors have already been reported.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrUsage marks errors caused by invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")
)

// usageErrorf returns an error wrapping ErrUsage.
func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// noArgs is cobra.NoArgs reporting a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageErrorf("%v", err)
	}
	return nil
}

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFilesFailed
	}
	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitFilesFailed
	default:
		return ExitInternalError
	}
}
