// Package cli provides the Cobra command structure for gofold.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root gofold command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gofold",
		Short: "Compute folding ranges from begin/end marker comments",
		Long: `gofold finds foldable regions in text files. A region starts on a line
matching a begin marker and ends on the next line matching the same pair's
end marker; regions nest. Markers are literal text or regular expressions,
configured globally and per language.

Results are printed for people (text, table, summary) or as LSP-style
folding ranges (json) for editors and scripts.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !pretty.IsValidColorMode(globals.color) {
				return usageErrorf("invalid --color %q: must be auto, always, or never", globals.color)
			}

			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&globals.noConfig, "no-config", false,
		"ignore system, user and project config files (--config is still read)")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFoldCommand(globals))
	rootCmd.AddCommand(newMarkersCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
