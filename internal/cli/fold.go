package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
	"github.com/yaklabco/gofold/pkg/reporter"
	"github.com/yaklabco/gofold/pkg/runner"
)

type foldFlags struct {
	format          string
	dialect         string
	jobs            int
	ignore          []string
	include         []string
	extensions      []string
	begin           []string
	end             []string
	beginRegex      []string
	endRegex        []string
	followSymlinks  bool
	includeVendored bool
	skipGenerated   bool
	noContext       bool
	noSummary       bool
	showSkipped     bool
	flat            bool
	compact         bool
}

func newFoldCommand(globals *globalFlags) *cobra.Command {
	flags := &foldFlags{}

	cmd := &cobra.Command{
		Use:   "fold [paths...]",
		Short: "Print the folding ranges of files",
		Long:  foldLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, globals, flags)
		},
	}

	addFoldFlags(cmd, flags)

	return cmd
}

const foldLongDescription = `Scan files for begin/end marker pairs and print the folding ranges.

By default, scans every text file under the current directory, skipping
hidden, vendored and binary files. Specify paths to scan specific files or
directories.

Examples:
  gofold fold                                 # Scan current directory
  gofold fold src/ --ext .go --ext .ts        # Only Go and TypeScript files
  gofold fold main.go --format json           # LSP-style ranges for editors
  gofold fold --begin '{{{' --end '}}}'       # Add a literal marker pair
  gofold fold --begin-regex '^\s*// <<' --end-regex '^\s*// >>'
  gofold fold --format table --no-context     # Tabular overview`

func runFold(cmd *cobra.Command, args []string, globals *globalFlags, flags *foldFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.toConfig(cmd)
	if err != nil {
		return err
	}

	loadResult, workDir, err := loadConfig(ctx, globals, cliCfg)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.IncludeGlobs = flags.include
	runOpts.IncludeVendored = flags.includeVendored
	runOpts.SkipGenerated = flags.skipGenerated

	logger.Debug("starting fold run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("fold run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       globals.color,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		ShowSkipped: flags.showSkipped,
		GroupByFile: !flags.flat,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}

	return nil
}

// toConfig converts the flags that were explicitly set into a CLI-layer
// config. Unset flags stay zero so lower layers show through.
func (f *foldFlags) toConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseFormat(f.format)
		if err != nil {
			return nil, usageErrorf("%v", err)
		}
		cfg.Format = format
	}

	if changed("dialect") {
		dialect := marker.Dialect(f.dialect)
		if !dialect.IsValid() {
			return nil, usageErrorf("invalid --dialect %q: must be re2 or ecmascript", f.dialect)
		}
		cfg.Dialect = dialect
	}

	if f.jobs < 0 {
		return nil, usageErrorf("--jobs must not be negative")
	}
	cfg.Jobs = f.jobs
	cfg.FollowSymlinks = f.followSymlinks

	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("ext") {
		cfg.Extensions = f.extensions
	}

	extra, err := pairMarkers(f.begin, f.end, f.beginRegex, f.endRegex)
	if err != nil {
		return nil, err
	}
	cfg.ExtraMarkers = extra

	return cfg, nil
}

// pairMarkers zips the repeatable marker flags into specs: literal pairs
// first, then regex pairs, each in flag order.
func pairMarkers(begin, end, beginRegex, endRegex []string) (marker.Specs, error) {
	if len(begin) != len(end) {
		return nil, usageErrorf("--begin given %d times but --end %d times", len(begin), len(end))
	}
	if len(beginRegex) != len(endRegex) {
		return nil, usageErrorf("--begin-regex given %d times but --end-regex %d times",
			len(beginRegex), len(endRegex))
	}

	if len(begin)+len(beginRegex) == 0 {
		return nil, nil
	}

	specs := make(marker.Specs, 0, len(begin)+len(beginRegex))
	for i := range begin {
		specs = append(specs, marker.Spec{Begin: begin[i], End: end[i]})
	}
	for i := range beginRegex {
		specs = append(specs, marker.Spec{BeginRegex: beginRegex[i], EndRegex: endRegex[i]})
	}
	return specs, nil
}

func addFoldFlags(cmd *cobra.Command, flags *foldFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "re2", "regex dialect for regex markers: re2, ecmascript")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore (replaces configured patterns)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only scan files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to scan when walking directories")
	cmd.Flags().StringArrayVar(&flags.begin, "begin", nil, "literal begin marker (pairs with --end; repeatable)")
	cmd.Flags().StringArrayVar(&flags.end, "end", nil, "literal end marker (pairs with --begin; repeatable)")
	cmd.Flags().StringArrayVar(&flags.beginRegex, "begin-regex", nil, "begin marker pattern (pairs with --end-regex; repeatable)")
	cmd.Flags().StringArrayVar(&flags.endRegex, "end-regex", nil, "end marker pattern (pairs with --begin-regex; repeatable)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "scan vendored directories such as vendor/ and node_modules/")
	cmd.Flags().BoolVar(&flags.skipGenerated, "skip-generated", false, "skip files that look machine-generated")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide the opening line of each range")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "list files that were not scanned")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "print one path:start-end line per range instead of grouping by file")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}
