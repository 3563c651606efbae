package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/document"
	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/langdetect"
	"github.com/yaklabco/gofold/pkg/marker"
)

// Runner orchestrates folding across many files.
type Runner struct {
	// Load reads a file into a snapshot. Defaults to document.Load.
	Load func(ctx context.Context, path string) (*document.Snapshot, error)
}

// New creates a Runner that reads files from disk.
func New() *Runner {
	return &Runner{Load: document.Load}
}

// markerSet is one compiled marker list and the specs it was built from.
type markerSet struct {
	provider *fold.Provider
	specs    []marker.Spec
}

// providerSet holds the compiled marker sets of one run: the default set and
// one per configured language. It is read-only once built.
type providerSet struct {
	fallback  markerSet
	languages map[string]markerSet
}

func newProviderSet(cfg *config.Config) *providerSet {
	compiler := marker.NewCompiler(cfg.EffectiveDialect())

	build := func(specs marker.Specs) markerSet {
		provider := fold.NewProviderFromSpecs(compiler, specs...)
		compiled := provider.Markers()
		out := make([]marker.Spec, len(compiled))
		for i, m := range compiled {
			out[i] = m.Spec
		}
		return markerSet{provider: provider, specs: out}
	}

	set := &providerSet{
		fallback:  build(cfg.MarkersFor("")),
		languages: make(map[string]markerSet, len(cfg.Languages)),
	}
	for _, lang := range cfg.LanguageNames() {
		set.languages[lang] = build(cfg.MarkersFor(lang))
	}
	return set
}

func (s *providerSet) forLanguage(lang string) markerSet {
	if set, ok := s.languages[lang]; ok {
		return set
	}
	return s.fallback
}

// Run discovers files under opts.Paths and scans them concurrently.
// Outcomes are returned in discovery order. Per-file failures are recorded
// on the outcome; only discovery errors and cancellation are returned. On
// cancellation the partial result is returned alongside the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	providers := newProviderSet(cfg)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcomes[i] = r.processFile(groupCtx, path, providers, opts.SkipGenerated)
			outcomes[i].DisplayPath = displayPath(workDir, path)
			done[i] = true
			return nil
		})
	}

	// Workers never return errors; file failures live on the outcomes.
	_ = group.Wait()

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldRangesTotal, result.Stats.RangesTotal,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// processFile reads, classifies and scans one file.
func (r *Runner) processFile(ctx context.Context, path string, providers *providerSet, skipGenerated bool) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	load := r.Load
	if load == nil {
		load = document.Load
	}

	snap, err := load(ctx, path)
	if err != nil {
		logger.Debug("read failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	switch {
	case langdetect.IsBinary(snap.Content):
		outcome.SkipReason = SkipBinary
	case skipGenerated && langdetect.IsGenerated(path, snap.Content):
		outcome.SkipReason = SkipGenerated
	}
	if outcome.SkipReason != "" {
		logger.Debug("skipped", logging.FieldReason, outcome.SkipReason)
		outcome.Skipped = true
		return outcome
	}

	outcome.Language = langdetect.Detect(path, snap.Content)
	set := providers.forLanguage(outcome.Language)

	outcome.Snapshot = snap
	outcome.Markers = set.specs
	outcome.Ranges = set.provider.FoldingRanges(snap)

	logger.Debug("scanned",
		logging.FieldLanguage, outcome.Language,
		logging.FieldMarkers, len(set.specs),
		logging.FieldRanges, len(outcome.Ranges),
	)

	return outcome
}

func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
