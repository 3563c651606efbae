package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gofold/pkg/langdetect"
)

// Discover finds the files selected by opts. It returns a deterministically
// sorted, de-duplicated list of absolute file paths.
//
// Directories are walked recursively, skipping hidden entries, excluded
// paths, vendored directories (unless IncludeVendored) and files whose
// extension is not listed. Files named directly are kept unless excluded.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	walker := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.normalizedExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if linfo, lerr := os.Lstat(absPath); lerr == nil && linfo.Mode()&fs.ModeSymlink != 0 {
				// WalkDir does not descend into a symlinked root.
				if real, evalErr := filepath.EvalSymlinks(absPath); evalErr == nil {
					absPath = real
				}
			}
			if err := walker.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !walker.excluded(walker.rel(absPath)) {
			walker.add(absPath)
		}
	}

	slices.Sort(walker.files)

	return walker.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx        context.Context //nolint:containedctx // scoped to one Discover call
	workDir    string
	extensions []string
	opts       Options

	files []string
	seen  map[string]struct{}

	// visited holds resolved directory targets, so symlink cycles end.
	visited map[string]struct{}
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory, slash-separated.
func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

func (w *walker) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := w.visited[real]; done {
			return nil
		}
		w.visited[real] = struct{}{}
	}

	// Naming a vendored directory explicitly opts in to its contents.
	skipVendored := !w.opts.IncludeVendored && !langdetect.IsVendored(w.rel(root)+"/")

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.excluded(relPath) {
				return filepath.SkipDir
			}
			if skipVendored && langdetect.IsVendored(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink.
				return nil //nolint:nilerr // skipped silently
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible target, skipped silently
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || w.excluded(relPath) {
					return nil
				}
				return w.walk(realPath)
			}
		}

		if w.matches(path, relPath) {
			w.add(path)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// matches checks a walked file against the extension, exclude and include
// filters.
func (w *walker) matches(path, relPath string) bool {
	if len(w.extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(w.extensions, ext) {
			return false
		}
	}

	if w.excluded(relPath) {
		return false
	}

	if len(w.opts.IncludeGlobs) > 0 && !matchAny(relPath, w.opts.IncludeGlobs) {
		return false
	}

	return true
}

func (w *walker) excluded(relPath string) bool {
	return matchAny(relPath, w.opts.ExcludeGlobs)
}

// matchAny reports whether relPath matches one of the doublestar patterns.
// A pattern without a slash is also tried against the base name, so "*.min.js"
// excludes minified files at any depth.
func matchAny(relPath string, patterns []string) bool {
	base := relPath
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		base = relPath[idx+1:]
	}

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
