package runner_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/document"
	"github.com/yaklabco/gofold/pkg/fold"
	"github.com/yaklabco/gofold/pkg/marker"
	"github.com/yaklabco/gofold/pkg/runner"
)

const goSource = `package main

// region setup
func setup() {}
// endregion

#region
#endregion
`

const pySource = `# region imports
import os
# endregion
#region
x = 1
#endregion
`

func TestRun_PerLanguageMarkers(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"main.go":  goSource,
		"tool.py":  pySource,
		"notes.md": "nothing here\n",
	})

	cfg := config.NewConfig()
	cfg.Languages["go"] = marker.Specs{{Begin: "// region", End: "// endregion"}}

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	byPath := make(map[string]runner.FileOutcome)
	for _, outcome := range result.Files {
		byPath[outcome.DisplayPath] = outcome
	}

	goOutcome := byPath["main.go"]
	assert.Equal(t, "go", goOutcome.Language)
	assert.Equal(t, []fold.Range{{Start: 2, End: 4, Marker: 0}}, goOutcome.Ranges,
		"go files use only their own markers")
	spec, ok := goOutcome.MarkerFor(goOutcome.Ranges[0])
	require.True(t, ok)
	assert.Equal(t, "// region", spec.Begin)

	pyOutcome := byPath["tool.py"]
	assert.Equal(t, "python", pyOutcome.Language)
	assert.Equal(t, []fold.Range{{Start: 3, End: 5, Marker: 0}}, pyOutcome.Ranges,
		"other languages use the default markers")
	require.NotNil(t, pyOutcome.Snapshot)

	assert.Empty(t, byPath["notes.md"].Ranges)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithRanges)
	assert.Equal(t, 2, result.Stats.RangesTotal)
	assert.Equal(t, map[string]int{"go": 1, "python": 1}, result.Stats.RangesByLanguage)
	assert.True(t, result.HasRanges())
	assert.False(t, result.HasErrors())
}

func TestRun_ExtraMarkersAndDialect(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"a.txt": "{{\n<<\n>>\n}}\n#region-x\n#endregion\n",
	})

	cfg := config.NewConfig()
	cfg.Dialect = marker.DialectECMAScript
	cfg.Markers = marker.Specs{{BeginRegex: `^#region(?!-)`, EndRegex: `^#endregion`}}
	cfg.ExtraMarkers = marker.Specs{{Begin: "{{", End: "}}"}, {Begin: "<<", End: ">>"}}

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Equal(t, []fold.Range{
		{Start: 0, End: 3, Marker: 1},
		{Start: 1, End: 2, Marker: 2},
	}, result.Files[0].Ranges)
}

func TestRun_OrderIsDiscoveryOrder(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 40 {
		files[fmt.Sprintf("f%02d.txt", i)] = strings.Repeat("#region\n#endregion\n", i%3)
	}
	dir := makeTree(t, files)

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)
	require.Len(t, result.Files, 40)

	for i, outcome := range result.Files {
		assert.Equal(t, fmt.Sprintf("f%02d.txt", i), outcome.DisplayPath)
		assert.Len(t, outcome.Ranges, i%3)
	}
}

func TestRun_SkipsBinary(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"blob.bin": "#region\x00\x01\x02\n#endregion\n",
		"ok.txt":   "#region\n#endregion\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.True(t, result.Files[0].Skipped)
	assert.Equal(t, runner.SkipBinary, result.Files[0].SkipReason)
	assert.Nil(t, result.Files[0].Ranges)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRun_SkipGenerated(t *testing.T) {
	t.Parallel()

	generated := "// Code generated by stringer; DO NOT EDIT.\n\npackage main\n\n#region\n#endregion\n"
	dir := makeTree(t, map[string]string{
		"kind_string.go": generated,
		"main.go":        "package main\n\n#region\n#endregion\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.False(t, result.Files[0].Skipped, "generated files are scanned unless asked otherwise")
	assert.Len(t, result.Files[0].Ranges, 1)

	result, err = runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, SkipGenerated: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, "kind_string.go", result.Files[0].DisplayPath)
	assert.True(t, result.Files[0].Skipped)
	assert.Equal(t, runner.SkipGenerated, result.Files[0].SkipReason)
	assert.False(t, result.Files[1].Skipped)
	assert.Len(t, result.Files[1].Ranges, 1)
}

func TestRun_RecordsFileErrors(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.txt": "", "b.txt": "#region\n#endregion\n"})
	errRead := errors.New("read refused")

	r := &runner.Runner{
		Load: func(ctx context.Context, path string) (*document.Snapshot, error) {
			if filepath.Base(path) == "a.txt" {
				return nil, errRead
			}
			return document.Load(ctx, path)
		},
	}

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.ErrorIs(t, result.Files[0].Error, errRead)
	assert.Len(t, result.Files[1].Ranges, 1)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasRanges())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"a.txt": "#region\n#endregion\n"})

	ctx, cancel := context.WithCancel(context.Background())
	r := &runner.Runner{
		Load: func(ctx context.Context, path string) (*document.Snapshot, error) {
			cancel()
			return document.Load(ctx, path)
		},
	}

	_, err := r.Run(ctx, runner.Options{WorkingDir: dir, Jobs: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{".go"}
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 2
	cfg.FollowSymlinks = true

	opts := runner.OptionsFromConfig(cfg, []string{"src"})
	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, cfg.Extensions, opts.Extensions)
	assert.Equal(t, cfg.Ignore, opts.ExcludeGlobs)
	assert.Equal(t, 2, opts.Jobs)
	assert.True(t, opts.FollowSymlinks)
	assert.Same(t, cfg, opts.Config)
}
