package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/internal/cli"
	"github.com/yaklabco/gofold/pkg/config"
)

func TestInit_WritesTemplate(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".gofold.yml")

	_, stderr, code := execute(t, "init", "--output", output)
	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stderr, "created configuration file")

	content, err := os.ReadFile(output)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMarkers(), cfg.Markers)
	assert.Empty(t, cfg.Languages)
}

func TestInit_Full(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "full.yml")

	_, _, code := execute(t, "init", "--full", "-o", output)
	require.Equal(t, cli.ExitSuccess, code)

	content, err := os.ReadFile(output)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.Presets(), cfg.Languages)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".gofold.yml")
	require.NoError(t, os.WriteFile(output, []byte("# mine\n"), 0o644))

	_, _, code := execute(t, "init", "--output", output)
	assert.Equal(t, cli.ExitInvalidUsage, code)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(content))

	_, stderr, code := execute(t, "init", "--force", "--output", output)
	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stderr, "overwriting existing file")
}
