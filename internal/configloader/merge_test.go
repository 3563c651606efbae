package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("nil handling", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		assert.Equal(t, cfg, merge(nil, cfg))
		assert.Equal(t, cfg, merge(cfg, nil))
	})

	t.Run("zero values do not override", func(t *testing.T) {
		t.Parallel()

		base := config.NewConfig()
		base.Ignore = []string{"vendor/**"}
		base.Jobs = 4

		result := merge(base, &config.Config{})
		assert.Equal(t, base, result)
	})

	t.Run("languages merge per key", func(t *testing.T) {
		t.Parallel()

		base := config.NewConfig()
		base.Languages["go"] = marker.Specs{{Begin: "// region", End: "// endregion"}}
		base.Languages["python"] = marker.Specs{{Begin: "# region", End: "# endregion"}}

		override := &config.Config{Languages: map[string]marker.Specs{
			"go": {{Begin: "//{{", End: "//}}"}},
		}}

		result := merge(base, override)
		assert.Equal(t, marker.Specs{{Begin: "//{{", End: "//}}"}}, result.Languages["go"])
		assert.Equal(t, base.Languages["python"], result.Languages["python"])
		assert.Equal(t, "// region", base.Languages["go"][0].Begin, "base is not modified")
	})

	t.Run("slices replace", func(t *testing.T) {
		t.Parallel()

		base := config.NewConfig()
		base.Extensions = []string{".go", ".py"}

		result := merge(base, &config.Config{Extensions: []string{".ts"}, Markers: marker.Specs{}})
		assert.Equal(t, []string{".ts"}, result.Extensions)
		assert.Empty(t, result.Markers)
		assert.NotEmpty(t, base.Markers)
	})

	t.Run("scalars override", func(t *testing.T) {
		t.Parallel()

		result := merge(config.NewConfig(), &config.Config{
			Dialect:        marker.DialectECMAScript,
			Format:         config.FormatJSON,
			FollowSymlinks: true,
		})
		assert.Equal(t, marker.DialectECMAScript, result.Dialect)
		assert.Equal(t, config.FormatJSON, result.Format)
		assert.True(t, result.FollowSymlinks)
	})
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	result := MergeAll(
		config.NewConfig(),
		&config.Config{Jobs: 2},
		&config.Config{Jobs: 5, Format: config.FormatTable},
	)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Jobs)
	assert.Equal(t, config.FormatTable, result.Format)
	assert.Equal(t, marker.DialectRE2, result.Dialect)
}
