package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, marker.DialectRE2, cfg.Dialect)
	assert.Equal(t, config.DefaultMarkers(), cfg.Markers)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.NotNil(t, cfg.Languages)
}

func TestConfig_MarkersFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Languages["go"] = marker.Specs{{Begin: "// region", End: "// endregion"}}
	cfg.Languages["text"] = marker.Specs{}
	cfg.ExtraMarkers = marker.Specs{{Begin: "<<", End: ">>"}}

	assert.Equal(t, marker.Specs{
		{Begin: "// region", End: "// endregion"},
		{Begin: "<<", End: ">>"},
	}, cfg.MarkersFor("go"))

	assert.Equal(t, marker.Specs{
		{Begin: "#region", End: "#endregion"},
		{Begin: "<<", End: ">>"},
	}, cfg.MarkersFor("python"))

	assert.Equal(t, marker.Specs{{Begin: "<<", End: ">>"}}, cfg.MarkersFor("text"))

	// The returned list is independent of the config.
	got := cfg.MarkersFor("go")
	got[0].Begin = "changed"
	assert.Equal(t, "// region", cfg.Languages["go"][0].Begin)
}

func TestConfig_LanguageNames(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Languages["python"] = nil
	cfg.Languages["go"] = nil

	assert.Equal(t, []string{"go", "python"}, cfg.LanguageNames())
}

func TestConfig_EffectiveDialect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, marker.DialectRE2, (&config.Config{}).EffectiveDialect())
	assert.Equal(t, marker.DialectECMAScript, (&config.Config{Dialect: marker.DialectECMAScript}).EffectiveDialect())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# gofold configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err, "template must parse (full=%v)", full)
		assert.Equal(t, marker.DialectRE2, cfg.Dialect)
		assert.Equal(t, config.DefaultMarkers(), cfg.Markers)

		if full {
			assert.Equal(t, config.Presets(), cfg.Languages)
		} else {
			assert.Empty(t, cfg.Languages)
		}
	}
}

func TestPresets_Compile(t *testing.T) {
	t.Parallel()

	compiler := marker.NewCompiler(marker.DialectRE2)
	for lang, specs := range config.Presets() {
		for _, spec := range specs {
			_, err := compiler.CompileSpec(spec)
			assert.NoError(t, err, lang)
		}
	}
}
