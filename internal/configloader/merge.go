package configloader

import (
	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/marker"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when non-zero
//   - Languages: merged per key, override's lists replace base's
//   - Slices: override replaces base entirely when non-nil
//
// Neither input is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Dialect != "" {
		result.Dialect = override.Dialect
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	// false is indistinguishable from unset, so a higher layer can only enable.
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}

	if override.Markers != nil {
		result.Markers = override.Markers.Clone()
	}
	if override.ExtraMarkers != nil {
		result.ExtraMarkers = override.ExtraMarkers.Clone()
	}
	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	if len(override.Languages) > 0 && result.Languages == nil {
		result.Languages = make(map[string]marker.Specs, len(override.Languages))
	}
	for lang, specs := range override.Languages {
		result.Languages[lang] = specs.Clone()
	}

	return result
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0].Clone()
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
