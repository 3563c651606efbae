package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gofold/pkg/marker"
)

// yamlIndent matches the indentation of generated templates.
const yamlIndent = 2

// ToYAML encodes the persisted fields of c. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	out := make([]byte, 0, len(header)+2+len(body))
	out = append(out, strings.TrimRight(header, "\n")...)
	out = append(out, '\n', '\n')
	return append(out, body...), nil
}

// FromYAML decodes a configuration file. Absent fields stay zero so layered
// merging can tell them apart from defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Languages == nil {
		cfg.Languages = make(map[string]marker.Specs)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Markers = c.Markers.Clone()
	clone.ExtraMarkers = c.ExtraMarkers.Clone()
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	if c.Languages != nil {
		clone.Languages = maps.Clone(c.Languages)
		for lang, specs := range clone.Languages {
			clone.Languages[lang] = specs.Clone()
		}
	}
	return &clone
}
