package marker

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Specs is an ordered list of marker specs. In YAML it may be written as a
// single mapping or as a sequence of mappings.
type Specs []Spec

// UnmarshalYAML accepts a single spec or a sequence of specs. Sequence
// elements that do not decode as a spec are dropped.
func (s *Specs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var spec Spec
		if err := node.Decode(&spec); err != nil {
			*s = Specs{}
			return nil //nolint:nilerr // malformed specs contribute nothing
		}
		*s = Specs{spec}
		return nil

	case yaml.SequenceNode:
		specs := make(Specs, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				continue
			}
			var spec Spec
			if err := item.Decode(&spec); err != nil {
				continue
			}
			specs = append(specs, spec)
		}
		*s = specs
		return nil

	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
		return fmt.Errorf("line %d: markers must be a mapping or a list of mappings", node.Line)

	case yaml.AliasNode:
		if node.Alias != nil {
			return s.UnmarshalYAML(node.Alias)
		}
		return nil

	default:
		return fmt.Errorf("line %d: markers must be a mapping or a list of mappings", node.Line)
	}
}

// Clone returns a copy of the list.
func (s Specs) Clone() Specs {
	if s == nil {
		return nil
	}
	out := make(Specs, len(s))
	copy(out, s)
	return out
}
