package source

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Marker is the substring identifying the custom-source entry's type.
const Marker = "custom-source"

// Entry is the typed custom-source record.
type Entry struct {
	Key            string       `yaml:"-" json:"key"`
	Type           string       `yaml:"type" json:"type"`
	CapeTemplate   string       `yaml:"cape-template" json:"cape-template"`
	CapeName       string       `yaml:"cape-name" json:"cape-name"`
	NewProjectPath string       `yaml:"new-project-path" json:"new-project-path"`
	BuildOpts      BuildOptions `yaml:"build-opts,omitempty" json:"build-opts,omitempty"`
}

// BuildOptions maps option names to the raw scalar text written in the
// document, so `version: 1.0` stays "1.0" rather than a float.
type BuildOptions map[string]string

// UnmarshalYAML keeps each option value as its literal scalar text. Aliases
// and merge keys are resolved the way a plain decode would resolve them.
func (b *BuildOptions) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*b = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: build-opts must be a mapping", value.Line)
	}

	opts := make(BuildOptions, len(value.Content)/2)
	if err := opts.collect(value, false); err != nil {
		return err
	}
	*b = opts
	return nil
}

// collect adds the options of mapping m. Keys set directly in a mapping win
// over merged ones; with keepExisting, keys already present are not replaced.
func (b BuildOptions) collect(m *yaml.Node, keepExisting bool) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], resolveAlias(m.Content[i+1])
		if k.Tag == "!!merge" {
			merges = append(merges, v)
			continue
		}
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: build option %q must be a scalar", v.Line, k.Value)
		}
		if _, ok := b[k.Value]; ok && keepExisting {
			continue
		}
		if v.Tag == "!!null" {
			b[k.Value] = ""
			continue
		}
		b[k.Value] = v.Value
	}

	for _, src := range merges {
		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = sources[:0]
			for _, n := range src.Content {
				sources = append(sources, resolveAlias(n))
			}
		}
		for _, s := range sources {
			if s.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: build-opts merge source must be a mapping", s.Line)
			}
			if err := b.collect(s, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveAlias follows alias nodes to the node they point at.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// rawEntry is one top-level record before typed decoding. Only the
// custom-source record is ever decoded in full.
type rawEntry struct {
	key  string
	typ  string
	node *yaml.Node
}
