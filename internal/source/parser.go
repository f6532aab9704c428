package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/capegen-labs/capegen/internal/caperr"
	"go.yaml.in/yaml/v3"
)

// Document is a parsed source list. It is never mutated after Parse.
type Document struct {
	entries []rawEntry
}

// Parse decodes a source list. Entries keep their document order.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of entries", top.Line)
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], resolveAlias(top.Content[i+1])
		e := rawEntry{key: key.Value, node: val}
		if val.Kind == yaml.MappingNode {
			var head struct {
				Type string `yaml:"type"`
			}
			if err := val.Decode(&head); err != nil {
				return nil, fmt.Errorf("entry %q: %w", key.Value, err)
			}
			e.typ = head.Type
		}
		doc.entries = append(doc.entries, e)
	}
	return doc, nil
}

// Keys returns the entry names in document order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// Active returns the single entry whose type contains Marker. Zero or several
// matches are schema errors.
func (d *Document) Active() (*Entry, error) {
	var matches []rawEntry
	for _, e := range d.entries {
		if strings.Contains(e.typ, Marker) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, caperr.New(caperr.KindSchema, "no entry has a type containing %q (entries: %s)",
			Marker, strings.Join(d.Keys(), ", "))
	case 1:
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.key
		}
		sort.Strings(names)
		return nil, caperr.New(caperr.KindSchema,
			"%d entries have a type containing %q (%s); exactly one is allowed",
			len(matches), Marker, strings.Join(names, ", "))
	}

	m := matches[0]
	var entry Entry
	if err := m.node.Decode(&entry); err != nil {
		return nil, caperr.Wrap(caperr.KindSchema, err, "decoding entry %q", m.key)
	}
	entry.Key = m.key
	return &entry, nil
}

// Load reads, validates and parses the source list at path and returns its
// custom-source entry.
func Load(path string) (*Entry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, caperr.Wrap(caperr.KindInput, err, "parsing %s", path)
	}
	if !result.Valid {
		return nil, caperr.New(caperr.KindSchema, "%s does not describe a valid cape:\n%s", path, result.Summary())
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, caperr.Wrap(caperr.KindInput, err, "parsing %s", path)
	}
	return doc.Active()
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, caperr.New(caperr.KindInputNotFound, "the path specified for the YAML input file does not exist: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, caperr.Wrap(caperr.KindInput, err, "reading file %s", path)
	}
	return data, nil
}
