// Package document loads the YAML and JSON files the CLI diffs and patches.
// A document is either a sequence of scalars or a mapping of string keys to
// scalars; scalars are carried as their string form.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/keyed"
)

// Kind is the shape of a document.
type Kind int

const (
	// KindList is a top-level sequence.
	KindList Kind = iota
	// KindMap is a top-level mapping.
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	if k == KindMap {
		return "map"
	}
	return "list"
}

// Document is a loaded input file.
type Document struct {
	Path    string
	Kind    Kind
	Items   []string
	Entries []keyed.Entry[string, string]
}

// Map returns the entries of a map document.
func (d *Document) Map() map[string]string {
	m := make(map[string]string, len(d.Entries))
	for _, e := range d.Entries {
		m[e.Key] = e.Value
	}
	return m
}

// Len returns the number of items or entries.
func (d *Document) Len() int {
	if d.Kind == KindMap {
		return len(d.Entries)
	}
	return len(d.Items)
}

// Load reads and parses the file at path. The path "-" reads from stdin.
func Load(path string) (*Document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse decodes YAML or JSON data. JSON input is read by the YAML decoder,
// so name only labels errors.
func Parse(data []byte, name string) (*Document, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapParse(formatOf(name), name, err)
	}

	doc := &Document{Path: name}
	switch v := root.(type) {
	case nil:
		return doc, nil
	case []any:
		doc.Items = make([]string, len(v))
		for i, item := range v {
			s, err := scalar(item)
			if err != nil {
				return nil, errors.NewParseError(formatOf(name), name, fmt.Sprintf("item %d: %v", i, err), err)
			}
			doc.Items[i] = s
		}
		return doc, nil
	case map[string]any, map[any]any:
		doc.Kind = KindMap
		entries, err := orderedEntries(data)
		if err != nil {
			return nil, errors.WrapParse(formatOf(name), name, err)
		}
		doc.Entries = entries
		return doc, nil
	default:
		return nil, errors.NewParseError(formatOf(name), name, fmt.Sprintf("top level is %T, want a list or a map", root), nil)
	}
}

// orderedEntries decodes a mapping again as a MapSlice to keep key order.
func orderedEntries(data []byte) ([]keyed.Entry[string, string], error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, err
	}
	entries := make([]keyed.Entry[string, string], 0, len(ms))
	for _, item := range ms {
		v, err := scalar(item.Value)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", item.Key, err)
		}
		entries = append(entries, keyed.Entry[string, string]{Key: fmt.Sprint(item.Key), Value: v})
	}
	return entries, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []any, map[string]any, map[any]any, yaml.MapSlice:
		return "", errors.NewValidationError("value", v, "nested collections are not supported")
	default:
		return fmt.Sprint(x), nil
	}
}

// Marshal renders a document in format ("yaml" or "json"). Map documents keep
// their entry order in YAML; JSON objects come out sorted by key.
func (d *Document) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d.value()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "yaml", "":
		return yaml.MarshalWithOptions(d.yamlValue(), yaml.Indent(2), yaml.IndentSequence(false))
	default:
		return nil, errors.NewValidationError("format", format, "documents are written as yaml or json")
	}
}

func (d *Document) value() any {
	if d.Kind == KindMap {
		return d.Map()
	}
	if d.Items == nil {
		return []string{}
	}
	return d.Items
}

func (d *Document) yamlValue() any {
	if d.Kind != KindMap {
		return d.value()
	}
	ms := make(yaml.MapSlice, 0, len(d.Entries))
	for _, e := range d.Entries {
		ms = append(ms, yaml.MapItem{Key: e.Key, Value: e.Value})
	}
	return ms
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.WrapIO("read", "stdin", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

func formatOf(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return "json"
	}
	return "yaml"
}
