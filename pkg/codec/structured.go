package codec

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/delta/pkg/errors"
)

// MarshalJSON renders a changeset as indented JSON.
func MarshalJSON[C any](changes C) ([]byte, error) {
	return json.MarshalIndent(changes, "", "  ")
}

// UnmarshalJSON parses a changeset rendered by MarshalJSON.
func UnmarshalJSON[C any](data []byte) (C, error) {
	var changes C
	if err := json.Unmarshal(data, &changes); err != nil {
		return changes, errors.WrapParse("json", "", err)
	}
	return changes, nil
}

// MarshalYAML renders a changeset as YAML.
func MarshalYAML[C any](changes C) ([]byte, error) {
	return yaml.Marshal(changes)
}

// UnmarshalYAML parses a changeset rendered by MarshalYAML.
func UnmarshalYAML[C any](data []byte) (C, error) {
	var changes C
	if err := yaml.Unmarshal(data, &changes); err != nil {
		return changes, errors.WrapParse("yaml", "", err)
	}
	return changes, nil
}
