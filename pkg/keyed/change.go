package keyed

import (
	"fmt"

	"github.com/agentstation/delta/pkg/errors"
)

// Op identifies the kind of a keyed change. The numeric values are the
// discriminants used by binary codecs.
type Op uint8

const (
	// OpInsert sets Key to Value.
	OpInsert Op = iota
	// OpRemove deletes Key. Value carries the removed value.
	OpRemove
	// OpReplace resets the map to Entries.
	OpReplace
	// OpChange applies a nested changeset to the value stored at Key.
	// Only recursive changesets carry it.
	OpChange
)

var opNames = [...]string{
	OpInsert:  "insert",
	OpRemove:  "remove",
	OpReplace: "replace",
	OpChange:  "change",
}

// String returns the name of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if int(o) >= len(opNames) {
		return nil, errors.NewOpError("keyed", uint8(o))
	}
	return []byte(opNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == string(text) {
			*o = Op(i)
			return nil
		}
	}
	return errors.NewValidationError("op", string(text), "unknown keyed operation")
}

// Change is one edit in a keyed changeset.
type Change[K comparable, V any] struct {
	Op      Op      `json:"op" yaml:"op"`
	Key     K       `json:"key,omitempty" yaml:"key,omitempty"`
	Value   V       `json:"value,omitempty" yaml:"value,omitempty"`
	Entries map[K]V `json:"entries,omitzero" yaml:"entries,omitzero"`
}

// Insert returns a change setting key to value.
func Insert[K comparable, V any](key K, value V) Change[K, V] {
	return Change[K, V]{Op: OpInsert, Key: key, Value: value}
}

// Remove returns a change deleting key, which held old.
func Remove[K comparable, V any](key K, old V) Change[K, V] {
	return Change[K, V]{Op: OpRemove, Key: key, Value: old}
}

// Replace returns a change resetting the map to a copy of entries.
func Replace[K comparable, V any](entries map[K]V) Change[K, V] {
	return Change[K, V]{Op: OpReplace, Entries: cloneMap(entries)}
}

// String returns a compact description of the change.
func (c Change[K, V]) String() string {
	switch c.Op {
	case OpInsert:
		return fmt.Sprintf("insert(%v=%v)", c.Key, c.Value)
	case OpRemove:
		return fmt.Sprintf("remove(%v)", c.Key)
	case OpReplace:
		return fmt.Sprintf("replace(%d entries)", len(c.Entries))
	default:
		return c.Op.String()
	}
}

// RecursiveChange is one edit in a changeset over a map whose values diff
// themselves. Nested is only set for OpChange.
type RecursiveChange[K comparable, V any, C any] struct {
	Op      Op      `json:"op" yaml:"op"`
	Key     K       `json:"key,omitempty" yaml:"key,omitempty"`
	Value   V       `json:"value,omitempty" yaml:"value,omitempty"`
	Nested  C       `json:"nested,omitempty" yaml:"nested,omitempty"`
	Entries map[K]V `json:"entries,omitzero" yaml:"entries,omitzero"`
}

// String returns a compact description of the change.
func (c RecursiveChange[K, V, C]) String() string {
	switch c.Op {
	case OpChange:
		return fmt.Sprintf("change(%v: %v)", c.Key, c.Nested)
	case OpInsert:
		return fmt.Sprintf("insert(%v)", c.Key)
	case OpRemove:
		return fmt.Sprintf("remove(%v)", c.Key)
	case OpReplace:
		return fmt.Sprintf("replace(%d entries)", len(c.Entries))
	default:
		return c.Op.String()
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
