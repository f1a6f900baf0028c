package keyed

import (
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/logging"
	"github.com/agentstation/delta/pkg/types"
)

// DiffRecursive returns the changes that turn existing into updated, asking
// each value present on both sides for a nested changeset. The pointer type
// H is inferred, so callers usually only name K, V and C:
//
//	changes := keyed.DiffRecursive[string, Service, ServiceChanges](old, cur, types.KeyAndValue)
func DiffRecursive[K comparable, V any, C any, H types.DiffablePtr[V, C]](existing, updated map[K]V, mode types.MapMode) []RecursiveChange[K, V, C] {
	if ShouldReplace(len(existing), len(updated)) {
		logging.Debug().
			Int("existing", len(existing)).
			Int("updated", len(updated)).
			Msg("map shrank, emitting replace")
		return []RecursiveChange[K, V, C]{{Op: OpReplace, Entries: cloneMap(updated)}}
	}

	var changes []RecursiveChange[K, V, C]
	for k, nv := range updated {
		ov, ok := existing[k]
		if !ok {
			changes = append(changes, RecursiveChange[K, V, C]{Op: OpInsert, Key: k, Value: nv})
			continue
		}
		if mode != types.KeyAndValue {
			continue
		}
		if nested, changed := H(&ov).Diff(&nv); changed {
			changes = append(changes, RecursiveChange[K, V, C]{Op: OpChange, Key: k, Nested: nested})
		}
	}
	for k, ov := range existing {
		if _, ok := updated[k]; !ok {
			changes = append(changes, RecursiveChange[K, V, C]{Op: OpRemove, Key: k, Value: ov})
		}
	}
	return changes
}

// ApplyRecursive applies changes to m in place and returns it. Replace and
// removals come first, then nested changes, then insertions. A nested
// change for a key m does not hold fails with an error matching
// errors.ErrUnknownKey; the map may then be partially updated.
func ApplyRecursive[K comparable, V any, C any, H types.DiffablePtr[V, C]](m map[K]V, changes []RecursiveChange[K, V, C]) (map[K]V, error) {
	if m == nil {
		m = make(map[K]V)
	}
	for _, c := range changes {
		switch c.Op {
		case OpReplace:
			clear(m)
			for k, v := range c.Entries {
				m[k] = v
			}
		case OpRemove:
			delete(m, c.Key)
		case OpInsert, OpChange:
		default:
			return m, errors.NewOpError("keyed", uint8(c.Op))
		}
	}
	for _, c := range changes {
		if c.Op != OpChange {
			continue
		}
		v, ok := m[c.Key]
		if !ok {
			return m, errors.NewKeyError("change", c.Key)
		}
		if err := H(&v).Apply(c.Nested); err != nil {
			return m, err
		}
		m[c.Key] = v
	}
	for _, c := range changes {
		if c.Op == OpInsert {
			m[c.Key] = c.Value
		}
	}
	return m, nil
}
