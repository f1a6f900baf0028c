package keyed

import (
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/logging"
	"github.com/agentstation/delta/pkg/types"
)

// ShouldReplace reports whether a changeset between maps of the given sizes
// is emitted as a single Replace.
func ShouldReplace(existing, updated int) bool {
	return updated < existing-updated
}

// Diff returns the changes that turn existing into updated.
func Diff[K, V comparable](existing, updated map[K]V, mode types.MapMode) []Change[K, V] {
	return DiffFunc(existing, updated, mode, func(a, b V) bool { return a == b })
}

// DiffFunc is like Diff but compares values with eq. eq is not called in
// KeyOnly mode.
func DiffFunc[K comparable, V any](existing, updated map[K]V, mode types.MapMode, eq func(a, b V) bool) []Change[K, V] {
	if ShouldReplace(len(existing), len(updated)) {
		logging.Debug().
			Int("existing", len(existing)).
			Int("updated", len(updated)).
			Msg("map shrank, emitting replace")
		return []Change[K, V]{Replace(updated)}
	}

	var changes []Change[K, V]
	for k, nv := range updated {
		ov, ok := existing[k]
		switch {
		case !ok:
			changes = append(changes, Insert(k, nv))
		case mode == types.KeyAndValue && !eq(ov, nv):
			changes = append(changes, Remove(k, ov), Insert(k, nv))
		}
	}
	for k, ov := range existing {
		if _, ok := updated[k]; !ok {
			changes = append(changes, Remove(k, ov))
		}
	}
	return changes
}

// Apply applies changes to m in place and returns it. A nil m is
// allocated. Replace and removals are applied before any insertion.
// OpChange and unknown ops fail with an error matching errors.ErrUnknownOp
// before m is touched; use ApplyRecursive for nested changes.
func Apply[K comparable, V any](m map[K]V, changes []Change[K, V]) (map[K]V, error) {
	for _, c := range changes {
		switch c.Op {
		case OpInsert, OpRemove, OpReplace:
		default:
			return m, errors.NewOpError("keyed", uint8(c.Op))
		}
	}

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
		}
	}
	for _, c := range changes {
		if c.Op == OpInsert {
			m[c.Key] = c.Value
		}
	}
	return m, nil
}
