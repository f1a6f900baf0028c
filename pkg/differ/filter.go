package differ

import (
	"slices"
	"strings"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/keyed"
	"github.com/agentstation/delta/pkg/multiset"
)

// ApplyStrategy represents how to apply changes.
type ApplyStrategy string

const (
	// ApplyAll applies all changes including removals.
	ApplyAll ApplyStrategy = "all"

	// ApplyAdditive only applies additions and updates, never removes.
	ApplyAdditive ApplyStrategy = "additive"

	// ApplyUpdatesOnly only applies updates to existing items.
	ApplyUpdatesOnly ApplyStrategy = "updates-only"

	// ApplyAdditionsOnly only applies new additions.
	ApplyAdditionsOnly ApplyStrategy = "additions-only"

	// ApplyRemovalsOnly only applies removals.
	ApplyRemovalsOnly ApplyStrategy = "removals-only"
)

// ApplyStrategies returns all apply strategies.
func ApplyStrategies() []ApplyStrategy {
	return []ApplyStrategy{ApplyAll, ApplyAdditive, ApplyUpdatesOnly, ApplyAdditionsOnly, ApplyRemovalsOnly}
}

// ParseApplyStrategy converts a string to an ApplyStrategy. The empty string is ApplyAll.
func ParseApplyStrategy(s string) (ApplyStrategy, error) {
	if s == "" {
		return ApplyAll, nil
	}
	st := ApplyStrategy(strings.ToLower(s))
	if !slices.Contains(ApplyStrategies(), st) {
		return "", errors.NewValidationError("apply-strategy", s, "must be one of: all, additive, updates-only, additions-only, removals-only")
	}
	return st, nil
}

// FilterKeyed narrows a keyed changeset. A key with both a removal and an
// insertion is an update. A Replace survives ApplyAll, and ApplyAdditive
// turns it into insertions of every entry; the other strategies drop it.
func FilterKeyed[K comparable, V any](changes []keyed.Change[K, V], strategy ApplyStrategy) []keyed.Change[K, V] {
	if strategy == ApplyAll {
		return changes
	}

	removed := make(map[K]bool)
	inserted := make(map[K]bool)
	for _, c := range changes {
		switch c.Op {
		case keyed.OpRemove:
			removed[c.Key] = true
		case keyed.OpInsert:
			inserted[c.Key] = true
		}
	}

	var out []keyed.Change[K, V]
	for _, c := range changes {
		update := removed[c.Key] && inserted[c.Key]
		keep := false
		switch c.Op {
		case keyed.OpReplace:
			if strategy == ApplyAdditive {
				for k, v := range c.Entries {
					out = append(out, keyed.Insert(k, v))
				}
			}
			continue
		case keyed.OpInsert:
			switch strategy {
			case ApplyAdditive:
				keep = true
			case ApplyUpdatesOnly:
				keep = update
			case ApplyAdditionsOnly:
				keep = !update
			}
		case keyed.OpRemove:
			switch strategy {
			case ApplyAdditive, ApplyUpdatesOnly:
				keep = update
			case ApplyRemovalsOnly:
				keep = !update
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// FilterMultiset narrows a multiset changeset. Counts have no notion of an
// update, so ApplyUpdatesOnly keeps nothing. A Replace survives ApplyAll,
// and ApplyAdditive turns it into insertions of its values.
func FilterMultiset[T comparable](changes []multiset.Change[T], strategy ApplyStrategy) []multiset.Change[T] {
	if strategy == ApplyAll {
		return changes
	}

	var out []multiset.Change[T]
	for _, c := range changes {
		switch c.Op {
		case multiset.OpReplace:
			if strategy == ApplyAdditive {
				out = append(out, multiset.Diff(nil, c.Values)...)
			}
		case multiset.OpInsert:
			if strategy == ApplyAdditive || strategy == ApplyAdditionsOnly {
				out = append(out, c)
			}
		case multiset.OpRemove:
			if strategy == ApplyRemovalsOnly {
				out = append(out, c)
			}
		}
	}
	return out
}
