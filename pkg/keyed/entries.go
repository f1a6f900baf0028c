package keyed

import (
	"cmp"
	"slices"

	"github.com/agentstation/delta/pkg/types"
)

// Entry is a key and value pair in a sequence treated as a map.
type Entry[K comparable, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// Entries flattens m into pairs in unspecified order.
func Entries[K comparable, V any](m map[K]V) []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// collect folds pairs into a map, the last pair for a key winning, and
// returns the keys in the order they first appear.
func collect[K comparable, V any](entries []Entry[K, V]) (map[K]V, []K) {
	m := make(map[K]V, len(entries))
	var order []K
	for _, e := range entries {
		if _, ok := m[e.Key]; !ok {
			order = append(order, e.Key)
		}
		m[e.Key] = e.Value
	}
	return m, order
}

// DiffEntries diffs two pair sequences as maps.
func DiffEntries[K, V comparable](existing, updated []Entry[K, V], mode types.MapMode) []Change[K, V] {
	before, was := collect(existing)
	after, order := collect(updated)
	changes := Diff(before, after, mode)
	sortByOrder(changes, append(order, was...))
	return changes
}

// ApplyEntries applies changes to a pair sequence and returns a new one.
// Surviving keys keep their first-appearance position; inserted keys are
// appended in change order.
func ApplyEntries[K comparable, V any](existing []Entry[K, V], changes []Change[K, V]) ([]Entry[K, V], error) {
	m, order := collect(existing)
	for _, c := range changes {
		switch c.Op {
		case OpInsert:
			if _, ok := m[c.Key]; !ok {
				order = append(order, c.Key)
			}
		case OpReplace:
			for k := range c.Entries {
				if _, ok := m[k]; !ok {
					order = append(order, k)
				}
			}
		}
	}
	m, err := Apply(m, changes)
	if err != nil {
		return nil, err
	}

	out := make([]Entry[K, V], 0, len(m))
	seen := make(map[K]bool, len(m))
	for _, k := range order {
		v, ok := m[k]
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out, nil
}

// sortByOrder stably arranges changes by the first position of their key
// in order.
func sortByOrder[K comparable, V any](changes []Change[K, V], order []K) {
	rank := make(map[K]int, len(order))
	for i, k := range order {
		if _, ok := rank[k]; !ok {
			rank[k] = i
		}
	}
	slices.SortStableFunc(changes, func(a, b Change[K, V]) int {
		return cmp.Compare(rank[a.Key], rank[b.Key])
	})
}
