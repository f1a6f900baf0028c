package multiset

import (
	"github.com/agentstation/delta/pkg/logging"
)

// histogram counts items and remembers the order they were first seen in.
type histogram[T comparable] struct {
	counts map[T]uint64
	order  []T
}

func newHistogram[T comparable](items []T) *histogram[T] {
	h := &histogram[T]{counts: make(map[T]uint64, len(items))}
	for _, item := range items {
		h.add(item, 1)
	}
	return h
}

func (h *histogram[T]) add(item T, n uint64) {
	if _, ok := h.counts[item]; !ok {
		h.order = append(h.order, item)
	}
	h.counts[item] += n
}

func (h *histogram[T]) remove(item T, n uint64) {
	have, ok := h.counts[item]
	if !ok {
		return
	}
	// The key stays so a later add keeps the item's first-seen position.
	h.counts[item] = have - min(n, have)
}

func (h *histogram[T]) expand() []T {
	var out []T
	for _, item := range h.order {
		for range h.counts[item] {
			out = append(out, item)
		}
	}
	return out
}

// ShouldReplace reports whether a changeset from existing to updated is
// emitted as a single Replace: the updated side holds fewer elements than
// would have to be removed to reach it.
func ShouldReplace(existing, updated int) bool {
	return updated < existing-updated
}

// Diff returns the changes that turn the multiset existing into updated.
// Changes are ordered by first appearance of the item in updated, then in
// existing. Equal multisets yield a nil changeset.
func Diff[T comparable](existing, updated []T) []Change[T] {
	if ShouldReplace(len(existing), len(updated)) {
		logging.Debug().
			Int("existing", len(existing)).
			Int("updated", len(updated)).
			Msg("multiset shrank, emitting replace")
		return []Change[T]{Replace(updated)}
	}

	before := newHistogram(existing)
	after := newHistogram(updated)

	var changes []Change[T]
	for _, item := range after.order {
		have, want := before.counts[item], after.counts[item]
		if want > have {
			changes = append(changes, Insert(item, want-have))
		} else if have > want {
			changes = append(changes, Remove(item, have-want))
		}
	}
	for _, item := range before.order {
		if _, ok := after.counts[item]; !ok {
			changes = append(changes, Remove(item, before.counts[item]))
		}
	}
	return changes
}

// Apply applies changes to existing and returns the resulting multiset.
// All removals are applied before any insertion; a Replace resets the
// working set to its values at the point it is met. existing is not
// modified.
func Apply[T comparable](existing []T, changes []Change[T]) []T {
	h := newHistogram(existing)

	for _, c := range changes {
		switch c.Op {
		case OpReplace:
			h = newHistogram(c.Values)
		case OpRemove:
			h.remove(c.Item, c.Count)
		}
	}
	for _, c := range changes {
		if c.Op == OpInsert {
			h.add(c.Item, c.Count)
		}
	}
	return h.expand()
}

// Equal reports whether a and b hold the same items with the same counts.
func Equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	ha := newHistogram(a)
	for _, item := range b {
		if ha.counts[item] == 0 {
			return false
		}
		ha.counts[item]--
	}
	return true
}
