package types

// Diffable is implemented by values that can compute a changeset against an
// updated value of the same type and apply such a changeset to themselves.
//
// Diff must report false (and an empty changeset) when the two values are
// equal. Apply mutates the receiver in place; applying Diff(updated) to the
// receiver must leave it equal to updated.
type Diffable[V any, C any] interface {
	Diff(updated *V) (C, bool)
	Apply(changes C) error
}

// DiffablePtr constrains H to be a pointer to V that implements Diffable.
// Generic reconcilers take it as an extra type parameter so that values can be
// stored in maps and slices by value while their methods use pointer receivers.
type DiffablePtr[V any, C any] interface {
	*V
	Diffable[V, C]
}
