package differ

import (
	"github.com/agentstation/delta/pkg/keyed"
	"github.com/agentstation/delta/pkg/multiset"
	"github.com/agentstation/delta/pkg/ordered"
	"github.com/agentstation/delta/pkg/types"
)

// Strategy compares and patches values of one field type. Diff reports
// false with an empty changeset when the values are equal.
type Strategy[V any, C any] interface {
	Type() types.StrategyType
	Diff(existing, updated V) (C, bool)
	Apply(target *V, changes C) error
}

// algorithmAware is implemented by strategies whose algorithm a Schema may
// override.
type algorithmAware[V any, C any] interface {
	withAlgorithm(a ordered.Algorithm) Strategy[V, C]
}

// filterable is implemented by strategies whose changesets can be narrowed
// by an ApplyStrategy.
type filterable[C any] interface {
	filter(changes C, strategy ApplyStrategy) C
}

// Ordered diffs slices into positional edit scripts.
type Ordered[T comparable] struct {
	Algorithm ordered.Algorithm
}

// Type returns StrategyOrderedArrayLike.
func (Ordered[T]) Type() types.StrategyType { return types.StrategyOrderedArrayLike }

// Diff returns the edit script from existing to updated.
func (s Ordered[T]) Diff(existing, updated []T) ([]ordered.Change[T], bool) {
	changes := ordered.Diff(existing, updated, ordered.WithAlgorithm(s.Algorithm))
	return changes, len(changes) > 0
}

// Apply applies an edit script to target.
func (Ordered[T]) Apply(target *[]T, changes []ordered.Change[T]) error {
	out, err := ordered.ApplySlice(*target, changes)
	*target = out
	return err
}

func (s Ordered[T]) withAlgorithm(a ordered.Algorithm) Strategy[[]T, []ordered.Change[T]] {
	s.Algorithm = a
	return s
}

// Unordered diffs slices as multisets.
type Unordered[T comparable] struct{}

// Type returns StrategyUnorderedArrayLike.
func (Unordered[T]) Type() types.StrategyType { return types.StrategyUnorderedArrayLike }

// Diff returns the count changes from existing to updated.
func (Unordered[T]) Diff(existing, updated []T) ([]multiset.Change[T], bool) {
	changes := multiset.Diff(existing, updated)
	return changes, len(changes) > 0
}

// Apply applies count changes to target.
func (Unordered[T]) Apply(target *[]T, changes []multiset.Change[T]) error {
	*target = multiset.Apply(*target, changes)
	return nil
}

func (Unordered[T]) filter(changes []multiset.Change[T], strategy ApplyStrategy) []multiset.Change[T] {
	return FilterMultiset(changes, strategy)
}

// Map diffs maps by key.
type Map[K, V comparable] struct {
	Mode types.MapMode
}

// Type returns StrategyUnorderedMapLike.
func (Map[K, V]) Type() types.StrategyType { return types.StrategyUnorderedMapLike }

// Diff returns the keyed changes from existing to updated.
func (s Map[K, V]) Diff(existing, updated map[K]V) ([]keyed.Change[K, V], bool) {
	changes := keyed.Diff(existing, updated, s.Mode)
	return changes, len(changes) > 0
}

// Apply applies keyed changes to target.
func (Map[K, V]) Apply(target *map[K]V, changes []keyed.Change[K, V]) error {
	out, err := keyed.Apply(*target, changes)
	*target = out
	return err
}

func (Map[K, V]) filter(changes []keyed.Change[K, V], strategy ApplyStrategy) []keyed.Change[K, V] {
	return FilterKeyed(changes, strategy)
}

// RecursiveMap diffs maps by key and asks values present on both sides for
// a nested changeset.
type RecursiveMap[K comparable, V any, C any, H types.DiffablePtr[V, C]] struct {
	Mode types.MapMode
}

// Type returns StrategyUnorderedMapLike.
func (RecursiveMap[K, V, C, H]) Type() types.StrategyType { return types.StrategyUnorderedMapLike }

// Diff returns the keyed and nested changes from existing to updated.
func (s RecursiveMap[K, V, C, H]) Diff(existing, updated map[K]V) ([]keyed.RecursiveChange[K, V, C], bool) {
	changes := keyed.DiffRecursive[K, V, C, H](existing, updated, s.Mode)
	return changes, len(changes) > 0
}

// Apply applies keyed and nested changes to target.
func (RecursiveMap[K, V, C, H]) Apply(target *map[K]V, changes []keyed.RecursiveChange[K, V, C]) error {
	out, err := keyed.ApplyRecursive[K, V, C, H](*target, changes)
	*target = out
	return err
}

// Recurse delegates to the value's own Diffable implementation.
type Recurse[V any, C any, H types.DiffablePtr[V, C]] struct{}

// Type returns StrategyRecurse.
func (Recurse[V, C, H]) Type() types.StrategyType { return types.StrategyRecurse }

// Diff asks existing for its changeset against updated.
func (Recurse[V, C, H]) Diff(existing, updated V) (C, bool) {
	return H(&existing).Diff(&updated)
}

// Apply applies changes through target's own Apply.
func (Recurse[V, C, H]) Apply(target *V, changes C) error {
	return H(target).Apply(changes)
}
