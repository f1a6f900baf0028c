// Package keyed reconciles maps, and sequences of key and value pairs
// treated as maps.
//
// Diff matches entries by key. In KeyOnly mode only added and removed keys
// are reported; in KeyAndValue mode a key whose value changed is reported as
// a removal of the old value followed by an insertion of the new one.
// DiffRecursive instead asks the value itself for a nested changeset
// through types.Diffable, so maps of structured values produce changes that
// describe what changed inside each value.
//
// When the updated map has fewer keys than would have to be removed from
// the existing one, a single Replace carrying the updated map is emitted.
//
// Map iteration order is random, so the order of changes produced from maps
// is unspecified. Apply does not depend on it.
package keyed
