// Package multiset reconciles sequences whose order does not matter.
//
// Diff compares item counts on both sides and emits one Insert or Remove
// per item whose count changed. Counts are tagged with the smallest Tier
// that can hold them, so a binary encoding can skip the count entirely for
// single items. When the updated side is much smaller than the existing one
// a single Replace carrying the whole updated multiset is cheaper than a
// list of removals, and Diff emits that instead.
//
// Apply never fails: removing more copies than are present removes the
// item, and the order of the returned slice is the order in which items
// were first seen.
package multiset
