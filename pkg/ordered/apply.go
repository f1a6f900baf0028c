package ordered

import (
	"slices"

	"github.com/agentstation/delta/pkg/errors"
)

// Sequence is a mutable indexed container a script can be applied to.
// Implementations may panic on out-of-range indices; Apply checks every
// position before it calls them.
type Sequence[T any] interface {
	Len() int
	Set(i int, v T)
	Insert(i int, v T)
	Remove(i int) T
	// Drain removes the half-open range [lo, hi).
	Drain(lo, hi int)
	Swap(i, j int)
}

// Apply applies changes to seq in order. It stops at the first change that
// does not fit the sequence and returns an error matching
// errors.ErrOutOfRange; changes before it stay applied.
func Apply[T any](seq Sequence[T], changes []Change[T]) error {
	for _, c := range changes {
		n := seq.Len()
		switch c.Op {
		case OpReplace:
			if c.Index < 0 || c.Index >= n {
				return errors.NewIndexError("replace", c.Index, n)
			}
			seq.Set(c.Index, c.Value)
		case OpInsert:
			if c.Index < 0 || c.Index > n {
				return errors.NewIndexError("insert", c.Index, n)
			}
			seq.Insert(c.Index, c.Value)
		case OpDelete:
			if c.Index < 0 || c.Index >= n {
				return errors.NewIndexError("delete", c.Index, n)
			}
			if !c.Ranged {
				seq.Remove(c.Index)
				continue
			}
			if c.End < c.Index || c.End >= n {
				return errors.NewIndexError("delete", c.End, n)
			}
			seq.Drain(c.Index, c.End+1)
		case OpSwap:
			if c.Index < 0 || c.Index >= n {
				return errors.NewIndexError("swap", c.Index, n)
			}
			if c.End < 0 || c.End >= n {
				return errors.NewIndexError("swap", c.End, n)
			}
			seq.Swap(c.Index, c.End)
		default:
			return errors.NewOpError("ordered", uint8(c.Op))
		}
	}
	return nil
}

// Slice adapts a Go slice to Sequence.
type Slice[T any] []T

// Len returns the number of elements.
func (s *Slice[T]) Len() int { return len(*s) }

// Set assigns v at i.
func (s *Slice[T]) Set(i int, v T) { (*s)[i] = v }

// Insert inserts v before i.
func (s *Slice[T]) Insert(i int, v T) { *s = slices.Insert(*s, i, v) }

// Remove removes and returns the element at i.
func (s *Slice[T]) Remove(i int) T {
	v := (*s)[i]
	*s = slices.Delete(*s, i, i+1)
	return v
}

// Drain removes the half-open range [lo, hi).
func (s *Slice[T]) Drain(lo, hi int) { *s = slices.Delete(*s, lo, hi) }

// Swap exchanges the elements at i and j.
func (s *Slice[T]) Swap(i, j int) { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] }

// ApplySlice applies changes to s and returns the result. s is reused as
// backing storage, so callers that still need the original must pass a clone.
func ApplySlice[T any](s []T, changes []Change[T]) ([]T, error) {
	seq := Slice[T](s)
	err := Apply(&seq, changes)
	return []T(seq), err
}
