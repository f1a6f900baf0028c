package ordered

import (
	"fmt"

	"github.com/agentstation/delta/pkg/errors"
)

// Op identifies the kind of an ordered change. The numeric values are the
// discriminants used by binary codecs and must not be reordered.
type Op uint8

const (
	// OpReplace assigns a new value at an index.
	OpReplace Op = iota
	// OpInsert inserts a value before an index.
	OpInsert
	// OpDelete removes one index or an inclusive range.
	OpDelete
	// OpSwap exchanges two indices.
	OpSwap
)

var opNames = [...]string{
	OpReplace: "replace",
	OpInsert:  "insert",
	OpDelete:  "delete",
	OpSwap:    "swap",
}

// String returns the name of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if int(o) >= len(opNames) {
		return nil, errors.NewOpError("ordered", uint8(o))
	}
	return []byte(opNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == string(text) {
			*o = Op(i)
			return nil
		}
	}
	return errors.NewValidationError("op", string(text), "unknown ordered operation")
}

// Change is one edit in an ordered changeset.
//
// Index is the position for Replace and Insert, the first removed index for
// Delete and the first index for Swap. End is the inclusive last index of a
// ranged Delete and the second index of a Swap.
type Change[T any] struct {
	Op     Op   `json:"op" yaml:"op"`
	Index  int  `json:"index" yaml:"index"`
	End    int  `json:"end,omitempty" yaml:"end,omitempty"`
	Ranged bool `json:"ranged,omitempty" yaml:"ranged,omitempty"`
	Value  T    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Replace returns a change assigning v at pos.
func Replace[T any](v T, pos int) Change[T] {
	return Change[T]{Op: OpReplace, Index: pos, Value: v}
}

// Insert returns a change inserting v before pos.
func Insert[T any](v T, pos int) Change[T] {
	return Change[T]{Op: OpInsert, Index: pos, Value: v}
}

// Delete returns a change removing the element at pos.
func Delete[T any](pos int) Change[T] {
	return Change[T]{Op: OpDelete, Index: pos}
}

// DeleteRange returns a change removing the inclusive range [start, end].
func DeleteRange[T any](start, end int) Change[T] {
	return Change[T]{Op: OpDelete, Index: start, End: end, Ranged: true}
}

// Swap returns a change exchanging the elements at i and j.
func Swap[T any](i, j int) Change[T] {
	return Change[T]{Op: OpSwap, Index: i, End: j}
}

// String returns a compact description of the change.
func (c Change[T]) String() string {
	switch c.Op {
	case OpReplace:
		return fmt.Sprintf("replace(%d, %v)", c.Index, c.Value)
	case OpInsert:
		return fmt.Sprintf("insert(%d, %v)", c.Index, c.Value)
	case OpDelete:
		if c.Ranged {
			return fmt.Sprintf("delete(%d..%d)", c.Index, c.End)
		}
		return fmt.Sprintf("delete(%d)", c.Index)
	case OpSwap:
		return fmt.Sprintf("swap(%d, %d)", c.Index, c.End)
	default:
		return c.Op.String()
	}
}

// Summary counts the changes of each kind in a script.
type Summary struct {
	Replaced int
	Inserted int
	Deleted  int // elements removed, ranges counted by length
	Swapped  int
}

// Total returns the number of elements touched by the script.
func (s Summary) Total() int {
	return s.Replaced + s.Inserted + s.Deleted + s.Swapped
}

// Stats counts the changes of each kind in a script.
func Stats[T any](changes []Change[T]) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Op {
		case OpReplace:
			s.Replaced++
		case OpInsert:
			s.Inserted++
		case OpDelete:
			if c.Ranged {
				s.Deleted += c.End - c.Index + 1
			} else {
				s.Deleted++
			}
		case OpSwap:
			s.Swapped++
		}
	}
	return s
}
