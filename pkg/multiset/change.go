package multiset

import (
	"fmt"

	"github.com/agentstation/delta/pkg/constants"
	"github.com/agentstation/delta/pkg/errors"
)

// Op identifies the kind of a multiset change. The numeric values are the
// discriminants used by binary codecs.
type Op uint8

const (
	// OpInsert adds Count copies of Item.
	OpInsert Op = iota
	// OpRemove removes up to Count copies of Item.
	OpRemove
	// OpReplace resets the multiset to Values.
	OpReplace
)

var opNames = [...]string{
	OpInsert:  "insert",
	OpRemove:  "remove",
	OpReplace: "replace",
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
		return nil, errors.NewOpError("multiset", uint8(o))
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
	return errors.NewValidationError("op", string(text), "unknown multiset operation")
}

// Tier is the size class of a change count.
type Tier uint8

const (
	// TierSingle is a count of exactly one.
	TierSingle Tier = iota
	// TierFew is a count that fits in a byte.
	TierFew
	// TierMany is any larger count.
	TierMany
)

var tierNames = [...]string{
	TierSingle: "single",
	TierFew:    "few",
	TierMany:   "many",
}

// String returns the name of the tier.
func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if int(t) >= len(tierNames) {
		return nil, errors.NewValidationError("tier", uint8(t), "unknown tier")
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	for i, name := range tierNames {
		if name == string(text) {
			*t = Tier(i)
			return nil
		}
	}
	return errors.NewValidationError("tier", string(text), "unknown tier")
}

// TierFor returns the smallest tier that holds count.
func TierFor(count uint64) Tier {
	switch {
	case count == constants.SingleCount:
		return TierSingle
	case count <= constants.MaxFewCount:
		return TierFew
	default:
		return TierMany
	}
}

// Change is one edit in a multiset changeset. Values is only set for
// OpReplace; Item, Tier and Count are only set for OpInsert and OpRemove.
type Change[T any] struct {
	Op     Op     `json:"op" yaml:"op"`
	Tier   Tier   `json:"tier" yaml:"tier"`
	Item   T      `json:"item,omitempty" yaml:"item,omitempty"`
	Count  uint64 `json:"count,omitempty" yaml:"count,omitempty"`
	Values []T    `json:"values,omitzero" yaml:"values,omitzero"`
}

// Insert returns a change adding count copies of item.
func Insert[T any](item T, count uint64) Change[T] {
	return Change[T]{Op: OpInsert, Tier: TierFor(count), Item: item, Count: count}
}

// Remove returns a change removing count copies of item.
func Remove[T any](item T, count uint64) Change[T] {
	return Change[T]{Op: OpRemove, Tier: TierFor(count), Item: item, Count: count}
}

// Replace returns a change resetting the multiset to a copy of values.
func Replace[T any](values []T) Change[T] {
	return Change[T]{Op: OpReplace, Values: append([]T{}, values...)}
}

// String returns a compact description of the change.
func (c Change[T]) String() string {
	switch c.Op {
	case OpInsert, OpRemove:
		return fmt.Sprintf("%s(%v x%d)", c.Op, c.Item, c.Count)
	case OpReplace:
		return fmt.Sprintf("replace(%d items)", len(c.Values))
	default:
		return c.Op.String()
	}
}
