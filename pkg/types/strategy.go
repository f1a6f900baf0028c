package types

import (
	"fmt"
	"slices"
)

// StrategyType identifies how a field's value is compared and patched.
type StrategyType string

const (
	// StrategyOrderedArrayLike diffs sequences into positional edit scripts.
	StrategyOrderedArrayLike StrategyType = "ordered-array-like"

	// StrategyUnorderedArrayLike diffs sequences as multisets of items.
	StrategyUnorderedArrayLike StrategyType = "unordered-array-like"

	// StrategyUnorderedMapLike diffs maps by key, see MapMode.
	StrategyUnorderedMapLike StrategyType = "unordered-map-like"

	// StrategyRecurse delegates to the value's own Diffable implementation.
	StrategyRecurse StrategyType = "recurse"
)

// String returns the string representation of a strategy type.
func (s StrategyType) String() string {
	return string(s)
}

// StrategyTypes returns all strategy types.
func StrategyTypes() []StrategyType {
	return []StrategyType{
		StrategyOrderedArrayLike,
		StrategyUnorderedArrayLike,
		StrategyUnorderedMapLike,
		StrategyRecurse,
	}
}

// IsValid returns true if the StrategyType is one of the defined constants.
func (s StrategyType) IsValid() bool {
	return slices.Contains(StrategyTypes(), s)
}

// ParseStrategyType parses a strategy name.
func ParseStrategyType(s string) (StrategyType, error) {
	st := StrategyType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown strategy %q", s)
	}
	return st, nil
}

// MapMode selects what a keyed map comparison looks at.
type MapMode uint8

const (
	// KeyAndValue reports keys whose value changed.
	KeyAndValue MapMode = iota

	// KeyOnly reports added and removed keys and never inspects values.
	KeyOnly
)

// String returns the string representation of a map mode.
func (m MapMode) String() string {
	switch m {
	case KeyOnly:
		return "key-only"
	case KeyAndValue:
		return "key-and-value"
	default:
		return fmt.Sprintf("MapMode(%d)", uint8(m))
	}
}

// ParseMapMode parses a map mode name.
func ParseMapMode(s string) (MapMode, error) {
	switch s {
	case "key-only", "key_only":
		return KeyOnly, nil
	case "key-and-value", "key_and_value", "":
		return KeyAndValue, nil
	default:
		return KeyAndValue, fmt.Errorf("unknown map mode %q", s)
	}
}
