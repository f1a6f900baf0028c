package ordered

import (
	"fmt"
	"strings"
)

// Algorithm selects the edit-distance algorithm used by Diff.
type Algorithm uint8

const (
	// Hirschberg uses linear space divide and conquer.
	Hirschberg Algorithm = iota
	// Levenshtein fills the full cost table.
	Levenshtein
)

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Hirschberg:
		return "hirschberg"
	case Levenshtein:
		return "levenshtein"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm parses an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "hirschberg", "":
		return Hirschberg, nil
	case "levenshtein":
		return Levenshtein, nil
	default:
		return Hirschberg, fmt.Errorf("unknown algorithm %q: must be one of hirschberg, levenshtein", s)
	}
}

type options struct {
	algorithm Algorithm
}

// Option is a functional option for configuring Diff.
type Option func(*options)

// WithAlgorithm sets the edit-distance algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
	}
}

func newOptions(opts ...Option) *options {
	o := &options{algorithm: Hirschberg}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
