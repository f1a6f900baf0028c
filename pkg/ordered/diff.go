package ordered

import (
	"slices"

	"github.com/agentstation/delta/pkg/logging"
)

// Diff returns the changes that turn existing into updated. Identical inputs
// yield a nil script.
func Diff[T comparable](existing, updated []T, opts ...Option) []Change[T] {
	return DiffFunc(existing, updated, func(a, b T) bool { return a == b }, opts...)
}

// DiffFunc is like Diff but compares elements with eq.
func DiffFunc[T any](existing, updated []T, eq func(a, b T) bool, opts ...Option) []Change[T] {
	if slices.EqualFunc(existing, updated, eq) {
		return nil
	}
	o := newOptions(opts...)

	var steps []step
	switch o.algorithm {
	case Levenshtein:
		steps = levenshtein(existing, updated, eq, 0, nil)
	default:
		h := &hirschberg[T]{eq: eq}
		h.run(existing, updated, 0)
		steps = h.steps
	}

	changes := script(steps, updated)
	logging.Debug().
		Str("algorithm", o.algorithm.String()).
		Int("existing", len(existing)).
		Int("updated", len(updated)).
		Int("changes", len(changes)).
		Msg("ordered diff computed")
	return changes
}

// stepKind is one column of an alignment between source and target.
type stepKind uint8

const (
	stepMatch stepKind = iota
	stepReplace
	stepDelete
	stepInsert
)

// step is one alignment column. target indexes updated for replace and
// insert steps.
type step struct {
	kind   stepKind
	target int
}

// script converts an alignment into application-order changes. pos is the
// number of target elements already produced, which is also the position of
// the next unconsumed source element in the partially edited sequence.
func script[T any](steps []step, updated []T) []Change[T] {
	var (
		changes []Change[T]
		pos     int
		deletes int
	)
	flush := func() {
		switch {
		case deletes == 1:
			changes = append(changes, Delete[T](pos))
		case deletes > 1:
			changes = append(changes, DeleteRange[T](pos, pos+deletes-1))
		}
		deletes = 0
	}

	for _, st := range steps {
		if st.kind == stepDelete {
			deletes++
			continue
		}
		flush()
		switch st.kind {
		case stepReplace:
			changes = append(changes, Replace(updated[st.target], pos))
		case stepInsert:
			changes = append(changes, Insert(updated[st.target], pos))
		}
		pos++
	}
	flush()
	return changes
}
