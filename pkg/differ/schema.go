// Package differ dispatches diff and apply over the fields of a struct.
//
// A Schema lists the fields of a struct type, each with a numeric tag, a
// name, an accessor and the Strategy that compares it. Schema.Diff produces
// a Changeset holding one FieldChange per field that differs; Schema.Apply
// routes each FieldChange back to its field by tag. Tags, not names, are
// what identify a field in an encoded changeset, so names may change
// freely while tags must stay stable.
//
//	schema := differ.NewSchema[Deployment]()
//	differ.AddField(schema, 1, "args", func(d *Deployment) *[]string { return &d.Args }, differ.Ordered[string]{})
//	differ.AddField(schema, 2, "ports", func(d *Deployment) *[]int { return &d.Ports }, differ.Unordered[int]{})
//
//	cs := schema.Diff(&old, &cur)
//	err := schema.Apply(&old, cs)
package differ

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/types"
)

// field is the type-erased form of one AddField call.
type field[S any] struct {
	tag      uint8
	name     string
	strategy types.StrategyType
	diff     func(existing, updated *S, o *options) (any, bool)
	apply    func(target *S, changes any) error
	filter   func(changes any, strategy ApplyStrategy) any
}

// Schema dispatches diff and apply over the fields of S.
type Schema[S any] struct {
	fields []field[S]
	byTag  map[uint8]int
	opts   *options
}

// NewSchema creates an empty schema for S.
func NewSchema[S any](opts ...Option) *Schema[S] {
	return &Schema[S]{
		byTag: make(map[uint8]int),
		opts:  newOptions(opts...),
	}
}

// AddField registers a field of S under tag. get returns a pointer to the
// field inside its struct. AddField panics if tag is already registered.
func AddField[S any, V any, C any](s *Schema[S], tag uint8, name string, get func(*S) *V, strategy Strategy[V, C]) *Schema[S] {
	if _, dup := s.byTag[tag]; dup {
		panic(fmt.Sprintf("differ: tag %d registered twice", tag))
	}

	f := field[S]{
		tag:      tag,
		name:     name,
		strategy: strategy.Type(),
		diff: func(existing, updated *S, o *options) (any, bool) {
			st := strategy
			if aware, ok := any(strategy).(algorithmAware[V, C]); ok && o.algorithmSet {
				st = aware.withAlgorithm(o.algorithm)
			}
			return st.Diff(*get(existing), *get(updated))
		},
		apply: func(target *S, changes any) error {
			c, ok := changes.(C)
			if !ok {
				var want C
				return errors.NewValidationError(name, changes,
					fmt.Sprintf("changes of type %T, want %T", changes, want))
			}
			return strategy.Apply(get(target), c)
		},
	}
	if fl, ok := any(strategy).(filterable[C]); ok {
		f.filter = func(changes any, as ApplyStrategy) any {
			return fl.filter(changes.(C), as)
		}
	}

	s.byTag[tag] = len(s.fields)
	s.fields = append(s.fields, f)
	return s
}

// Diff compares existing and updated field by field. The returned changeset
// is empty, never nil, when nothing differs.
func (s *Schema[S]) Diff(existing, updated *S) *Changeset {
	cs := &Changeset{}
	for _, f := range s.fields {
		if s.opts.ignoreFields[f.name] {
			continue
		}
		changes, changed := f.diff(existing, updated, s.opts)
		if !changed {
			continue
		}
		cs.Changes = append(cs.Changes, FieldChange{
			Tag:      f.tag,
			Name:     f.name,
			Strategy: f.strategy,
			Changes:  changes,
		})
		s.opts.log().Debug().
			Uint8("tag", f.tag).
			Str("field", f.name).
			Str("strategy", f.strategy.String()).
			Msg("field changed")
	}
	cs.Summary = summarize(cs.Changes)
	return cs
}

// Apply applies cs to target. Field changes are applied in order and the
// first failure is returned wrapped in an *errors.FieldError; fields before
// it stay applied.
func (s *Schema[S]) Apply(target *S, cs *Changeset) error {
	if cs == nil {
		return nil
	}
	for _, fc := range cs.Changes {
		i, ok := s.byTag[fc.Tag]
		if !ok {
			return errors.WrapField(fc.Name, fc.Tag,
				errors.NewNotFoundError("field", strconv.Itoa(int(fc.Tag))))
		}
		f := s.fields[i]
		if err := f.apply(target, fc.Changes); err != nil {
			return errors.WrapField(f.name, f.tag, err)
		}
	}
	return nil
}

// Filter narrows the keyed and multiset field changes of cs to what
// strategy allows. Ordered scripts and nested changesets are positional or
// opaque and pass through unchanged. Fields left without changes are
// dropped.
func (s *Schema[S]) Filter(cs *Changeset, strategy ApplyStrategy) *Changeset {
	if strategy == ApplyAll {
		return cs
	}
	filtered := &Changeset{}
	for _, fc := range cs.Changes {
		if i, ok := s.byTag[fc.Tag]; ok && s.fields[i].filter != nil {
			fc.Changes = s.fields[i].filter(fc.Changes, strategy)
		}
		if countOf(fc.Changes) > 0 {
			filtered.Changes = append(filtered.Changes, fc)
		}
	}
	filtered.Summary = summarize(filtered.Changes)
	return filtered
}

// Fields returns the registered field names in tag registration order.
func (s *Schema[S]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Strategy adapts the schema to a Strategy so a struct described by one
// schema can be a field of another.
func (s *Schema[S]) Strategy() Strategy[S, *Changeset] {
	return schemaStrategy[S]{s}
}

type schemaStrategy[S any] struct {
	schema *Schema[S]
}

func (schemaStrategy[S]) Type() types.StrategyType { return types.StrategyRecurse }

func (st schemaStrategy[S]) Diff(existing, updated S) (*Changeset, bool) {
	cs := st.schema.Diff(&existing, &updated)
	return cs, cs.HasChanges()
}

func (st schemaStrategy[S]) Apply(target *S, changes *Changeset) error {
	return st.schema.Apply(target, changes)
}

// countOf returns the number of records in a strategy changeset. Slices
// count their elements; anything else counts as one.
func countOf(changes any) int {
	if changes == nil {
		return 0
	}
	v := reflect.ValueOf(changes)
	switch v.Kind() {
	case reflect.Slice:
		return v.Len()
	case reflect.Pointer:
		if v.IsNil() {
			return 0
		}
		if cs, ok := changes.(*Changeset); ok {
			return cs.Summary.TotalChanges
		}
	}
	return 1
}
