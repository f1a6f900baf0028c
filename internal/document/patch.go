package document

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/agentstation/delta/pkg/codec"
	"github.com/agentstation/delta/pkg/constants"
	"github.com/agentstation/delta/pkg/differ"
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/keyed"
	"github.com/agentstation/delta/pkg/multiset"
	"github.com/agentstation/delta/pkg/ordered"
	"github.com/agentstation/delta/pkg/rope"
	"github.com/agentstation/delta/pkg/types"
)

// Patch is the changeset the diff command writes and the apply command
// reads. Exactly one of the change lists is used, chosen by Strategy.
type Patch struct {
	Strategy types.StrategyType             `json:"strategy" yaml:"strategy"`
	Ordered  []ordered.Change[string]       `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Multiset []multiset.Change[string]      `json:"multiset,omitempty" yaml:"multiset,omitempty"`
	Keyed    []keyed.Change[string, string] `json:"keyed,omitempty" yaml:"keyed,omitempty"`
}

// Binary discriminants prefixed to the encoded change list.
const (
	tagOrdered  byte = 0
	tagMultiset byte = 1
	tagKeyed    byte = 2
)

// Len returns the number of change records.
func (p *Patch) Len() int {
	switch p.Strategy {
	case types.StrategyOrderedArrayLike:
		return len(p.Ordered)
	case types.StrategyUnorderedArrayLike:
		return len(p.Multiset)
	default:
		return len(p.Keyed)
	}
}

// IsEmpty reports whether the patch carries no changes.
func (p *Patch) IsEmpty() bool {
	return p.Len() == 0
}

// Changes returns the active change list.
func (p *Patch) Changes() any {
	switch p.Strategy {
	case types.StrategyOrderedArrayLike:
		return p.Ordered
	case types.StrategyUnorderedArrayLike:
		return p.Multiset
	default:
		return p.Keyed
	}
}

// Compare diffs two documents of the same kind. Lists use strategy
// (ordered or unordered); maps always use the keyed strategy.
func Compare(existing, updated *Document, strategy types.StrategyType, mode types.MapMode, opts ...ordered.Option) (*Patch, error) {
	if existing.Kind != updated.Kind {
		return nil, errors.NewValidationError("document", updated.Path,
			"cannot compare a "+existing.Kind.String()+" with a "+updated.Kind.String())
	}

	if existing.Kind == KindMap {
		if strategy != types.StrategyUnorderedMapLike && strategy != "" {
			return nil, errors.NewValidationError("strategy", string(strategy), "map documents use "+string(types.StrategyUnorderedMapLike))
		}
		return &Patch{
			Strategy: types.StrategyUnorderedMapLike,
			Keyed:    keyed.DiffEntries(existing.Entries, updated.Entries, mode),
		}, nil
	}

	switch strategy {
	case types.StrategyOrderedArrayLike, "":
		return &Patch{
			Strategy: types.StrategyOrderedArrayLike,
			Ordered:  ordered.Diff(existing.Items, updated.Items, opts...),
		}, nil
	case types.StrategyUnorderedArrayLike:
		return &Patch{
			Strategy: types.StrategyUnorderedArrayLike,
			Multiset: multiset.Diff(existing.Items, updated.Items),
		}, nil
	default:
		return nil, errors.NewValidationError("strategy", string(strategy), "list documents use ordered-array-like or unordered-array-like")
	}
}

// Filter narrows the patch to the changes strategy admits. Edit scripts are
// positional and pass through unchanged.
func (p *Patch) Filter(strategy differ.ApplyStrategy) *Patch {
	out := *p
	switch p.Strategy {
	case types.StrategyUnorderedArrayLike:
		out.Multiset = differ.FilterMultiset(p.Multiset, strategy)
	case types.StrategyUnorderedMapLike:
		out.Keyed = differ.FilterKeyed(p.Keyed, strategy)
	}
	return &out
}

// Apply returns a new document with the patch applied to doc. Edit scripts
// are replayed on a rope.
func (p *Patch) Apply(doc *Document) (*Document, error) {
	want := KindList
	if p.Strategy == types.StrategyUnorderedMapLike {
		want = KindMap
	}
	if doc.Kind != want {
		return nil, errors.NewValidationError("document", doc.Path,
			"a "+string(p.Strategy)+" patch cannot be applied to a "+doc.Kind.String())
	}

	out := &Document{Path: doc.Path, Kind: doc.Kind}
	switch p.Strategy {
	case types.StrategyOrderedArrayLike:
		r := rope.FromSlice(doc.Items)
		if err := ordered.Apply(r, p.Ordered); err != nil {
			return nil, err
		}
		out.Items = r.Slice()
	case types.StrategyUnorderedArrayLike:
		out.Items = multiset.Apply(doc.Items, p.Multiset)
	case types.StrategyUnorderedMapLike:
		entries, err := keyed.ApplyEntries(doc.Entries, p.Keyed)
		if err != nil {
			return nil, err
		}
		out.Entries = entries
	default:
		return nil, errors.NewValidationError("strategy", string(p.Strategy), "unsupported patch strategy")
	}
	return out, nil
}

// MarshalBinary encodes the patch as a strategy byte followed by the binary
// change list.
func (p *Patch) MarshalBinary() ([]byte, error) {
	var (
		tag  byte
		body []byte
		err  error
	)
	switch p.Strategy {
	case types.StrategyOrderedArrayLike:
		tag = tagOrdered
		body, err = codec.EncodeOrdered(p.Ordered, codec.String{})
	case types.StrategyUnorderedArrayLike:
		tag = tagMultiset
		body, err = codec.EncodeMultiset(p.Multiset, codec.String{})
	case types.StrategyUnorderedMapLike:
		tag = tagKeyed
		body, err = codec.EncodeKeyed(p.Keyed, codec.String{}, codec.String{})
	default:
		return nil, errors.NewValidationError("strategy", string(p.Strategy), "unsupported patch strategy")
	}
	if err != nil {
		return nil, err
	}
	return append([]byte{tag}, body...), nil
}

// UnmarshalBinary decodes the form written by MarshalBinary.
func (p *Patch) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.NewParseError("binary", "", "empty patch", nil)
	}
	var err error
	*p = Patch{}
	switch data[0] {
	case tagOrdered:
		p.Strategy = types.StrategyOrderedArrayLike
		p.Ordered, err = codec.DecodeOrdered(data[1:], codec.String{})
	case tagMultiset:
		p.Strategy = types.StrategyUnorderedArrayLike
		p.Multiset, err = codec.DecodeMultiset(data[1:], codec.String{})
	case tagKeyed:
		p.Strategy = types.StrategyUnorderedMapLike
		p.Keyed, err = codec.DecodeKeyed(data[1:], codec.String{}, codec.String{})
	default:
		return errors.NewOpError("patch", data[0])
	}
	return err
}

// LoadPatch reads a patch file. format is "json", "yaml", "binary" or empty
// to detect it from the extension and content.
func LoadPatch(path, format string) (*Patch, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return ParsePatch(data, path, format)
}

// ParsePatch decodes a patch in the given format.
func ParsePatch(data []byte, name, format string) (*Patch, error) {
	if format == "" {
		format = detectPatchFormat(data, name)
	}

	var (
		p   Patch
		err error
	)
	switch strings.ToLower(format) {
	case "json":
		p, err = codec.UnmarshalJSON[Patch](data)
	case "yaml":
		p, err = codec.UnmarshalYAML[Patch](data)
	case "binary":
		raw, hexErr := hex.DecodeString(strings.TrimSpace(string(data)))
		if hexErr != nil {
			return nil, errors.NewParseError("binary", name, "patch is not hex encoded", hexErr)
		}
		err = p.UnmarshalBinary(raw)
	default:
		return nil, errors.NewValidationError("patch-format", format, "must be one of: json, yaml, binary")
	}
	if err != nil {
		return nil, err
	}
	if !p.Strategy.IsValid() || p.Strategy == types.StrategyRecurse {
		return nil, errors.NewParseError(strings.ToLower(format), name, "missing or unsupported strategy "+string(p.Strategy), nil)
	}
	return &p, nil
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}

func detectPatchFormat(data []byte, name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".hex", ".bin":
		return "binary"
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed != "" && strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.Is(unicode.ASCII_Hex_Digit, r)
	}) < 0 {
		return "binary"
	}
	return "yaml"
}
