package codec

import (
	"github.com/spacemeshos/go-scale"

	"github.com/agentstation/delta/pkg/constants"
	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/multiset"
)

// Multiset encodes multiset changesets.
//
// Layout per change: op byte, then
//
//	insert, remove: tier byte, item, count shaped by tier
//	replace:        length, items
type Multiset[T any] struct {
	Items ItemCodec[T]
}

// EncodeItem implements ItemCodec.
func (c Multiset[T]) EncodeItem(enc *scale.Encoder, changes []multiset.Change[T]) (int, error) {
	var n counter
	if err := n.add(encodeLen(enc, len(changes))); err != nil {
		return n.total, err
	}
	for _, ch := range changes {
		if err := n.add(c.encodeChange(enc, ch)); err != nil {
			return n.total, err
		}
	}
	return n.total, nil
}

func (c Multiset[T]) encodeChange(enc *scale.Encoder, ch multiset.Change[T]) (int, error) {
	var n counter
	if err := n.add(scale.EncodeByte(enc, byte(ch.Op))); err != nil {
		return n.total, err
	}

	switch ch.Op {
	case multiset.OpReplace:
		if err := n.add(encodeLen(enc, len(ch.Values))); err != nil {
			return n.total, err
		}
		for _, v := range ch.Values {
			if err := n.add(c.Items.EncodeItem(enc, v)); err != nil {
				return n.total, err
			}
		}
		return n.total, nil
	case multiset.OpInsert, multiset.OpRemove:
	default:
		return n.total, errors.NewOpError("multiset", uint8(ch.Op))
	}

	if err := checkTier(ch.Tier, ch.Count); err != nil {
		return n.total, err
	}
	if err := n.add(scale.EncodeByte(enc, byte(ch.Tier))); err != nil {
		return n.total, err
	}
	if err := n.add(c.Items.EncodeItem(enc, ch.Item)); err != nil {
		return n.total, err
	}
	switch ch.Tier {
	case multiset.TierFew:
		return n.done(scale.EncodeByte(enc, byte(ch.Count)))
	case multiset.TierMany:
		return n.done(scale.EncodeCompact64(enc, ch.Count))
	default:
		return n.total, nil
	}
}

// checkTier rejects a count its tier cannot carry.
func checkTier(tier multiset.Tier, count uint64) error {
	switch tier {
	case multiset.TierSingle:
		if count != constants.SingleCount {
			return errors.NewValidationError("count", count, "single tier carries a count of one")
		}
	case multiset.TierFew:
		if count > constants.MaxFewCount {
			return errors.NewValidationError("count", count, "few tier carries at most 255")
		}
	case multiset.TierMany:
	default:
		return errors.NewValidationError("tier", uint8(tier), "unknown tier")
	}
	return nil
}

// DecodeItem implements ItemCodec.
func (c Multiset[T]) DecodeItem(dec *scale.Decoder) ([]multiset.Change[T], int, error) {
	var n counter
	size, read, err := decodeLen(dec)
	if err := n.add(read, err); err != nil {
		return nil, n.total, err
	}
	changes := make([]multiset.Change[T], 0, capHint(size))
	for range size {
		ch, read, err := c.decodeChange(dec)
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		changes = append(changes, ch)
	}
	return changes, n.total, nil
}

func (c Multiset[T]) decodeChange(dec *scale.Decoder) (multiset.Change[T], int, error) {
	var (
		n  counter
		ch multiset.Change[T]
	)
	op, read, err := scale.DecodeByte(dec)
	if err := n.add(read, err); err != nil {
		return ch, n.total, err
	}
	ch.Op = multiset.Op(op)

	switch ch.Op {
	case multiset.OpReplace:
		size, read, err := decodeLen(dec)
		if err := n.add(read, err); err != nil {
			return ch, n.total, err
		}
		ch.Values = make([]T, 0, capHint(size))
		for range size {
			v, read, err := c.Items.DecodeItem(dec)
			if err := n.add(read, err); err != nil {
				return ch, n.total, err
			}
			ch.Values = append(ch.Values, v)
		}
		return ch, n.total, nil
	case multiset.OpInsert, multiset.OpRemove:
	default:
		return ch, n.total, errors.NewOpError("multiset", op)
	}

	tier, read, err := scale.DecodeByte(dec)
	if err := n.add(read, err); err != nil {
		return ch, n.total, err
	}
	ch.Tier = multiset.Tier(tier)
	ch.Item, read, err = c.Items.DecodeItem(dec)
	if err := n.add(read, err); err != nil {
		return ch, n.total, err
	}

	switch ch.Tier {
	case multiset.TierSingle:
		ch.Count = constants.SingleCount
	case multiset.TierFew:
		b, read, err := scale.DecodeByte(dec)
		if err := n.add(read, err); err != nil {
			return ch, n.total, err
		}
		ch.Count = uint64(b)
	case multiset.TierMany:
		ch.Count, read, err = scale.DecodeCompact64(dec)
		if err := n.add(read, err); err != nil {
			return ch, n.total, err
		}
	default:
		return ch, n.total, errors.NewValidationError("tier", tier, "unknown tier")
	}
	return ch, n.total, nil
}

// EncodeMultiset encodes a multiset changeset.
func EncodeMultiset[T any](changes []multiset.Change[T], items ItemCodec[T]) ([]byte, error) {
	return Encode(Multiset[T]{Items: items}, changes)
}

// DecodeMultiset decodes a multiset changeset.
func DecodeMultiset[T any](data []byte, items ItemCodec[T]) ([]multiset.Change[T], error) {
	return Decode(Multiset[T]{Items: items}, data)
}
