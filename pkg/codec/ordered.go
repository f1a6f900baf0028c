package codec

import (
	"github.com/spacemeshos/go-scale"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/ordered"
)

// Ordered encodes ordered changesets.
//
// Layout per change: op byte, then
//
//	replace, insert: index, item
//	delete:          index, ranged byte, [end]
//	swap:            index, other index
type Ordered[T any] struct {
	Items ItemCodec[T]
}

// EncodeItem implements ItemCodec.
func (c Ordered[T]) EncodeItem(enc *scale.Encoder, changes []ordered.Change[T]) (int, error) {
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

func (c Ordered[T]) encodeChange(enc *scale.Encoder, ch ordered.Change[T]) (int, error) {
	var n counter
	if err := n.add(scale.EncodeByte(enc, byte(ch.Op))); err != nil {
		return n.total, err
	}
	if err := n.add(encodeIndex(enc, ch.Index)); err != nil {
		return n.total, err
	}
	switch ch.Op {
	case ordered.OpReplace, ordered.OpInsert:
		return n.done(c.Items.EncodeItem(enc, ch.Value))
	case ordered.OpDelete:
		var ranged byte
		if ch.Ranged {
			ranged = 1
		}
		if err := n.add(scale.EncodeByte(enc, ranged)); err != nil || !ch.Ranged {
			return n.total, err
		}
		return n.done(encodeIndex(enc, ch.End))
	case ordered.OpSwap:
		return n.done(encodeIndex(enc, ch.End))
	default:
		return n.total, errors.NewOpError("ordered", uint8(ch.Op))
	}
}

// DecodeItem implements ItemCodec.
func (c Ordered[T]) DecodeItem(dec *scale.Decoder) ([]ordered.Change[T], int, error) {
	var n counter
	size, read, err := decodeLen(dec)
	if err := n.add(read, err); err != nil {
		return nil, n.total, err
	}
	changes := make([]ordered.Change[T], 0, capHint(size))
	for range size {
		ch, read, err := c.decodeChange(dec)
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		changes = append(changes, ch)
	}
	return changes, n.total, nil
}

func (c Ordered[T]) decodeChange(dec *scale.Decoder) (ordered.Change[T], int, error) {
	var (
		n  counter
		ch ordered.Change[T]
	)
	op, read, err := scale.DecodeByte(dec)
	if err := n.add(read, err); err != nil {
		return ch, n.total, err
	}
	ch.Op = ordered.Op(op)
	if ch.Op > ordered.OpSwap {
		return ch, n.total, errors.NewOpError("ordered", op)
	}
	ch.Index, read, err = decodeIndex(dec)
	if err := n.add(read, err); err != nil {
		return ch, n.total, err
	}

	switch ch.Op {
	case ordered.OpReplace, ordered.OpInsert:
		ch.Value, read, err = c.Items.DecodeItem(dec)
		err = n.add(read, err)
		return ch, n.total, err
	case ordered.OpDelete:
		ranged, read, err := scale.DecodeByte(dec)
		if err := n.add(read, err); err != nil {
			return ch, n.total, err
		}
		if ranged > 1 {
			return ch, n.total, errors.NewValidationError("ranged", ranged, "flag must be 0 or 1")
		}
		if ranged == 0 {
			return ch, n.total, nil
		}
		ch.Ranged = true
		ch.End, read, err = decodeIndex(dec)
		err = n.add(read, err)
		return ch, n.total, err
	default:
		ch.End, read, err = decodeIndex(dec)
		err = n.add(read, err)
		return ch, n.total, err
	}
}

// EncodeOrdered encodes an ordered changeset.
func EncodeOrdered[T any](changes []ordered.Change[T], items ItemCodec[T]) ([]byte, error) {
	return Encode(Ordered[T]{Items: items}, changes)
}

// DecodeOrdered decodes an ordered changeset.
func DecodeOrdered[T any](data []byte, items ItemCodec[T]) ([]ordered.Change[T], error) {
	return Decode(Ordered[T]{Items: items}, data)
}
