package codec

import (
	"github.com/spacemeshos/go-scale"

	"github.com/agentstation/delta/pkg/errors"
	"github.com/agentstation/delta/pkg/keyed"
)

// Keyed encodes keyed changesets.
//
// Layout per change: op byte, then
//
//	insert, remove: key, value
//	replace:        length, key and value pairs
//
// Replace entries are written in map iteration order, so encoding the same
// changeset twice may produce different bytes that decode equally.
type Keyed[K comparable, V any] struct {
	Keys   ItemCodec[K]
	Values ItemCodec[V]
}

// EncodeItem implements ItemCodec.
func (c Keyed[K, V]) EncodeItem(enc *scale.Encoder, changes []keyed.Change[K, V]) (int, error) {
	var n counter
	if err := n.add(encodeLen(enc, len(changes))); err != nil {
		return n.total, err
	}
	for _, ch := range changes {
		if err := n.add(scale.EncodeByte(enc, byte(ch.Op))); err != nil {
			return n.total, err
		}
		switch ch.Op {
		case keyed.OpInsert, keyed.OpRemove:
			if err := n.add(encodePair(enc, c.Keys, c.Values, ch.Key, ch.Value)); err != nil {
				return n.total, err
			}
		case keyed.OpReplace:
			if err := n.add(encodeEntries(enc, c.Keys, c.Values, ch.Entries)); err != nil {
				return n.total, err
			}
		default:
			return n.total, errors.NewOpError("keyed", uint8(ch.Op))
		}
	}
	return n.total, nil
}

// DecodeItem implements ItemCodec.
func (c Keyed[K, V]) DecodeItem(dec *scale.Decoder) ([]keyed.Change[K, V], int, error) {
	var n counter
	size, read, err := decodeLen(dec)
	if err := n.add(read, err); err != nil {
		return nil, n.total, err
	}
	changes := make([]keyed.Change[K, V], 0, capHint(size))
	for range size {
		var ch keyed.Change[K, V]
		op, read, err := scale.DecodeByte(dec)
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		ch.Op = keyed.Op(op)
		switch ch.Op {
		case keyed.OpInsert, keyed.OpRemove:
			ch.Key, ch.Value, read, err = decodePair(dec, c.Keys, c.Values)
		case keyed.OpReplace:
			ch.Entries, read, err = decodeEntries(dec, c.Keys, c.Values)
		default:
			return nil, n.total, errors.NewOpError("keyed", op)
		}
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		changes = append(changes, ch)
	}
	return changes, n.total, nil
}

// Recursive encodes changesets over maps whose values diff themselves.
// It uses the Keyed layout plus a change op carrying the key and the nested
// changeset.
type Recursive[K comparable, V any, C any] struct {
	Keys   ItemCodec[K]
	Values ItemCodec[V]
	Nested ItemCodec[C]
}

// EncodeItem implements ItemCodec.
func (c Recursive[K, V, C]) EncodeItem(enc *scale.Encoder, changes []keyed.RecursiveChange[K, V, C]) (int, error) {
	var n counter
	if err := n.add(encodeLen(enc, len(changes))); err != nil {
		return n.total, err
	}
	for _, ch := range changes {
		if err := n.add(scale.EncodeByte(enc, byte(ch.Op))); err != nil {
			return n.total, err
		}
		var err error
		switch ch.Op {
		case keyed.OpInsert, keyed.OpRemove:
			err = n.add(encodePair(enc, c.Keys, c.Values, ch.Key, ch.Value))
		case keyed.OpReplace:
			err = n.add(encodeEntries(enc, c.Keys, c.Values, ch.Entries))
		case keyed.OpChange:
			if err = n.add(c.Keys.EncodeItem(enc, ch.Key)); err == nil {
				err = n.add(c.Nested.EncodeItem(enc, ch.Nested))
			}
		default:
			err = errors.NewOpError("keyed", uint8(ch.Op))
		}
		if err != nil {
			return n.total, err
		}
	}
	return n.total, nil
}

// DecodeItem implements ItemCodec.
func (c Recursive[K, V, C]) DecodeItem(dec *scale.Decoder) ([]keyed.RecursiveChange[K, V, C], int, error) {
	var n counter
	size, read, err := decodeLen(dec)
	if err := n.add(read, err); err != nil {
		return nil, n.total, err
	}
	changes := make([]keyed.RecursiveChange[K, V, C], 0, capHint(size))
	for range size {
		var ch keyed.RecursiveChange[K, V, C]
		op, read, err := scale.DecodeByte(dec)
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		ch.Op = keyed.Op(op)
		switch ch.Op {
		case keyed.OpInsert, keyed.OpRemove:
			ch.Key, ch.Value, read, err = decodePair(dec, c.Keys, c.Values)
		case keyed.OpReplace:
			ch.Entries, read, err = decodeEntries(dec, c.Keys, c.Values)
		case keyed.OpChange:
			ch.Key, read, err = c.Keys.DecodeItem(dec)
			if err == nil {
				var more int
				ch.Nested, more, err = c.Nested.DecodeItem(dec)
				read += more
			}
		default:
			return nil, n.total, errors.NewOpError("keyed", op)
		}
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		changes = append(changes, ch)
	}
	return changes, n.total, nil
}

func encodePair[K, V any](enc *scale.Encoder, keys ItemCodec[K], values ItemCodec[V], k K, v V) (int, error) {
	var n counter
	if err := n.add(keys.EncodeItem(enc, k)); err != nil {
		return n.total, err
	}
	return n.done(values.EncodeItem(enc, v))
}

func decodePair[K, V any](dec *scale.Decoder, keys ItemCodec[K], values ItemCodec[V]) (K, V, int, error) {
	var (
		n counter
		v V
	)
	k, read, err := keys.DecodeItem(dec)
	if err := n.add(read, err); err != nil {
		return k, v, n.total, err
	}
	v, read, err = values.DecodeItem(dec)
	err = n.add(read, err)
	return k, v, n.total, err
}

func encodeEntries[K comparable, V any](enc *scale.Encoder, keys ItemCodec[K], values ItemCodec[V], m map[K]V) (int, error) {
	var n counter
	if err := n.add(encodeLen(enc, len(m))); err != nil {
		return n.total, err
	}
	for k, v := range m {
		if err := n.add(encodePair(enc, keys, values, k, v)); err != nil {
			return n.total, err
		}
	}
	return n.total, nil
}

func decodeEntries[K comparable, V any](dec *scale.Decoder, keys ItemCodec[K], values ItemCodec[V]) (map[K]V, int, error) {
	var n counter
	size, read, err := decodeLen(dec)
	if err := n.add(read, err); err != nil {
		return nil, n.total, err
	}
	m := make(map[K]V, capHint(size))
	for range size {
		k, v, read, err := decodePair(dec, keys, values)
		if err := n.add(read, err); err != nil {
			return nil, n.total, err
		}
		m[k] = v
	}
	return m, n.total, nil
}

// EncodeKeyed encodes a keyed changeset.
func EncodeKeyed[K comparable, V any](changes []keyed.Change[K, V], keys ItemCodec[K], values ItemCodec[V]) ([]byte, error) {
	return Encode(Keyed[K, V]{Keys: keys, Values: values}, changes)
}

// DecodeKeyed decodes a keyed changeset.
func DecodeKeyed[K comparable, V any](data []byte, keys ItemCodec[K], values ItemCodec[V]) ([]keyed.Change[K, V], error) {
	return Decode(Keyed[K, V]{Keys: keys, Values: values}, data)
}

// EncodeRecursive encodes a recursive keyed changeset.
func EncodeRecursive[K comparable, V any, C any](changes []keyed.RecursiveChange[K, V, C], codec Recursive[K, V, C]) ([]byte, error) {
	return Encode(codec, changes)
}

// DecodeRecursive decodes a recursive keyed changeset.
func DecodeRecursive[K comparable, V any, C any](data []byte, codec Recursive[K, V, C]) ([]keyed.RecursiveChange[K, V, C], error) {
	return Decode(codec, data)
}
