package codec

import (
	"github.com/spacemeshos/go-scale"

	"github.com/agentstation/delta/pkg/constants"
)

// ItemCodec writes and reads single values.
type ItemCodec[T any] interface {
	EncodeItem(enc *scale.Encoder, v T) (int, error)
	DecodeItem(dec *scale.Decoder) (T, int, error)
}

// String encodes strings as length-prefixed bytes.
type String struct{}

// EncodeItem implements ItemCodec.
func (String) EncodeItem(enc *scale.Encoder, v string) (int, error) {
	return scale.EncodeByteSliceWithLimit(enc, []byte(v), constants.MaxEncodedBytes)
}

// DecodeItem implements ItemCodec.
func (String) DecodeItem(dec *scale.Decoder) (string, int, error) {
	b, n, err := scale.DecodeByteSliceWithLimit(dec, constants.MaxEncodedBytes)
	return string(b), n, err
}

// Bytes encodes byte slices as length-prefixed bytes.
type Bytes struct{}

// EncodeItem implements ItemCodec.
func (Bytes) EncodeItem(enc *scale.Encoder, v []byte) (int, error) {
	return scale.EncodeByteSliceWithLimit(enc, v, constants.MaxEncodedBytes)
}

// DecodeItem implements ItemCodec.
func (Bytes) DecodeItem(dec *scale.Decoder) ([]byte, int, error) {
	return scale.DecodeByteSliceWithLimit(dec, constants.MaxEncodedBytes)
}

// Uint64 encodes unsigned integers compactly.
type Uint64 struct{}

// EncodeItem implements ItemCodec.
func (Uint64) EncodeItem(enc *scale.Encoder, v uint64) (int, error) {
	return scale.EncodeCompact64(enc, v)
}

// DecodeItem implements ItemCodec.
func (Uint64) DecodeItem(dec *scale.Decoder) (uint64, int, error) {
	return scale.DecodeCompact64(dec)
}

// Int64 encodes signed integers compactly after zigzag mapping, so small
// negative values stay small.
type Int64 struct{}

// EncodeItem implements ItemCodec.
func (Int64) EncodeItem(enc *scale.Encoder, v int64) (int, error) {
	return scale.EncodeCompact64(enc, zigzag(v))
}

// DecodeItem implements ItemCodec.
func (Int64) DecodeItem(dec *scale.Decoder) (int64, int, error) {
	u, n, err := scale.DecodeCompact64(dec)
	return unzigzag(u), n, err
}

// Int encodes int like Int64.
type Int struct{}

// EncodeItem implements ItemCodec.
func (Int) EncodeItem(enc *scale.Encoder, v int) (int, error) {
	return Int64{}.EncodeItem(enc, int64(v))
}

// DecodeItem implements ItemCodec.
func (Int) DecodeItem(dec *scale.Decoder) (int, int, error) {
	v, n, err := Int64{}.DecodeItem(dec)
	return int(v), n, err
}

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
