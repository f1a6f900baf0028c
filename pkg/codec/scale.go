package codec

import (
	"bytes"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/agentstation/delta/pkg/constants"
	"github.com/agentstation/delta/pkg/errors"
)

// Encode writes v with c into a new buffer.
func Encode[T any](c ItemCodec[T], v T) ([]byte, error) {
	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf, scale.WithEncodeMaxElements(constants.MaxEncodedElements))
	if _, err := c.EncodeItem(enc, v); err != nil {
		return nil, fmt.Errorf("encode changeset: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a value written by Encode. Malformed input, including
// trailing bytes, yields an *errors.ParseError.
func Decode[T any](c ItemCodec[T], data []byte) (T, error) {
	r := bytes.NewReader(data)
	dec := scale.NewDecoder(r, scale.WithDecodeMaxElements(constants.MaxEncodedElements))
	v, _, err := c.DecodeItem(dec)
	if err != nil {
		var zero T
		return zero, errors.WrapParse("binary", "", err)
	}
	if r.Len() > 0 {
		var zero T
		return zero, errors.NewParseError("binary", "", fmt.Sprintf("%d trailing bytes", r.Len()), nil)
	}
	return v, nil
}

// counter accumulates bytes written or read across a sequence of calls.
type counter struct {
	total int
}

func (c *counter) add(n int, err error) error {
	c.total += n
	return err
}

// done adds a final call's result and returns the running total.
func (c *counter) done(n int, err error) (int, error) {
	c.total += n
	return c.total, err
}

func encodeLen(enc *scale.Encoder, n int) (int, error) {
	if n > constants.MaxEncodedElements {
		return 0, errors.NewValidationError("length", n, "too many elements")
	}
	return scale.EncodeCompact32(enc, uint32(n))
}

func decodeLen(dec *scale.Decoder) (int, int, error) {
	n, read, err := scale.DecodeCompact32(dec)
	if err != nil {
		return 0, read, err
	}
	if n > constants.MaxEncodedElements {
		return 0, read, errors.NewValidationError("length", n, "too many elements")
	}
	return int(n), read, nil
}

func encodeIndex(enc *scale.Encoder, i int) (int, error) {
	if i < 0 {
		return 0, errors.NewValidationError("index", i, "must not be negative")
	}
	return scale.EncodeCompact64(enc, uint64(i))
}

func decodeIndex(dec *scale.Decoder) (int, int, error) {
	u, n, err := scale.DecodeCompact64(dec)
	if err != nil {
		return 0, n, err
	}
	if u > uint64(constants.MaxIndex) {
		return 0, n, errors.NewValidationError("index", u, "out of range")
	}
	return int(u), n, nil
}

// capHint bounds preallocation for a decoded length.
func capHint(n int) int {
	return min(n, 1024)
}
