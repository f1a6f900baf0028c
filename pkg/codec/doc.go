// Package codec encodes changesets for storage and transport.
//
// The binary form uses SCALE encoding from github.com/spacemeshos/go-scale.
// Every change starts with a one-byte discriminant equal to its Op value,
// followed by compact integers and item payloads. Items are written by an
// ItemCodec, and the changeset codecs are themselves ItemCodecs, so nested
// changesets compose:
//
//	labels := codec.Keyed[string, string]{Keys: codec.String{}, Values: codec.String{}}
//	buf, err := codec.Encode(labels, changes)
//	back, err := codec.Decode(labels, buf)
//
// Multiset counts are shaped by their tier: a single item carries no count,
// a few items carry one byte and larger counts a compact integer.
//
// The structured form is plain JSON or YAML of the change types, whose
// operation and tier enums marshal as names.
package codec
