// Package rope provides Rope, an indexed sequence stored as a list of small
// chunks.
//
// Each chunk caches the absolute index of its first element, so lookups are
// a binary search over chunk offsets followed by a slice index. Insertions
// and removals only shift elements inside one chunk and renumber the chunks
// after it; a chunk that grows past MaxChunkSize or shrinks to
// UnderfullChunkSize triggers a local rebalance that repacks neighbours into
// chunks of DefaultChunkSize.
//
// Rope is not safe for concurrent use. Like slices, it panics when indexed
// out of range; the panic value is an *errors.IndexError.
package rope

import "github.com/agentstation/delta/pkg/constants"

// Chunk size limits, see the package documentation.
const (
	UnderfullChunkSize = constants.UnderfullChunkSize
	DefaultChunkSize   = constants.DefaultChunkSize
	MaxChunkSize       = constants.MaxChunkSize
)
