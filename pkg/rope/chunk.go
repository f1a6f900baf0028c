package rope

import "slices"

// chunk is a run of consecutive elements starting at offset.
type chunk[T any] struct {
	offset int
	items  []T
}

func newChunk[T any](items []T) *chunk[T] {
	return &chunk[T]{items: slices.Clone(items)}
}

// end returns the index one past the last element of the chunk.
func (c *chunk[T]) end() int {
	return c.offset + len(c.items)
}

// split cuts items into chunks of DefaultChunkSize. A short tail is folded
// into the chunk before it.
func split[T any](items []T) []*chunk[T] {
	if len(items) == 0 {
		return nil
	}
	if len(items) <= MaxChunkSize {
		return []*chunk[T]{newChunk(items)}
	}

	chunks := make([]*chunk[T], 0, len(items)/DefaultChunkSize+1)
	for len(items) > 0 {
		n := min(DefaultChunkSize, len(items))
		if rest := len(items) - n; rest > 0 && rest <= UnderfullChunkSize {
			n = len(items)
		}
		chunks = append(chunks, newChunk(items[:n]))
		items = items[n:]
	}
	return chunks
}
