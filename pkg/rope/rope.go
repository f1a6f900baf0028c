package rope

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/agentstation/delta/pkg/errors"
)

// Rope is a mutable indexed sequence of T.
// The zero value is an empty rope ready to use.
type Rope[T any] struct {
	chunks []*chunk[T]
	length int
}

// New creates an empty rope.
func New[T any]() *Rope[T] {
	return &Rope[T]{}
}

// FromSlice creates a rope holding a copy of items.
func FromSlice[T any](items []T) *Rope[T] {
	r := &Rope[T]{chunks: split(items), length: len(items)}
	r.renumber(0)
	return r
}

// Len returns the number of elements.
func (r *Rope[T]) Len() int {
	return r.length
}

// Chunks returns the number of chunks backing the rope.
func (r *Rope[T]) Chunks() int {
	return len(r.chunks)
}

// Get returns the element at i.
func (r *Rope[T]) Get(i int) T {
	return *r.Ptr(i)
}

// Ptr returns a pointer to the element at i. The pointer is invalidated by
// any later insertion or removal.
func (r *Rope[T]) Ptr(i int) *T {
	r.check("get", i, r.length)
	k, local := r.locate(i)
	return &r.chunks[k].items[local]
}

// Set assigns v at i.
func (r *Rope[T]) Set(i int, v T) {
	*r.Ptr(i) = v
}

// Push appends v.
func (r *Rope[T]) Push(v T) {
	r.Insert(r.length, v)
}

// Insert inserts v before i. i may equal Len.
func (r *Rope[T]) Insert(i int, v T) {
	r.check("insert", i, r.length+1)
	if len(r.chunks) == 0 {
		r.chunks = []*chunk[T]{{items: []T{v}}}
		r.length = 1
		return
	}

	var k, local int
	if i == r.length {
		k = len(r.chunks) - 1
		local = len(r.chunks[k].items)
	} else {
		k, local = r.locate(i)
	}

	c := r.chunks[k]
	c.items = slices.Insert(c.items, local, v)
	r.length++

	if len(c.items) > MaxChunkSize {
		r.rebalance(k, k)
		return
	}
	r.renumber(k + 1)
}

// Remove removes and returns the element at i.
func (r *Rope[T]) Remove(i int) T {
	r.check("remove", i, r.length)
	k, local := r.locate(i)

	c := r.chunks[k]
	v := c.items[local]
	c.items = slices.Delete(c.items, local, local+1)
	r.length--

	if len(c.items) <= UnderfullChunkSize {
		r.rebalance(k, k)
		return v
	}
	r.renumber(k + 1)
	return v
}

// Drain removes the half-open range [lo, hi).
func (r *Rope[T]) Drain(lo, hi int) {
	if lo < 0 || lo > hi {
		panic(errors.NewIndexError("drain", lo, r.length))
	}
	r.check("drain", hi, r.length+1)
	if lo == hi {
		return
	}

	kl, ll := r.locate(lo)
	kh, lh := r.locate(hi - 1)
	r.length -= hi - lo

	if kl == kh {
		c := r.chunks[kl]
		c.items = slices.Delete(c.items, ll, lh+1)
		if len(c.items) <= UnderfullChunkSize {
			r.rebalance(kl, kl)
			return
		}
		r.renumber(kl + 1)
		return
	}

	head, tail := r.chunks[kl], r.chunks[kh]
	head.items = head.items[:ll]
	tail.items = tail.items[lh+1:]
	r.chunks = slices.Delete(r.chunks, kl+1, kh)
	r.rebalance(kl, kl+1)
}

// Swap exchanges the elements at a and b.
func (r *Rope[T]) Swap(a, b int) {
	r.check("swap", a, r.length)
	r.check("swap", b, r.length)
	if a == b {
		return
	}
	lo, hi := min(a, b), max(a, b)

	kl, ll := r.locate(lo)
	kh, lh := r.locate(hi)
	if kl == kh {
		items := r.chunks[kl].items
		items[ll], items[lh] = items[lh], items[ll]
		return
	}

	// Moving through Insert and Remove keeps chunk sizes in bounds.
	v := r.Remove(hi)
	r.Insert(lo, v)
	v = r.Remove(lo + 1)
	r.Insert(hi, v)
}

// Slice returns the elements as a new slice.
func (r *Rope[T]) Slice() []T {
	out := make([]T, 0, r.length)
	for _, c := range r.chunks {
		out = append(out, c.items...)
	}
	return out
}

// All returns an iterator over index and element pairs.
func (r *Rope[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, c := range r.chunks {
			for j, v := range c.items {
				if !yield(c.offset+j, v) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over the elements.
func (r *Rope[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, c := range r.chunks {
			for _, v := range c.items {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of the rope's structure. Elements are copied by
// value.
func (r *Rope[T]) Clone() *Rope[T] {
	out := &Rope[T]{chunks: make([]*chunk[T], len(r.chunks)), length: r.length}
	for k, c := range r.chunks {
		out.chunks[k] = &chunk[T]{offset: c.offset, items: slices.Clone(c.items)}
	}
	return out
}

// String formats the rope like a slice.
func (r *Rope[T]) String() string {
	return fmt.Sprint(r.Slice())
}

// locate returns the chunk holding index i and the position inside it.
// i must be in range.
func (r *Rope[T]) locate(i int) (int, int) {
	k := sort.Search(len(r.chunks), func(k int) bool {
		return r.chunks[k].offset > i
	}) - 1
	return k, i - r.chunks[k].offset
}

func (r *Rope[T]) check(op string, i, limit int) {
	if i < 0 || i >= limit {
		panic(errors.NewIndexError(op, i, r.length))
	}
}

// renumber recomputes offsets from chunk k onward.
func (r *Rope[T]) renumber(k int) {
	offset := 0
	if k > 0 {
		offset = r.chunks[k-1].end()
	}
	for ; k < len(r.chunks); k++ {
		r.chunks[k].offset = offset
		offset += len(r.chunks[k].items)
	}
}

// rebalance repacks chunks from index from onward. Chunks are absorbed into
// a carry buffer that is emitted in DefaultChunkSize pieces while it exceeds
// MaxChunkSize. Absorbing stops after chunk through once the carry holds
// more than UnderfullChunkSize elements. A short final carry is merged into
// the chunk before it.
func (r *Rope[T]) rebalance(from, through int) {
	out := make([]*chunk[T], 0, len(r.chunks)+1)
	out = append(out, r.chunks[:from]...)

	var carry []T
	k := from
	for k < len(r.chunks) {
		carry = append(carry, r.chunks[k].items...)
		k++
		for len(carry) > MaxChunkSize {
			out = append(out, newChunk(carry[:DefaultChunkSize]))
			carry = carry[DefaultChunkSize:]
		}
		if k > through && len(carry) > UnderfullChunkSize {
			break
		}
	}

	switch {
	case len(carry) == 0:
	case len(carry) > UnderfullChunkSize || len(out) == 0:
		out = append(out, newChunk(carry))
	default:
		prev := out[len(out)-1]
		merged := append(prev.items, carry...)
		if len(merged) > MaxChunkSize {
			prev.items = merged[:DefaultChunkSize:DefaultChunkSize]
			out = append(out, newChunk(merged[DefaultChunkSize:]))
		} else {
			prev.items = merged
		}
	}

	r.chunks = append(out, r.chunks[k:]...)
	r.renumber(max(from-1, 0))
}
