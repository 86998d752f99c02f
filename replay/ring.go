package replay

import "iter"

// Ring is a fixed-capacity circular buffer. Appending to a full ring overwrites the oldest item.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing returns an empty ring holding at most capacity items.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, max(capacity, 1))}
}

// Append adds item as the newest element.
func (r *Ring[T]) Append(item T) {
	tail := (r.head + r.size) % len(r.items)
	r.items[tail] = item
	if r.size == len(r.items) {
		r.head = (r.head + 1) % len(r.items)
		return
	}
	r.size++
}

// Get returns the element at logical position index, where 0 is the oldest.
func (r *Ring[T]) Get(index int) (item T, ok bool) {
	if index < 0 || index >= r.size {
		return item, false
	}
	return r.items[(r.head+index)%len(r.items)], true
}

// Len returns the number of items held.
func (r *Ring[T]) Len() int {
	return r.size
}

// Full reports whether the next Append will overwrite an item.
func (r *Ring[T]) Full() bool {
	return r.size == len(r.items)
}

// All iterates from the oldest item to the newest.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.size {
			if !yield(r.items[(r.head+i)%len(r.items)]) {
				return
			}
		}
	}
}

// Drain removes and returns every item, oldest first.
func (r *Ring[T]) Drain() []T {
	out := make([]T, 0, r.size)
	for item := range r.All() {
		out = append(out, item)
	}
	clear(r.items)
	r.head, r.size = 0, 0
	return out
}
