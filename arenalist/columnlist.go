package arenalist

// ColumnList is the column-layout list: values, next links, prev links, and
// generations live in four parallel arrays indexed identically. Traversal
// that only chases next links stays inside one dense column; mutation pays
// for touching all four.
type ColumnList[T any] struct {
	values   []T
	next     []int32
	prev     []int32
	gens     []uint32
	freeHead int32
	head     int32
	tail     int32
	size     int
}

// NewColumn builds a column-layout list with a fixed number of slots.
func NewColumn[T any](capacity int) (*ColumnList[T], error) {
	if capacity < 1 || capacity > maxCapacity {
		return nil, ErrInvalidCapacity
	}
	l := &ColumnList[T]{
		values: make([]T, capacity),
		next:   make([]int32, capacity),
		prev:   make([]int32, capacity),
		gens:   make([]uint32, capacity),
		head:   nilIdx,
		tail:   nilIdx,
	}
	// Thread the free-list through the next column, lowest index first.
	for i := range l.next {
		l.next[i] = int32(i) + 1
		l.prev[i] = freeMark
	}
	l.next[capacity-1] = nilIdx
	l.freeHead = 0
	return l, nil
}

// allocate pops a free slot, stores v, and bumps the slot generation.
func (l *ColumnList[T]) allocate(v T) (int32, error) {
	idx := l.freeHead
	if idx == nilIdx {
		return nilIdx, ErrFull
	}
	l.freeHead = l.next[idx]
	l.values[idx] = v
	l.next[idx] = nilIdx
	l.prev[idx] = nilIdx
	l.gens[idx]++
	return idx, nil
}

// release zeroes a slot and threads it back onto the free-list, leaving the
// generation untouched.
func (l *ColumnList[T]) release(idx int32) {
	var zero T
	l.values[idx] = zero
	l.next[idx] = l.freeHead
	l.prev[idx] = freeMark
	l.freeHead = idx
}

// unlink splices a live slot out of the chain, fixing head/tail endpoints.
func (l *ColumnList[T]) unlink(idx int32) {
	prev, next := l.prev[idx], l.next[idx]
	if prev != nilIdx {
		l.next[prev] = next
	} else {
		l.head = next
	}
	if next != nilIdx {
		l.prev[next] = prev
	} else {
		l.tail = prev
	}
}

func (l *ColumnList[T]) valid(h Handle) bool {
	return h.idx >= 0 && int(h.idx) < len(l.gens) &&
		l.prev[h.idx] != freeMark &&
		l.gens[h.idx] == h.gen
}

// Valid reports whether h still refers to the element it was issued for.
func (l *ColumnList[T]) Valid(h Handle) bool { return l.valid(h) }

// PushFront inserts v at the head and returns its handle.
func (l *ColumnList[T]) PushFront(v T) (Handle, error) {
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	l.next[idx] = l.head
	if l.head != nilIdx {
		l.prev[l.head] = idx
	} else {
		l.tail = idx
	}
	l.head = idx
	l.size++
	return Handle{idx: idx, gen: l.gens[idx]}, nil
}

// PushBack inserts v at the tail and returns its handle.
func (l *ColumnList[T]) PushBack(v T) (Handle, error) {
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	l.prev[idx] = l.tail
	if l.tail != nilIdx {
		l.next[l.tail] = idx
	} else {
		l.head = idx
	}
	l.tail = idx
	l.size++
	return Handle{idx: idx, gen: l.gens[idx]}, nil
}

// InsertAfter splices v in directly behind the element h refers to.
func (l *ColumnList[T]) InsertAfter(h Handle, v T) (Handle, error) {
	if !l.valid(h) {
		return Handle{}, ErrInvalidHandle
	}
	idx, err := l.allocate(v)
	if err != nil {
		return Handle{}, err
	}
	anchor := h.idx
	oldNext := l.next[anchor]
	l.prev[idx] = anchor
	l.next[idx] = oldNext
	l.next[anchor] = idx
	if oldNext != nilIdx {
		l.prev[oldNext] = idx
	} else {
		l.tail = idx
	}
	l.size++
	return Handle{idx: idx, gen: l.gens[idx]}, nil
}

// Remove splices the element h refers to out of the chain and recycles its
// slot. A stale h leaves the list untouched.
func (l *ColumnList[T]) Remove(h Handle) error {
	if !l.valid(h) {
		return ErrInvalidHandle
	}
	l.unlink(h.idx)
	l.size--
	l.release(h.idx)
	return nil
}

// RemoveAfter removes the element directly behind the one h refers to.
func (l *ColumnList[T]) RemoveAfter(h Handle) error {
	if !l.valid(h) {
		return ErrInvalidHandle
	}
	target := l.next[h.idx]
	if target == nilIdx {
		return ErrNoSuccessor
	}
	l.unlink(target)
	l.size--
	l.release(target)
	return nil
}

// PopFront removes the head element and returns its value.
func (l *ColumnList[T]) PopFront() (T, error) {
	if l.head == nilIdx {
		var zero T
		return zero, ErrEmpty
	}
	idx := l.head
	l.unlink(idx)
	l.size--
	v := l.values[idx]
	l.release(idx)
	return v, nil
}

// Value reads the element h refers to without removing it.
func (l *ColumnList[T]) Value(h Handle) (T, error) {
	if !l.valid(h) {
		var zero T
		return zero, ErrInvalidHandle
	}
	return l.values[h.idx], nil
}

// ForEach walks the chain head to tail, calling fn with each value and its
// slot index. Each call starts fresh from the head. fn must not mutate the
// list; traversal during mutation is undefined.
func (l *ColumnList[T]) ForEach(fn func(v T, idx int32)) {
	for i := l.head; i != nilIdx; i = l.next[i] {
		fn(l.values[i], i)
	}
}

// Head returns the first live slot index, or -1 when empty. Together with
// NextOf and ValueAt it forms the unchecked traversal path for tight loops.
//
//go:nosplit
//go:inline
func (l *ColumnList[T]) Head() int32 { return l.head }

// NextOf returns the slot after i. No bounds or liveness checks.
//
//go:nosplit
//go:inline
func (l *ColumnList[T]) NextOf(i int32) int32 { return l.next[i] }

// ValueAt returns the payload at slot i. No bounds or liveness checks.
//
//go:nosplit
//go:inline
func (l *ColumnList[T]) ValueAt(i int32) T { return l.values[i] }

// Len returns the number of live elements.
func (l *ColumnList[T]) Len() int { return l.size }

// Cap returns the fixed slot count configured at construction.
func (l *ColumnList[T]) Cap() int { return len(l.gens) }

// Empty reports whether no elements are live.
func (l *ColumnList[T]) Empty() bool { return l.size == 0 }
